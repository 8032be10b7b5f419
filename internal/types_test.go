package javabind

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Type descriptors", Label("types"), func() {
	When("the type is primitive", func() {
		It("has single letter signatures", func() {
			Expect(Boolean.Signature()).To(Equal("Z"))
			Expect(Byte.Signature()).To(Equal("B"))
			Expect(Char.Signature()).To(Equal("C"))
			Expect(Short.Signature()).To(Equal("S"))
			Expect(Int.Signature()).To(Equal("I"))
			Expect(Long.Signature()).To(Equal("J"))
			Expect(Float.Signature()).To(Equal("F"))
			Expect(Double.Signature()).To(Equal("D"))
			Expect(Void.Signature()).To(Equal("V"))
		})

		It("is not a reference", func() {
			Expect(Int.IsReference()).To(BeFalse())
			Expect(Void.IsReference()).To(BeFalse())
		})

		It("has the matching Go type", func() {
			Expect(Boolean.GoType()).To(Equal("bool"))
			Expect(Char.GoType()).To(Equal("uint16"))
			Expect(Long.GoType()).To(Equal("int64"))
			Expect(Float.GoType()).To(Equal("float32"))
		})
	})

	When("the type is a reference", func() {
		It("has a class signature", func() {
			Expect(String.Signature()).To(Equal("Ljava/lang/String;"))
			Expect(Object.Signature()).To(Equal("Ljava/lang/Object;"))
			Expect(BoxedBoolean.Signature()).To(Equal("Ljava/lang/Boolean;"))
			Expect(BoxedInteger.Signature()).To(Equal("Ljava/lang/Integer;"))
			Expect(BoxedLong.Signature()).To(Equal("Ljava/lang/Long;"))
			Expect(BoxedDouble.Signature()).To(Equal("Ljava/lang/Double;"))
			Expect(Class("java/util/List").Signature()).To(Equal("Ljava/util/List;"))
			Expect(String.IsReference()).To(BeTrue())
		})

		It("composes arrays and pairs", func() {
			t := Array(Pair(Array(String), BoxedBoolean))
			Expect(t.Signature()).To(Equal("[Lcommon/datastore/Pair;"))
			Expect(t.Name()).To(Equal("array<Pair<array<String>, Boolean>>"))
			Expect(t.GoType()).To(Equal("[]any"))
			Expect(t.IsReference()).To(BeTrue())

			Expect(Array(Array(String)).Signature()).To(Equal("[[Ljava/lang/String;"))
			Expect(PairOf("test/Tuple", String, String).Signature()).To(Equal("Ltest/Tuple;"))
		})
	})

	When("the type is validated", func() {
		It("rejects arrays of primitives", func() {
			err := Array(Int).validate()
			Expect(err).To(MatchError(ErrConfiguration))
			Expect(err).To(MatchError("array element type int is not a reference type"))
		})

		It("rejects pairs of primitives", func() {
			Expect(Pair(String, Boolean).validate()).To(MatchError("pair value type boolean is not a reference type"))
			Expect(Pair(Long, String).validate()).To(MatchError("pair key type long is not a reference type"))
		})

		It("validates nested types", func() {
			Expect(Array(Pair(Array(Int), String)).validate()).To(MatchError(ErrConfiguration))
			Expect(Array(Pair(Array(String), BoxedBoolean)).validate()).To(Succeed())
		})

		It("rejects invalid class names", func() {
			Expect(Class("").validate()).To(MatchError(ErrConfiguration))
			Expect(Class("java.lang.String").validate()).To(MatchError(ErrConfiguration))
			Expect(PairOf("", String, String).validate()).To(MatchError(ErrConfiguration))
		})
	})
})

var _ = Describe("Composing method signatures", Label("types"), func() {
	It("concatenates the argument signatures", func() {
		Expect(MethodSignature(Void)).To(Equal("()V"))
		Expect(MethodSignature(Int, Int, Int)).To(Equal("(II)I"))
		Expect(MethodSignature(String, Array(String), Long)).To(Equal("([Ljava/lang/String;J)Ljava/lang/String;"))
	})

	It("composes the percent signature", func() {
		sig := MethodSignature(
			Array(Pair(Array(String), BoxedBoolean)),
			BoxedInteger, BoxedBoolean, Array(BoxedBoolean), Array(String), BoxedInteger, String, String,
		)
		Expect(sig).To(Equal("(Ljava/lang/Integer;Ljava/lang/Boolean;[Ljava/lang/Boolean;[Ljava/lang/String;Ljava/lang/Integer;Ljava/lang/String;Ljava/lang/String;)[Lcommon/datastore/Pair;"))
	})

	It("is deterministic", func() {
		t := Pair(Array(String), Object)
		Expect(MethodSignature(t, t, t)).To(Equal(MethodSignature(t, t, t)))
	})
})

var _ = Describe("Number coercion", Label("types"), func() {
	DescribeTable("toInt64",
		func(in any, expected int64, ok bool) {
			val, valid := toInt64(in)
			Expect(valid).To(Equal(ok))
			if ok {
				Expect(val).To(Equal(expected))
			}
		},
		Entry("int", 3, int64(3), true),
		Entry("uint8", uint8(255), int64(255), true),
		Entry("negative float", -3.9, int64(-3), true),
		Entry("float32", float32(2.5), int64(2), true),
		Entry("numeric string", "10", int64(10), true),
		Entry("hex string", "0x10", int64(16), true),
		Entry("negative hex string", "-0x10", int64(-16), true),
		Entry("leading zero", "010", int64(10), true),
		Entry("binary string", "0b1", int64(0), false),
		Entry("octal string", "0o7", int64(0), false),
		Entry("underscores", "1_000", int64(0), false),
		Entry("double sign", "--1", int64(0), false),
		Entry("float string", " 7.5 ", int64(7), true),
		Entry("text", "abc", int64(0), false),
		Entry("bool", true, int64(0), false),
		Entry("huge uint64", uint64(1<<63), int64(0), false),
		Entry("huge float", 1e19, int64(0), false),
		Entry("nil", nil, int64(0), false),
	)

	DescribeTable("toFloat64",
		func(in any, expected float64, ok bool) {
			val, valid := toFloat64(in)
			Expect(valid).To(Equal(ok))
			if ok {
				Expect(val).To(Equal(expected))
			}
		},
		Entry("int32", int32(-4), float64(-4), true),
		Entry("float32", float32(0.5), 0.5, true),
		Entry("string", "1.25", 1.25, true),
		Entry("huge uint64", uint64(1<<63), float64(1<<63), true),
		Entry("text", "x", float64(0), false),
		Entry("hex string", "0x10", float64(16), true),
		Entry("exponent", "1e3", float64(1000), true),
		Entry("hex float", "0x1p4", float64(0), false),
		Entry("underscores", "1_000.5", float64(0), false),
		Entry("infinity", "Inf", float64(0), false),
	)
})

var _ = Describe("Latin-1 transcoding", Label("types"), func() {
	It("widens every byte to one character", func() {
		Expect(widen([]byte{'a', 0xe9, 0xff, 0})).To(Equal([]uint16{'a', 0xe9, 0xff, 0}))
	})

	It("narrows every character to one byte", func() {
		Expect(narrow([]uint16{'a', 0xe9, 0x20ac})).To(Equal([]byte{'a', 0xe9, 0xac}))
	})

	It("round trips all byte values", func() {
		data := make([]byte, 256)
		for i := range data {
			data[i] = byte(i)
		}
		Expect(narrow(widen(data))).To(Equal(data))
	})
})
