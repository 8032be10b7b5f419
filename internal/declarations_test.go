package javabind

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parsing type expressions", Label("declarations"), func() {
	It("parses nested expressions", func() {
		expr, err := ParseTypeExpr(" array< Pair<array<String>,Boolean> > ")
		Expect(err).To(BeNil())
		Expect(expr.Name).To(Equal("array"))
		Expect(expr.Args).To(HaveLen(1))
		Expect(expr.String()).To(Equal("array<Pair<array<String>, Boolean>>"))
	})

	It("reads dots as slashes", func() {
		expr, err := ParseTypeExpr("java.util.List")
		Expect(err).To(BeNil())
		Expect(expr.Name).To(Equal("java/util/List"))
	})

	DescribeTable("rejects malformed expressions",
		func(input string) {
			_, err := ParseTypeExpr(input)
			Expect(err).To(HaveOccurred())
		},
		Entry("empty", ""),
		Entry("unterminated", "array<String"),
		Entry("missing argument", "array<>"),
		Entry("trailing text", "String String"),
		Entry("stray comma", "Pair<String,,String>"),
	)

	DescribeTable("resolves types",
		func(input string, signature string) {
			t, err := ResolveType(input)
			Expect(err).To(BeNil())
			Expect(t.Signature()).To(Equal(signature))
		},
		Entry("primitive", "int", "I"),
		Entry("void", "void", "V"),
		Entry("string", "String", "Ljava/lang/String;"),
		Entry("qualified string", "java.lang.String", "Ljava/lang/String;"),
		Entry("boxed", "Integer", "Ljava/lang/Integer;"),
		Entry("array", "array<Boolean>", "[Ljava/lang/Boolean;"),
		Entry("pair", "Pair<array<String>, Boolean>", "Lcommon/datastore/Pair;"),
		Entry("qualified pair", "common.datastore.Pair<String, Object>", "Lcommon/datastore/Pair;"),
		Entry("custom pair", "test/Tuple<String, String>", "Ltest/Tuple;"),
		Entry("opaque class", "java.util.List", "Ljava/util/List;"),
	)

	DescribeTable("rejects invalid types",
		func(input string, message string) {
			_, err := ResolveType(input)
			Expect(err).To(MatchError(ErrConfiguration))
			Expect(err.Error()).To(ContainSubstring(message))
		},
		Entry("unknown name", "Number", "unknown type Number"),
		Entry("array arity", "array<String, String>", "type array expects 1 type argument(s), got 2"),
		Entry("pair arity", "Pair<String>", "type Pair expects 2 type argument(s), got 1"),
		Entry("primitive with arguments", "int<String>", "type int expects 0 type argument(s), got 1"),
		Entry("primitive array", "array<int>", "array element type int is not a reference type"),
		Entry("primitive pair", "Pair<String, boolean>", "pair value type boolean is not a reference type"),
		Entry("syntax", "array<", "invalid type expression"),
	)
})

var _ = Describe("Loading declarations", Label("declarations"), func() {
	const declarations = `
package: bindings
calls:
  - name: percent
    class: entry/percent/PercentEntryPoint
    method: run_invoked
    returns: array<Pair<array<String>, Boolean>>
    arguments: [Integer, Boolean, array<Boolean>, array<String>, Integer, String, String]
  - name: touch
    class: test/Echo
    method: touch
`

	It("decodes and resolves the calls", func() {
		file, err := LoadDeclarations(strings.NewReader(declarations))
		Expect(err).To(BeNil())
		Expect(file.Package).To(Equal("bindings"))
		Expect(file.Calls).To(HaveLen(2))

		resolved, err := file.Declarations()
		Expect(err).To(BeNil())
		Expect(resolved[0].Name).To(Equal("percent"))
		Expect(MethodSignature(resolved[0].Returns, resolved[0].Arguments...)).To(Equal("(Ljava/lang/Integer;Ljava/lang/Boolean;[Ljava/lang/Boolean;[Ljava/lang/String;Ljava/lang/Integer;Ljava/lang/String;Ljava/lang/String;)[Lcommon/datastore/Pair;"))

		Expect(resolved[1].Returns).To(Equal(Void))
		Expect(resolved[1].Arguments).To(BeEmpty())
	})

	It("declares the calls on a bridge", func() {
		file, err := LoadDeclarations(strings.NewReader(declarations))
		Expect(err).To(BeNil())

		b := newTestBridge(nil)
		Expect(DeclareAll(b, file)).To(Succeed())
		Expect(b.Calls()).To(HaveLen(2))

		Expect(b.Start(ctx, "test.jar")).To(Succeed())
		defer func() {
			Expect(b.Destroy(ctx)).To(Succeed())
		}()

		res, err := b.Call(ctx, "percent", 1, false, []any{}, []any{"abc"}, 5, "", "")
		Expect(err).To(BeNil())
		Expect(res).To(Equal([]any{[]any{[]any{"a", "b", "c"}, true}}))
	})

	DescribeTable("keeps pair arguments together",
		func(arguments string) {
			file, err := LoadDeclarations(strings.NewReader("calls:\n  - name: x\n    class: a/B\n    method: m\n    arguments:" + arguments))
			Expect(err).To(BeNil())
			Expect(file.Calls[0].Arguments).To(Equal(TypeList{"test/Tuple<String, Object>", "Pair<array<String>, Boolean>", "java.util.List"}))

			resolved, err := file.Declarations()
			Expect(err).To(BeNil())
			Expect(resolved[0].Arguments[0].Signature()).To(Equal("Ltest/Tuple;"))
			Expect(resolved[0].Arguments[1].Name()).To(Equal("Pair<array<String>, Boolean>"))
		},
		Entry("flow sequence", " [test/Tuple<String, Object>, Pair<array<String>, Boolean>, java.util.List]\n"),
		Entry("flow sequence without spaces", " [test/Tuple<String,Object>,Pair<array<String>,Boolean>,java.util.List]\n"),
		Entry("quoted", " [\"test/Tuple<String, Object>\", 'Pair<array<String>, Boolean>', java.util.List]\n"),
		Entry("block sequence", "\n      - test/Tuple<String, Object>\n      - Pair<array<String>, Boolean>\n      - java.util.List\n"),
	)

	It("rejects unterminated arguments", func() {
		_, err := LoadDeclarations(strings.NewReader("calls:\n  - name: x\n    arguments: [Pair<String, Boolean]\n"))
		Expect(err).To(MatchError(ErrConfiguration))
		Expect(err.Error()).To(ContainSubstring(`unterminated type expression "Pair<String, Boolean"`))

		_, err = LoadDeclarations(strings.NewReader("calls:\n  - name: x\n    arguments: String\n"))
		Expect(err).To(MatchError(ErrConfiguration))
	})

	It("accepts an empty document", func() {
		file, err := LoadDeclarations(strings.NewReader(""))
		Expect(err).To(BeNil())
		Expect(file.Calls).To(BeEmpty())
	})

	It("rejects unknown fields", func() {
		_, err := LoadDeclarations(strings.NewReader("calls:\n  - name: x\n    signature: ()V\n"))
		Expect(err).To(MatchError(ErrConfiguration))
	})

	It("rejects duplicate names", func() {
		_, err := LoadDeclarations(strings.NewReader("calls:\n  - name: x\n  - name: x\n"))
		Expect(err).To(MatchError("call x is declared twice"))
	})

	It("reports unresolvable types", func() {
		file, err := LoadDeclarations(strings.NewReader("calls:\n  - name: x\n    class: a/B\n    method: m\n    arguments: [array<int>]\n"))
		Expect(err).To(BeNil())

		_, err = file.Declarations()
		Expect(err).To(MatchError(ErrConfiguration))
		Expect(err.Error()).To(HavePrefix("could not resolve argument 0 of call x"))
	})
})
