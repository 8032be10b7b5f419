package vm

import (
	"github.com/jerbob92/javabind/jni"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Using an attached thread", Label("vm"), func() {
	var vm *VM
	var env jni.Env
	var greeter jni.Class

	BeforeEach(func() {
		var err error
		vm, err = newTestVM(nil, "-Dsfinder.mode=test", "-Xmx1g")
		Expect(err).To(BeNil())

		env, err = vm.AttachCurrentThread(ctx)
		Expect(err).To(BeNil())

		greeter = env.FindClass(greeterClassName)
		Expect(greeter).ToNot(BeZero())
	})

	AfterEach(func() {
		Expect(vm.DetachCurrentThread(env)).To(Succeed())
		Expect(vm.DestroyJavaVM(ctx)).To(Succeed())
	})

	When("looking up classes and methods", func() {
		It("leaves a NoClassDefFoundError for unknown classes", func() {
			Expect(env.FindClass("test/Missing")).To(BeZero())
			className, message := pendingException(env)
			Expect(className).To(Equal(NoClassDefFoundClassName))
			Expect(message).To(Equal("test/Missing"))
		})

		It("leaves a NoSuchMethodError for unknown methods", func() {
			Expect(env.GetStaticMethodID(greeter, "greet", "()V")).To(BeZero())
			className, message := pendingException(env)
			Expect(className).To(Equal(NoSuchMethodClassName))
			Expect(message).To(Equal("test/Greeter.greet()V"))
		})

		It("distinguishes static and instance methods", func() {
			Expect(env.GetMethodID(greeter, "greet", "(Ljava/lang/String;)Ljava/lang/String;")).To(BeZero())
			pendingException(env)
			Expect(env.GetStaticMethodID(greeter, "count", "()I")).To(BeZero())
			pendingException(env)
		})

		It("resolves array classes", func() {
			Expect(env.FindClass("[Ljava/lang/String;")).ToNot(BeZero())
			Expect(env.FindClass("[I")).To(BeZero())
			pendingException(env)
		})
	})

	When("calling static methods", func() {
		It("passes and returns strings", func() {
			greet := env.GetStaticMethodID(greeter, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
			Expect(greet).ToNot(BeZero())

			name := newJavaString(env, "world")
			defer env.DeleteLocalRef(name)

			res := jni.DecodeObject(env.CallStaticMethodA(greeter, greet, []jni.Value{jni.EncodeObject(name)}))
			Expect(env.ExceptionCheck()).To(BeFalse())
			defer env.DeleteLocalRef(res)
			Expect(javaString(env, res)).To(Equal("hello world"))
		})

		It("returns null as the zero reference", func() {
			greet := env.GetStaticMethodID(greeter, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
			res := env.CallStaticMethodA(greeter, greet, []jni.Value{jni.EncodeObject(0)})
			Expect(env.ExceptionCheck()).To(BeFalse())
			Expect(jni.DecodeObject(res)).To(BeZero())
		})

		It("exposes system properties", func() {
			property := env.GetStaticMethodID(greeter, "property", "(Ljava/lang/String;)Ljava/lang/String;")
			name := newJavaString(env, "sfinder.mode")
			defer env.DeleteLocalRef(name)

			res := jni.DecodeObject(env.CallStaticMethodA(greeter, property, []jni.Value{jni.EncodeObject(name)}))
			defer env.DeleteLocalRef(res)
			Expect(javaString(env, res)).To(Equal("test"))
		})

		It("rejects arguments of the wrong class", func() {
			greet := env.GetStaticMethodID(greeter, "greet", "(Ljava/lang/String;)Ljava/lang/String;")
			arr := env.NewObjectArray(0, env.FindClass("java/lang/String"), 0)
			defer env.DeleteLocalRef(arr)

			env.CallStaticMethodA(greeter, greet, []jni.Value{jni.EncodeObject(arr)})
			className, _ := pendingException(env)
			Expect(className).To(Equal(IllegalArgumentClassName))
		})

		It("throws errors returned by native code", func() {
			fail := env.GetStaticMethodID(greeter, "fail", "()V")
			env.CallStaticMethodA(greeter, fail, nil)
			className, message := pendingException(env)
			Expect(className).To(Equal(RuntimeExceptionClassName))
			Expect(message).To(Equal("boom"))
		})

		It("keeps the class of thrown exceptions", func() {
			reject := env.GetStaticMethodID(greeter, "reject", "()V")
			env.CallStaticMethodA(greeter, reject, nil)

			ref := env.ExceptionOccurred()
			Expect(env.IsInstanceOf(ref, env.FindClass(RuntimeExceptionClassName))).To(BeTrue())
			env.DeleteLocalRef(ref)

			className, message := pendingException(env)
			Expect(className).To(Equal(IllegalArgumentClassName))
			Expect(message).To(Equal("rejected"))
		})

		It("throws a ClassCastException when native code returns the wrong type", func() {
			wrong := env.GetStaticMethodID(greeter, "wrong", "()I")
			env.CallStaticMethodA(greeter, wrong, nil)
			className, _ := pendingException(env)
			Expect(className).To(Equal(ClassCastClassName))
		})
	})

	When("working with instances", func() {
		It("constructs objects and calls instance methods", func() {
			ctor := env.GetMethodID(greeter, "<init>", "(I)V")
			count := env.GetMethodID(greeter, "count", "()I")
			Expect(ctor).ToNot(BeZero())
			Expect(count).ToNot(BeZero())

			obj := env.NewObjectA(greeter, ctor, []jni.Value{jni.EncodeInt(42)})
			Expect(obj).ToNot(BeZero())
			defer env.DeleteLocalRef(obj)

			res := env.CallMethodA(obj, count, nil)
			Expect(env.ExceptionCheck()).To(BeFalse())
			Expect(jni.DecodeInt(res)).To(Equal(int32(42)))
		})

		It("throws a NullPointerException for null receivers", func() {
			count := env.GetMethodID(greeter, "count", "()I")
			env.CallMethodA(0, count, nil)
			className, _ := pendingException(env)
			Expect(className).To(Equal(NullPointerClassName))
		})

		It("boxes and unboxes primitives", func() {
			integer := env.FindClass("java/lang/Integer")
			valueOf := env.GetStaticMethodID(integer, "valueOf", "(I)Ljava/lang/Integer;")
			intValue := env.GetMethodID(integer, "intValue", "()I")

			boxed := jni.DecodeObject(env.CallStaticMethodA(integer, valueOf, []jni.Value{jni.EncodeInt(-7)}))
			Expect(boxed).ToNot(BeZero())
			defer env.DeleteLocalRef(boxed)

			Expect(env.IsInstanceOf(boxed, integer)).To(BeTrue())
			Expect(env.IsInstanceOf(boxed, env.FindClass("java/lang/Boolean"))).To(BeFalse())
			Expect(jni.DecodeInt(env.CallMethodA(boxed, intValue, nil))).To(Equal(int32(-7)))
		})

		It("reads pairs returned by native code", func() {
			pairs := env.GetStaticMethodID(greeter, "pairs", "()[Lcommon/datastore/Pair;")
			arr := jni.DecodeObject(env.CallStaticMethodA(greeter, pairs, nil))
			Expect(env.ExceptionCheck()).To(BeFalse())
			defer env.DeleteLocalRef(arr)

			Expect(env.GetArrayLength(arr)).To(Equal(2))

			second := env.GetObjectArrayElement(arr, 1)
			Expect(second).To(BeZero())
			Expect(env.ExceptionCheck()).To(BeFalse())

			pair := env.GetObjectArrayElement(arr, 0)
			defer env.DeleteLocalRef(pair)

			pairClass := env.FindClass(PairClassName)
			getKey := env.GetMethodID(pairClass, "getKey", "()Ljava/lang/Object;")
			getValue := env.GetMethodID(pairClass, "getValue", "()Ljava/lang/Object;")

			key := jni.DecodeObject(env.CallMethodA(pair, getKey, nil))
			defer env.DeleteLocalRef(key)
			Expect(javaString(env, key)).To(Equal("a"))

			value := jni.DecodeObject(env.CallMethodA(pair, getValue, nil))
			defer env.DeleteLocalRef(value)
			booleanValue := env.GetMethodID(env.FindClass("java/lang/Boolean"), "booleanValue", "()Z")
			Expect(jni.DecodeBoolean(env.CallMethodA(value, booleanValue, nil))).To(BeTrue())
		})
	})

	When("working with arrays", func() {
		var stringClass jni.Class

		BeforeEach(func() {
			stringClass = env.FindClass("java/lang/String")
		})

		It("stores and loads elements", func() {
			arr := env.NewObjectArray(2, stringClass, 0)
			defer env.DeleteLocalRef(arr)

			str := newJavaString(env, "x")
			defer env.DeleteLocalRef(str)
			env.SetObjectArrayElement(arr, 1, str)
			Expect(env.ExceptionCheck()).To(BeFalse())

			first := env.GetObjectArrayElement(arr, 0)
			Expect(first).To(BeZero())

			second := env.GetObjectArrayElement(arr, 1)
			defer env.DeleteLocalRef(second)
			Expect(javaString(env, second)).To(Equal("x"))
		})

		It("fills new arrays with the initial element", func() {
			str := newJavaString(env, "fill")
			defer env.DeleteLocalRef(str)

			arr := env.NewObjectArray(3, stringClass, str)
			defer env.DeleteLocalRef(arr)

			last := env.GetObjectArrayElement(arr, 2)
			defer env.DeleteLocalRef(last)
			Expect(javaString(env, last)).To(Equal("fill"))
		})

		It("rejects elements of the wrong class", func() {
			arr := env.NewObjectArray(1, stringClass, 0)
			defer env.DeleteLocalRef(arr)

			other := env.NewObjectArray(0, stringClass, 0)
			defer env.DeleteLocalRef(other)

			env.SetObjectArrayElement(arr, 0, other)
			className, _ := pendingException(env)
			Expect(className).To(Equal(ArrayStoreClassName))
		})

		It("checks bounds", func() {
			arr := env.NewObjectArray(1, stringClass, 0)
			defer env.DeleteLocalRef(arr)

			Expect(env.GetObjectArrayElement(arr, 1)).To(BeZero())
			className, message := pendingException(env)
			Expect(className).To(Equal(ArrayIndexClassName))
			Expect(message).To(Equal("index 1 out of bounds for length 1"))

			env.SetObjectArrayElement(arr, -1, 0)
			className, _ = pendingException(env)
			Expect(className).To(Equal(ArrayIndexClassName))
		})

		It("rejects negative sizes", func() {
			Expect(env.NewObjectArray(-1, stringClass, 0)).To(BeZero())
			className, _ := pendingException(env)
			Expect(className).To(Equal(NegativeArraySizeClassName))
		})

		It("treats arrays as covariant", func() {
			arr := env.NewObjectArray(0, stringClass, 0)
			defer env.DeleteLocalRef(arr)

			Expect(env.IsInstanceOf(arr, env.FindClass("[Ljava/lang/Object;"))).To(BeTrue())
			Expect(env.IsInstanceOf(arr, env.FindClass("java/lang/Object"))).To(BeTrue())
			Expect(env.IsInstanceOf(arr, stringClass)).To(BeFalse())
		})
	})

	When("working with strings", func() {
		It("keeps UTF-16 code units", func() {
			chars := []uint16{'a', 0xe9, 0xd83d, 0xde00}
			str := env.NewString(chars)
			defer env.DeleteLocalRef(str)

			Expect(env.GetStringLength(str)).To(Equal(4))
			got := env.GetStringChars(str)
			Expect(got).To(Equal(chars))
			env.ReleaseStringChars(str, got)
		})

		It("throws for null strings", func() {
			Expect(env.GetStringChars(0)).To(BeNil())
			className, _ := pendingException(env)
			Expect(className).To(Equal(NullPointerClassName))
		})
	})
})

var _ = Describe("Local reference capacity", Label("vm"), func() {
	It("throws an OutOfMemoryError when it is exceeded", func() {
		vm, err := newTestVM(NewConfig().WithLocalCapacity(2))
		Expect(err).To(BeNil())
		defer vm.DestroyJavaVM(ctx)

		env, err := vm.AttachCurrentThread(ctx)
		Expect(err).To(BeNil())

		first := newJavaString(env, "a")
		second := newJavaString(env, "b")
		Expect(first).ToNot(BeZero())
		Expect(second).ToNot(BeZero())

		Expect(newJavaString(env, "c")).To(BeZero())
		Expect(env.ExceptionCheck()).To(BeTrue())

		ref := env.ExceptionOccurred()
		Expect(ref).ToNot(BeZero())
		env.ExceptionClear()
		env.DeleteLocalRef(ref)

		env.DeleteLocalRef(first)
		env.DeleteLocalRef(second)
		Expect(vm.Stats().LiveLocalRefs).To(Equal(0))
		Expect(vm.DetachCurrentThread(env)).To(Succeed())
	})
})
