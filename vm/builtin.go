package vm

const (
	objectClassName  = "java/lang/Object"
	stringClassName  = "java/lang/String"
	booleanClassName = "java/lang/Boolean"
	integerClassName = "java/lang/Integer"
	longClassName    = "java/lang/Long"
	doubleClassName  = "java/lang/Double"

	// PairClassName is the two-element helper class bundled with the VM.
	PairClassName = "common/datastore/Pair"
)

func boxedClass(name, primitive, unboxName string) *ClassDef {
	return &ClassDef{
		Name: name,
		Methods: []MethodDef{
			{
				Name:      "valueOf",
				Signature: "(" + primitive + ")L" + name + ";",
				Static:    true,
				Fn: func(t *Thread, this *Object, args []any) (any, error) {
					return &Object{class: t.vm.mustClass(name), value: args[0]}, nil
				},
			},
			{
				Name:      unboxName,
				Signature: "()" + primitive,
				Fn: func(t *Thread, this *Object, args []any) (any, error) {
					return this.value, nil
				},
			},
		},
	}
}

func throwableClass(name, super string) *ClassDef {
	return &ClassDef{
		Name:  name,
		Super: super,
		Methods: []MethodDef{
			{
				Name:      "<init>",
				Signature: "(Ljava/lang/String;)V",
				Fn: func(t *Thread, this *Object, args []any) (any, error) {
					if message, ok := args[0].(*Object); ok && message != nil {
						this.value = message.String()
					}
					return nil, nil
				},
			},
		},
	}
}

// builtinClasses returns the classes every VM starts with, in definition
// order.
func builtinClasses() []*ClassDef {
	classes := []*ClassDef{
		{
			Name: objectClassName,
			Methods: []MethodDef{
				{
					Name:      "<init>",
					Signature: "()V",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						return nil, nil
					},
				},
			},
		},
		{
			Name: stringClassName,
			Methods: []MethodDef{
				{
					Name:      "length",
					Signature: "()I",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						return int32(len(this.Chars())), nil
					},
				},
			},
		},
		boxedClass(booleanClassName, "Z", "booleanValue"),
		boxedClass(integerClassName, "I", "intValue"),
		boxedClass(longClassName, "J", "longValue"),
		boxedClass(doubleClassName, "D", "doubleValue"),
		{
			Name: ThrowableClassName,
			Methods: []MethodDef{
				{
					Name:      "<init>",
					Signature: "(Ljava/lang/String;)V",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						if message, ok := args[0].(*Object); ok && message != nil {
							this.value = message.String()
						}
						return nil, nil
					},
				},
				{
					Name:      "getMessage",
					Signature: "()Ljava/lang/String;",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						message, ok := this.value.(string)
						if !ok {
							return nil, nil
						}
						return t.NewString(message), nil
					},
				},
			},
		},
		throwableClass(ExceptionClassName, ThrowableClassName),
		throwableClass(ErrorClassName, ThrowableClassName),
		throwableClass(RuntimeExceptionClassName, ExceptionClassName),
		throwableClass(IllegalArgumentClassName, RuntimeExceptionClassName),
		throwableClass(ArithmeticClassName, RuntimeExceptionClassName),
		throwableClass(NullPointerClassName, RuntimeExceptionClassName),
		throwableClass(ArrayIndexClassName, RuntimeExceptionClassName),
		throwableClass(ArrayStoreClassName, RuntimeExceptionClassName),
		throwableClass(ClassCastClassName, RuntimeExceptionClassName),
		throwableClass(NegativeArraySizeClassName, RuntimeExceptionClassName),
		throwableClass(OutOfMemoryClassName, ErrorClassName),
		throwableClass(NoSuchMethodClassName, ErrorClassName),
		throwableClass(NoClassDefFoundClassName, ErrorClassName),
		{
			Name: PairClassName,
			Methods: []MethodDef{
				{
					Name:      "<init>",
					Signature: "(Ljava/lang/Object;Ljava/lang/Object;)V",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						this.SetField("key", args[0])
						this.SetField("value", args[1])
						return nil, nil
					},
				},
				{
					Name:      "getKey",
					Signature: "()Ljava/lang/Object;",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						return this.Field("key"), nil
					},
				},
				{
					Name:      "getValue",
					Signature: "()Ljava/lang/Object;",
					Fn: func(t *Thread, this *Object, args []any) (any, error) {
						return this.Field("value"), nil
					},
				},
			},
		},
	}

	return classes
}
