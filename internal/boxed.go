package javabind

import (
	"context"

	"github.com/jerbob92/javabind/jni"
)

// boxedType converts through the wrapper class's static valueOf factory and
// its unboxing instance method.
type boxedType struct {
	baseType
	className string
	primitive Type
	unbox     string
}

func (bt *boxedType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	ref := jni.DecodeObject(value)
	if ref == 0 {
		return nil, typeMismatch("expected %s, got null", bt.name)
	}

	unboxed, err := callMethod(env, ref, bt.className, bt.unbox, jni.MethodSignature(bt.primitive.Signature()))
	if err != nil {
		return nil, err
	}

	return bt.primitive.FromWireType(ctx, env, unboxed)
}

func (bt *boxedType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	primitive, err := bt.primitive.ToWireType(ctx, env, frame, o)
	if err != nil {
		return 0, err
	}

	boxed, err := callStatic(env, bt.className, "valueOf", jni.MethodSignature(bt.signature, bt.primitive.Signature()), primitive)
	if err != nil {
		return 0, err
	}

	ref := jni.DecodeObject(boxed)
	if ref == 0 {
		return 0, newError(KindInvocation, nil, "method valueOf returned null")
	}

	return jni.EncodeObject(frame.Track(ref)), nil
}

func (bt *boxedType) GoType() string {
	return bt.primitive.GoType()
}

func newBoxedType(name, className string, primitive Type, unbox string) *boxedType {
	return &boxedType{
		baseType: baseType{
			name:      name,
			signature: jni.ClassSignature(className),
		},
		className: className,
		primitive: primitive,
		unbox:     unbox,
	}
}

var (
	BoxedBoolean Type = newBoxedType("Boolean", "java/lang/Boolean", Boolean, "booleanValue")
	BoxedInteger Type = newBoxedType("Integer", "java/lang/Integer", Int, "intValue")
	BoxedLong    Type = newBoxedType("Long", "java/lang/Long", Long, "longValue")
	BoxedDouble  Type = newBoxedType("Double", "java/lang/Double", Double, "doubleValue")
)
