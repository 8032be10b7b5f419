package javabind

import (
	"context"

	"github.com/jerbob92/javabind/jni"
)

type boolType struct {
	baseType
}

func (bt *boolType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	return jni.DecodeBoolean(value), nil
}

func (bt *boolType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	val, ok := o.(bool)
	if !ok {
		return 0, typeMismatch("expected boolean, got %T", o)
	}
	return jni.EncodeBoolean(val), nil
}

func (bt *boolType) GoType() string {
	return "bool"
}

// Boolean is the primitive boolean type.
var Boolean Type = &boolType{
	baseType: baseType{name: "boolean", signature: jni.SigBoolean},
}
