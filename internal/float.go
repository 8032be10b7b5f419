package javabind

import (
	"context"
	"math"

	"github.com/jerbob92/javabind/jni"
)

type floatType struct {
	baseType
	size int32
}

func (ft *floatType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	if ft.size == 4 {
		return jni.DecodeFloat(value), nil
	}
	return jni.DecodeDouble(value), nil
}

func (ft *floatType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	val, ok := toFloat64(o)
	if !ok {
		return 0, typeMismatch("expected number, got %T", o)
	}

	if ft.size == 4 {
		if !math.IsInf(val, 0) && !math.IsNaN(val) && math.Abs(val) > math.MaxFloat32 {
			return 0, typeMismatch("value %g out of range for %s", val, ft.name)
		}
		return jni.EncodeFloat(float32(val)), nil
	}

	return jni.EncodeDouble(val), nil
}

func (ft *floatType) GoType() string {
	if ft.size == 4 {
		return "float32"
	}
	return "float64"
}

var (
	Float Type = &floatType{
		baseType: baseType{name: "float", signature: jni.SigFloat},
		size:     4,
	}
	Double Type = &floatType{
		baseType: baseType{name: "double", signature: jni.SigDouble},
		size:     8,
	}
)
