package javabind

import (
	"context"
	"fmt"
	"math"

	"github.com/jerbob92/javabind/jni"
)

type intType struct {
	baseType
	min int64
	max int64
}

func (it *intType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	switch it.signature {
	case jni.SigByte:
		return jni.DecodeByte(value), nil
	case jni.SigChar:
		return jni.DecodeChar(value), nil
	case jni.SigShort:
		return jni.DecodeShort(value), nil
	case jni.SigInt:
		return jni.DecodeInt(value), nil
	case jni.SigLong:
		return jni.DecodeLong(value), nil
	}

	return nil, fmt.Errorf("unknown integer type %s", it.name)
}

// convert validates a dynamic value against the range of the type.
func (it *intType) convert(o any) (int64, error) {
	val, ok := toInt64(o)
	if !ok {
		return 0, typeMismatch("expected number, got %T", o)
	}
	if val < it.min || val > it.max {
		return 0, typeMismatch("value %d out of range for %s", val, it.name)
	}
	return val, nil
}

func (it *intType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	val, err := it.convert(o)
	if err != nil {
		return 0, err
	}

	switch it.signature {
	case jni.SigByte:
		return jni.EncodeByte(int8(val)), nil
	case jni.SigChar:
		return jni.EncodeChar(uint16(val)), nil
	case jni.SigShort:
		return jni.EncodeShort(int16(val)), nil
	case jni.SigInt:
		return jni.EncodeInt(int32(val)), nil
	case jni.SigLong:
		return jni.EncodeLong(val), nil
	}

	return 0, fmt.Errorf("unknown integer type %s", it.name)
}

func (it *intType) GoType() string {
	switch it.signature {
	case jni.SigByte:
		return "int8"
	case jni.SigChar:
		return "uint16"
	case jni.SigShort:
		return "int16"
	case jni.SigInt:
		return "int32"
	}
	return "int64"
}

var (
	Byte Type = &intType{
		baseType: baseType{name: "byte", signature: jni.SigByte},
		min:      math.MinInt8,
		max:      math.MaxInt8,
	}
	// Char is the 16-bit unsigned character type, converted as a number.
	Char Type = &intType{
		baseType: baseType{name: "char", signature: jni.SigChar},
		min:      0,
		max:      math.MaxUint16,
	}
	Short Type = &intType{
		baseType: baseType{name: "short", signature: jni.SigShort},
		min:      math.MinInt16,
		max:      math.MaxInt16,
	}
	Int Type = &intType{
		baseType: baseType{name: "int", signature: jni.SigInt},
		min:      math.MinInt32,
		max:      math.MaxInt32,
	}
	Long Type = &intType{
		baseType: baseType{name: "long", signature: jni.SigLong},
		min:      math.MinInt64,
		max:      math.MaxInt64,
	}
)
