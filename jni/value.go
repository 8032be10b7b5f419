package jni

import (
	"github.com/tetratelabs/wazero/api"
)

// Value is one argument or result word, the equivalent of the jvalue union.
// Scalars use the same encoding as a wazero stack slot, so a Value can be
// handed to a WebAssembly function unchanged.
type Value uint64

func EncodeBoolean(v bool) Value {
	if v {
		return 1
	}
	return 0
}

func DecodeBoolean(v Value) bool {
	return api.DecodeU32(uint64(v)) != 0
}

func EncodeByte(v int8) Value {
	return Value(api.EncodeI32(int32(v)))
}

func DecodeByte(v Value) int8 {
	return int8(api.DecodeI32(uint64(v)))
}

func EncodeChar(v uint16) Value {
	return Value(api.EncodeU32(uint32(v)))
}

func DecodeChar(v Value) uint16 {
	return uint16(api.DecodeU32(uint64(v)))
}

func EncodeShort(v int16) Value {
	return Value(api.EncodeI32(int32(v)))
}

func DecodeShort(v Value) int16 {
	return int16(api.DecodeI32(uint64(v)))
}

func EncodeInt(v int32) Value {
	return Value(api.EncodeI32(v))
}

func DecodeInt(v Value) int32 {
	return api.DecodeI32(uint64(v))
}

func EncodeLong(v int64) Value {
	return Value(api.EncodeI64(v))
}

func DecodeLong(v Value) int64 {
	return int64(v)
}

func EncodeFloat(v float32) Value {
	return Value(api.EncodeF32(v))
}

func DecodeFloat(v Value) float32 {
	return api.DecodeF32(uint64(v))
}

func EncodeDouble(v float64) Value {
	return Value(api.EncodeF64(v))
}

func DecodeDouble(v Value) float64 {
	return api.DecodeF64(uint64(v))
}

func EncodeObject(o Object) Value {
	return Value(o)
}

func DecodeObject(v Value) Object {
	return Object(v)
}
