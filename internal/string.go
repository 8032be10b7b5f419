package javabind

import (
	"context"

	"github.com/jerbob92/javabind/jni"

	"golang.org/x/text/encoding/charmap"
)

const (
	objectClassName    = "java/lang/Object"
	stringClassName    = "java/lang/String"
	throwableClassName = "java/lang/Throwable"
)

type stringType struct {
	baseType
}

// widen maps every host byte to one UTF-16 code unit.
func widen(data []byte) []uint16 {
	chars := make([]uint16, len(data))
	for i := range data {
		chars[i] = uint16(charmap.ISO8859_1.DecodeByte(data[i]))
	}
	return chars
}

// narrow maps every UTF-16 code unit back to one host byte. Units outside
// Latin-1 keep their low byte.
func narrow(chars []uint16) []byte {
	data := make([]byte, len(chars))
	for i := range chars {
		if b, ok := charmap.ISO8859_1.EncodeRune(rune(chars[i])); ok {
			data[i] = b
		} else {
			data[i] = byte(chars[i])
		}
	}
	return data
}

func (st *stringType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	ref := jni.DecodeObject(value)
	if ref == 0 {
		return nil, typeMismatch("expected %s, got null", st.name)
	}

	chars := env.GetStringChars(ref)
	if chars == nil {
		env.ExceptionClear()
		return nil, newError(KindAllocation, nil, "string allocation failed")
	}
	defer env.ReleaseStringChars(ref, chars)

	return string(narrow(chars)), nil
}

func (st *stringType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	var data []byte
	switch v := o.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return 0, typeMismatch("expected string, got %T", o)
	}

	ref := env.NewString(widen(data))
	if ref == 0 {
		message, _ := takeException(env)
		return 0, newError(KindAllocation, nil, "string allocation failed%s", suffix(message))
	}

	return jni.EncodeObject(frame.Track(ref)), nil
}

func (st *stringType) GoType() string {
	return "string"
}

// String is java/lang/String. Strings are byte strings on the host side,
// every byte becomes one character.
var String Type = &stringType{
	baseType: baseType{name: "String", signature: jni.ClassSignature(stringClassName)},
}

// suffix formats an optional exception message for error details.
func suffix(message string) string {
	if message == "" {
		return ""
	}
	return ": " + message
}
