package javabind

import (
	"context"
	"strings"

	"github.com/jerbob92/javabind/jni"
)

// classType is an opaque reference to a class without conversions. It lets
// declarations name parameter types that are only ever passed as null.
type classType struct {
	baseType
	className string
}

func (ct *classType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	if jni.DecodeObject(value) == 0 {
		return nil, nil
	}
	return nil, typeMismatch("values of class %s cannot be converted", ct.className)
}

func (ct *classType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	if o != nil {
		return 0, typeMismatch("cannot convert %T to %s, only nil is accepted", o, ct.className)
	}
	return jni.EncodeObject(0), nil
}

func (ct *classType) GoType() string {
	return "any"
}

func (ct *classType) validate() error {
	if ct.className == "" || strings.ContainsAny(ct.className, ".;[<> ") {
		return newError(KindConfiguration, nil, "invalid class name %q", ct.className)
	}
	return nil
}

// Class returns an opaque reference type for the internal class name, e.g.
// "java/util/List".
func Class(name string) Type {
	return &classType{
		baseType: baseType{
			name:      name,
			signature: jni.ClassSignature(name),
		},
		className: name,
	}
}
