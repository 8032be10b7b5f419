package javabind

import (
	"context"
	"fmt"

	"github.com/jerbob92/javabind/jni"
)

type voidType struct {
	baseType
}

func (vt *voidType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	return nil, nil
}

func (vt *voidType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	return 0, fmt.Errorf("void can only be used as a return type")
}

func (vt *voidType) GoType() string {
	return ""
}

// Void is only valid as a return type.
var Void Type = &voidType{
	baseType: baseType{name: "void", signature: jni.SigVoid},
}
