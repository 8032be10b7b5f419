package javabind

import (
	"github.com/jerbob92/javabind/jni"
)

// MethodSignature composes the method descriptor of a method returning ret
// and taking args, in declaration order.
func MethodSignature(ret Type, args ...Type) string {
	argSigs := make([]string, len(args))
	for i := range args {
		argSigs[i] = args[i].Signature()
	}
	return jni.MethodSignature(ret.Signature(), argSigs...)
}
