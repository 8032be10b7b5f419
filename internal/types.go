package javabind

import (
	"context"

	"github.com/jerbob92/javabind/jni"
)

// Type describes how a logical type is named, mangled into a signature and
// converted between dynamic Go values and runtime values.
type Type interface {
	// Name returns the type expression of the type, e.g.
	// "array<Pair<array<String>, Boolean>>".
	Name() string
	// Signature returns the field descriptor, e.g. "[Lcommon/datastore/Pair;".
	Signature() string
	IsReference() bool
	// GoType returns the Go type of converted values, used by the generator.
	GoType() string
	// ToWireType converts a dynamic value. References created for the value
	// are tracked in frame.
	ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error)
	// FromWireType converts a runtime value. It does not delete the
	// reference it was given.
	FromWireType(ctx context.Context, env jni.Env, wt jni.Value) (any, error)
	validate() error
}

type baseType struct {
	name      string
	signature string
}

func (bt *baseType) Name() string {
	return bt.name
}

func (bt *baseType) Signature() string {
	return bt.signature
}

func (bt *baseType) IsReference() bool {
	return jni.IsReferenceSignature(bt.signature)
}

func (bt *baseType) validate() error {
	return nil
}

// className returns the name FindClass expects for a reference signature.
func className(sig string) string {
	if len(sig) > 2 && sig[0] == 'L' {
		return sig[1 : len(sig)-1]
	}
	return sig
}

func findClass(env jni.Env, name string) (jni.Class, error) {
	cls := env.FindClass(name)
	if cls == 0 {
		env.ExceptionClear()
		return 0, newError(KindLookup, nil, "class %s not found", name)
	}
	return cls, nil
}

func getMethodID(env jni.Env, cls jni.Class, name, sig string, static bool) (jni.MethodID, error) {
	var mid jni.MethodID
	if static {
		mid = env.GetStaticMethodID(cls, name, sig)
	} else {
		mid = env.GetMethodID(cls, name, sig)
	}
	if mid == 0 {
		env.ExceptionClear()
		return 0, newError(KindLookup, nil, "method %s not found", name)
	}
	return mid, nil
}

// takeException clears the pending exception, if any, and returns its
// message.
func takeException(env jni.Env) (string, bool) {
	if !env.ExceptionCheck() {
		return "", false
	}

	throwable := env.ExceptionOccurred()
	env.ExceptionClear()
	if throwable == 0 {
		return "", true
	}
	defer env.DeleteLocalRef(throwable)

	cls := env.FindClass(throwableClassName)
	if cls == 0 {
		env.ExceptionClear()
		return "", true
	}
	getMessage := env.GetMethodID(cls, "getMessage", jni.MethodSignature(String.Signature()))
	if getMessage == 0 {
		env.ExceptionClear()
		return "", true
	}

	message := jni.DecodeObject(env.CallMethodA(throwable, getMessage, nil))
	if env.ExceptionCheck() || message == 0 {
		env.ExceptionClear()
		return "", true
	}
	defer env.DeleteLocalRef(message)

	chars := env.GetStringChars(message)
	if chars == nil {
		env.ExceptionClear()
		return "", true
	}
	defer env.ReleaseStringChars(message, chars)

	return string(narrow(chars)), true
}

// invocationError returns the error for a pending exception thrown by
// method, or nil when there is none.
func invocationError(env jni.Env, method string) error {
	message, thrown := takeException(env)
	if !thrown {
		return nil
	}
	if message == "" {
		return newError(KindInvocation, nil, "method %s threw an exception", method)
	}
	return newError(KindInvocation, nil, "method %s threw an exception: %s", method, message)
}

// callStatic calls a static method returning a value.
func callStatic(env jni.Env, class, method, sig string, args ...jni.Value) (jni.Value, error) {
	cls, err := findClass(env, class)
	if err != nil {
		return 0, err
	}
	mid, err := getMethodID(env, cls, method, sig, true)
	if err != nil {
		return 0, err
	}

	ret := env.CallStaticMethodA(cls, mid, args)
	if err := invocationError(env, method); err != nil {
		return 0, err
	}
	return ret, nil
}

// callMethod calls an instance method declared by class.
func callMethod(env jni.Env, obj jni.Object, class, method, sig string, args ...jni.Value) (jni.Value, error) {
	cls, err := findClass(env, class)
	if err != nil {
		return 0, err
	}
	mid, err := getMethodID(env, cls, method, sig, false)
	if err != nil {
		return 0, err
	}

	ret := env.CallMethodA(obj, mid, args)
	if err := invocationError(env, method); err != nil {
		return 0, err
	}
	return ret, nil
}
