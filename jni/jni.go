// Package jni describes the boundary between javabind and a managed runtime.
//
// The interfaces mirror the small part of the Java Native Interface that the
// bridge needs. Like JNI, most Env operations do not return errors: a failing
// operation returns a zero handle and leaves an exception pending on the Env,
// which the caller inspects with ExceptionCheck.
package jni

import (
	"context"
)

// Version1_8 is the interface version requested by default.
const Version1_8 int32 = 0x00010008

// ClassPathOption is the option prefix used to pass the class path.
const ClassPathOption = "-Djava.class.path="

// Object is a local reference to a managed object. The zero value is the
// null reference.
type Object uintptr

// Class is a handle to a loaded class. Class handles are global to the VM
// and never have to be deleted. The zero value means "not found".
type Class uintptr

// MethodID identifies a method or constructor of a class. The zero value
// means "not found".
type MethodID uintptr

// InitArgs is passed to Launcher.CreateJavaVM.
type InitArgs struct {
	Version            int32
	Options            []string
	IgnoreUnrecognized bool
}

// Launcher creates managed runtime instances.
type Launcher interface {
	CreateJavaVM(ctx context.Context, args InitArgs) (VM, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, args InitArgs) (VM, error)

func (f LauncherFunc) CreateJavaVM(ctx context.Context, args InitArgs) (VM, error) {
	return f(ctx, args)
}

// VM is a live managed runtime instance.
type VM interface {
	// AttachCurrentThread registers the calling thread with the runtime and
	// returns the Env to use on it until DetachCurrentThread.
	AttachCurrentThread(ctx context.Context) (Env, error)
	DetachCurrentThread(env Env) error
	DestroyJavaVM(ctx context.Context) error
}

// Env is the per-thread interface to the runtime.
type Env interface {
	FindClass(name string) Class
	GetStaticMethodID(cls Class, name, sig string) MethodID
	GetMethodID(cls Class, name, sig string) MethodID

	// CallStaticMethodA and CallMethodA return the raw result word. The
	// result of a void method is 0.
	CallStaticMethodA(cls Class, method MethodID, args []Value) Value
	CallMethodA(obj Object, method MethodID, args []Value) Value
	NewObjectA(cls Class, ctor MethodID, args []Value) Object
	IsInstanceOf(obj Object, cls Class) bool

	NewString(chars []uint16) Object
	GetStringLength(str Object) int
	// GetStringChars returns a copy of the string's UTF-16 code units, or nil
	// when the buffer could not be allocated.
	GetStringChars(str Object) []uint16
	ReleaseStringChars(str Object, chars []uint16)

	NewObjectArray(length int, elementClass Class, initial Object) Object
	GetArrayLength(array Object) int
	GetObjectArrayElement(array Object, index int) Object
	SetObjectArrayElement(array Object, index int, value Object)

	DeleteLocalRef(ref Object)

	ExceptionCheck() bool
	// ExceptionOccurred returns a new local reference to the pending
	// throwable, or 0.
	ExceptionOccurred() Object
	ExceptionClear()
}
