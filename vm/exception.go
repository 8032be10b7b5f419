package vm

import (
	"errors"
	"fmt"
)

// Names of the throwable classes the VM raises itself.
const (
	ThrowableClassName         = "java/lang/Throwable"
	ExceptionClassName         = "java/lang/Exception"
	RuntimeExceptionClassName  = "java/lang/RuntimeException"
	ErrorClassName             = "java/lang/Error"
	IllegalArgumentClassName   = "java/lang/IllegalArgumentException"
	ArithmeticClassName        = "java/lang/ArithmeticException"
	NullPointerClassName       = "java/lang/NullPointerException"
	ArrayIndexClassName        = "java/lang/ArrayIndexOutOfBoundsException"
	ArrayStoreClassName        = "java/lang/ArrayStoreException"
	ClassCastClassName         = "java/lang/ClassCastException"
	OutOfMemoryClassName       = "java/lang/OutOfMemoryError"
	NoSuchMethodClassName      = "java/lang/NoSuchMethodError"
	NoClassDefFoundClassName   = "java/lang/NoClassDefFoundError"
	NegativeArraySizeClassName = "java/lang/NegativeArraySizeException"
)

// Exception is an error that a NativeFunc returns to throw a specific
// throwable class.
type Exception struct {
	Class   string
	Message string
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Class
	}
	return fmt.Sprintf("%s: %s", e.Class, e.Message)
}

// Throw creates an Exception of the given class.
func Throw(className, format string, args ...any) *Exception {
	return &Exception{
		Class:   className,
		Message: fmt.Sprintf(format, args...),
	}
}

// throwableFromError creates the throwable object for an error returned by
// native code.
func (vm *VM) throwableFromError(err error) *Object {
	className := RuntimeExceptionClassName
	message := err.Error()

	var exception *Exception
	if errors.As(err, &exception) {
		className = exception.Class
		message = exception.Message
	}

	cls, ok := vm.lookupClass(className)
	if !ok || !cls.isSubclassOf(vm.mustClass(ThrowableClassName)) {
		cls = vm.mustClass(RuntimeExceptionClassName)
		message = err.Error()
	}

	return &Object{class: cls, value: message}
}
