package javabind

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jerbob92/javabind/jni"
)

type arrayType struct {
	baseType
	element Type
}

// sequence returns the elements of any Go slice or array.
func sequence(o any) ([]any, bool) {
	if arr, ok := o.([]any); ok {
		return arr, true
	}

	if o == nil {
		return nil, false
	}

	rv := reflect.ValueOf(o)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	arr := make([]any, rv.Len())
	for i := range arr {
		arr[i] = rv.Index(i).Interface()
	}
	return arr, true
}

func (at *arrayType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	arr := jni.DecodeObject(value)
	if arr == 0 {
		return nil, typeMismatch("expected %s, got null", at.name)
	}

	length := env.GetArrayLength(arr)
	if env.ExceptionCheck() {
		message, _ := takeException(env)
		return nil, newError(KindInvocation, nil, "get array length failed%s", suffix(message))
	}

	rv := make([]any, length)
	for i := 0; i < length; i++ {
		elem := env.GetObjectArrayElement(arr, i)
		if env.ExceptionCheck() {
			message, _ := takeException(env)
			return nil, newError(KindInvocation, nil, "get array element failed%s", suffix(message))
		}
		if elem == 0 {
			return nil, newError(KindInvocation, nil, "array element is null")
		}

		converted, err := at.element.FromWireType(ctx, env, jni.EncodeObject(elem))
		env.DeleteLocalRef(elem)
		if err != nil {
			return nil, fmt.Errorf("could not convert element %d: %w", i, err)
		}
		rv[i] = converted
	}

	return rv, nil
}

func (at *arrayType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	elems, ok := sequence(o)
	if !ok {
		return 0, typeMismatch("expected table, got %T", o)
	}

	cls, err := findClass(env, className(at.element.Signature()))
	if err != nil {
		return 0, err
	}

	arr := env.NewObjectArray(len(elems), cls, 0)
	if arr == 0 {
		message, _ := takeException(env)
		return 0, newError(KindAllocation, nil, "array allocation failed%s", suffix(message))
	}
	frame.Track(arr)

	// Every element reference is deleted before the next one is created.
	elemFrame := NewFrame(env)
	defer elemFrame.Release()

	for i := range elems {
		elem, err := at.element.ToWireType(ctx, env, elemFrame, elems[i])
		if err != nil {
			return 0, fmt.Errorf("could not convert element %d: %w", i, err)
		}

		env.SetObjectArrayElement(arr, i, jni.DecodeObject(elem))
		if env.ExceptionCheck() {
			message, _ := takeException(env)
			return 0, newError(KindTypeMismatch, nil, "set array element failed%s", suffix(message))
		}

		elemFrame.Release()
	}

	return jni.EncodeObject(arr), nil
}

func (at *arrayType) GoType() string {
	return "[]any"
}

func (at *arrayType) validate() error {
	if at.element == nil {
		return newError(KindConfiguration, nil, "array element type is missing")
	}
	if !at.element.IsReference() {
		return newError(KindConfiguration, nil, "array element type %s is not a reference type", at.element.Name())
	}
	return at.element.validate()
}

// Array returns the one-dimensional array type of element, which must be a
// reference type.
func Array(element Type) Type {
	at := &arrayType{element: element}
	if element != nil {
		at.name = "array<" + element.Name() + ">"
		at.signature = jni.ArraySignature(element.Signature())
	}
	return at
}

// ArrayElement returns the element type of an array type.
func ArrayElement(t Type) (Type, bool) {
	at, ok := t.(*arrayType)
	if !ok {
		return nil, false
	}
	return at.element, true
}
