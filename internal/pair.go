package javabind

import (
	"context"
	"fmt"

	"github.com/jerbob92/javabind/jni"
)

// PairClassName is the helper class used by Pair.
const PairClassName = "common/datastore/Pair"

var (
	pairConstructorSignature = jni.MethodSignature(jni.SigVoid, jni.ClassSignature(objectClassName), jni.ClassSignature(objectClassName))
	pairAccessorSignature    = jni.MethodSignature(jni.ClassSignature(objectClassName))
)

// pairType is a two-element association backed by a helper class with a
// (Object, Object) constructor and getKey/getValue accessors.
type pairType struct {
	baseType
	className string
	key       Type
	value     Type
}

func (pt *pairType) side(ctx context.Context, env jni.Env, pair jni.Object, accessor, name string, t Type) (any, error) {
	ret, err := callMethod(env, pair, pt.className, accessor, pairAccessorSignature)
	if err != nil {
		return nil, err
	}

	ref := jni.DecodeObject(ret)
	if ref == 0 {
		return nil, newError(KindInvocation, nil, "%s is null in Pair", name)
	}
	defer env.DeleteLocalRef(ref)

	converted, err := t.FromWireType(ctx, env, ret)
	if err != nil {
		return nil, fmt.Errorf("could not convert pair %s: %w", name, err)
	}
	return converted, nil
}

func (pt *pairType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	pair := jni.DecodeObject(value)
	if pair == 0 {
		return nil, typeMismatch("expected %s, got null", pt.name)
	}

	key, err := pt.side(ctx, env, pair, "getKey", "key", pt.key)
	if err != nil {
		return nil, err
	}

	val, err := pt.side(ctx, env, pair, "getValue", "value", pt.value)
	if err != nil {
		return nil, err
	}

	return []any{key, val}, nil
}

func (pt *pairType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	// Elements after the key and the value are ignored.
	sides, ok := sequence(o)
	if !ok {
		return 0, typeMismatch("expected table(pair), got %T", o)
	}
	if len(sides) < 2 {
		return 0, typeMismatch("expected table(pair) with 2 elements, got %d", len(sides))
	}

	// The key and value are only needed until the pair is constructed.
	sideFrame := NewFrame(env)
	defer sideFrame.Release()

	key, err := pt.key.ToWireType(ctx, env, sideFrame, sides[0])
	if err != nil {
		return 0, fmt.Errorf("could not convert pair key: %w", err)
	}

	val, err := pt.value.ToWireType(ctx, env, sideFrame, sides[1])
	if err != nil {
		return 0, fmt.Errorf("could not convert pair value: %w", err)
	}

	cls, err := findClass(env, pt.className)
	if err != nil {
		return 0, err
	}

	ctor := env.GetMethodID(cls, "<init>", pairConstructorSignature)
	if ctor == 0 {
		env.ExceptionClear()
		return 0, newError(KindLookup, nil, "method Pair.<init> not found")
	}

	obj := env.NewObjectA(cls, ctor, []jni.Value{key, val})
	if obj == 0 {
		message, _ := takeException(env)
		return 0, newError(KindAllocation, nil, "object allocation failed%s", suffix(message))
	}

	return jni.EncodeObject(frame.Track(obj)), nil
}

func (pt *pairType) GoType() string {
	return "[]any"
}

func (pt *pairType) validate() error {
	if pt.className == "" {
		return newError(KindConfiguration, nil, "pair class name is missing")
	}
	if pt.key == nil || pt.value == nil {
		return newError(KindConfiguration, nil, "pair key or value type is missing")
	}
	if !pt.key.IsReference() {
		return newError(KindConfiguration, nil, "pair key type %s is not a reference type", pt.key.Name())
	}
	if !pt.value.IsReference() {
		return newError(KindConfiguration, nil, "pair value type %s is not a reference type", pt.value.Name())
	}
	if err := pt.key.validate(); err != nil {
		return err
	}
	return pt.value.validate()
}

func newPairType(name, class string, key, value Type) *pairType {
	pt := &pairType{
		baseType: baseType{
			signature: jni.ClassSignature(class),
		},
		className: class,
		key:       key,
		value:     value,
	}
	if key != nil && value != nil {
		pt.name = fmt.Sprintf("%s<%s, %s>", name, key.Name(), value.Name())
	}
	return pt
}

// Pair returns the common/datastore/Pair type with the given key and value
// types. Both must be reference types.
func Pair(key, value Type) Type {
	return newPairType("Pair", PairClassName, key, value)
}

// PairOf is Pair backed by another helper class with the same constructor
// and accessors.
func PairOf(className string, key, value Type) Type {
	return newPairType(className, className, key, value)
}

// PairSides returns the key and value types of a pair type.
func PairSides(t Type) (key, value Type, ok bool) {
	pt, ok := t.(*pairType)
	if !ok {
		return nil, nil, false
	}
	return pt.key, pt.value, true
}
