package javabind

import (
	"context"
	"math"

	"github.com/jerbob92/javabind/jni"
)

// objectType is java/lang/Object. Values are converted according to their
// dynamic kind on the way in and according to their runtime class on the
// way out.
type objectType struct {
	baseType
}

type objectCandidate struct {
	className string
	t         Type
}

// objectCandidates is ordered, the first class the value is an instance of
// wins.
var objectCandidates = []objectCandidate{
	{className: stringClassName, t: String},
	{className: "java/lang/Boolean", t: BoxedBoolean},
	{className: "java/lang/Integer", t: BoxedInteger},
	{className: "java/lang/Long", t: BoxedLong},
	{className: "java/lang/Double", t: BoxedDouble},
	{className: "[" + jni.ClassSignature(objectClassName), t: Array(Object)},
	{className: PairClassName, t: Pair(Object, Object)},
}

func (ot *objectType) FromWireType(ctx context.Context, env jni.Env, value jni.Value) (any, error) {
	ref := jni.DecodeObject(value)
	if ref == 0 {
		return nil, nil
	}

	for _, candidate := range objectCandidates {
		cls := env.FindClass(candidate.className)
		if cls == 0 {
			env.ExceptionClear()
			continue
		}
		if env.IsInstanceOf(ref, cls) {
			return candidate.t.FromWireType(ctx, env, value)
		}
	}

	return nil, typeMismatch("object of unsupported class")
}

func (ot *objectType) ToWireType(ctx context.Context, env jni.Env, frame *Frame, o any) (jni.Value, error) {
	switch v := o.(type) {
	case nil:
		return jni.EncodeObject(0), nil
	case bool:
		return BoxedBoolean.ToWireType(ctx, env, frame, v)
	case string, []byte:
		return String.ToWireType(ctx, env, frame, v)
	case float32, float64:
		return BoxedDouble.ToWireType(ctx, env, frame, v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, ok := toInt64(v)
		if !ok {
			return 0, typeMismatch("value %v out of range for %s", v, ot.name)
		}
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return BoxedInteger.ToWireType(ctx, env, frame, i)
		}
		return BoxedLong.ToWireType(ctx, env, frame, i)
	}

	if _, ok := sequence(o); ok {
		return Array(Object).ToWireType(ctx, env, frame, o)
	}

	return 0, typeMismatch("cannot convert %T to %s", o, ot.name)
}

func (ot *objectType) GoType() string {
	return "any"
}

// Object is java/lang/Object.
var Object Type = &objectType{
	baseType: baseType{name: "Object", signature: jni.ClassSignature(objectClassName)},
}
