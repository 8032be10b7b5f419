package vm

import (
	"context"
)

// Thread is handed to native methods. It gives access to the calling
// context and to object allocation.
type Thread struct {
	vm  *VM
	ctx context.Context
}

// Context returns the context of the invocation.
func (t *Thread) Context() context.Context {
	return t.ctx
}

// Property returns a system property passed as -Dname=value.
func (t *Thread) Property(name string) (string, bool) {
	value, ok := t.vm.properties[name]
	return value, ok
}

// NewString allocates a java/lang/String.
func (t *Thread) NewString(s string) *Object {
	return newString(t.vm.mustClass(stringClassName), s)
}

// NewArray allocates an array of the given element class. Every element
// must be null or an instance of the element class.
func (t *Thread) NewArray(elementClass string, elems ...*Object) (*Object, error) {
	elem, ok := t.vm.lookupClass(elementClass)
	if !ok {
		return nil, Throw(NoClassDefFoundClassName, "%s", elementClass)
	}

	arrayClass, ok := t.vm.lookupClass(arrayClassName(elem))
	if !ok {
		return nil, Throw(NoClassDefFoundClassName, "[%s", elementClass)
	}

	copied := make([]*Object, len(elems))
	for i := range elems {
		if elems[i] != nil && !elems[i].class.isSubclassOf(elem) {
			return nil, Throw(ArrayStoreClassName, "%s", elems[i].class.name)
		}
		copied[i] = elems[i]
	}

	return &Object{class: arrayClass, elems: copied}, nil
}

// New allocates an instance of the named class and runs the constructor
// matching sig with the given arguments.
func (t *Thread) New(className, sig string, args ...any) (*Object, error) {
	cls, ok := t.vm.lookupClass(className)
	if !ok {
		return nil, Throw(NoClassDefFoundClassName, "%s", className)
	}

	ctor := cls.findMethod("<init>", sig, false)
	if ctor == nil {
		return nil, Throw(NoSuchMethodClassName, "%s.<init>%s", className, sig)
	}

	obj := &Object{class: cls}
	if _, err := ctor.fn(t, obj, args); err != nil {
		return nil, err
	}

	return obj, nil
}

// Box wraps a bool, int32, int64 or float64 in its wrapper class.
func (t *Thread) Box(v any) (*Object, error) {
	var className string
	switch v.(type) {
	case bool:
		className = booleanClassName
	case int32:
		className = integerClassName
	case int64:
		className = longClassName
	case float64:
		className = doubleClassName
	default:
		return nil, Throw(IllegalArgumentClassName, "cannot box %T", v)
	}

	return &Object{class: t.vm.mustClass(className), value: v}, nil
}

// NewPair allocates a common/datastore/Pair.
func (t *Thread) NewPair(key, value *Object) (*Object, error) {
	return t.New(PairClassName, "(Ljava/lang/Object;Ljava/lang/Object;)V", key, value)
}

func arrayClassName(elem *class) string {
	if elem.elem != nil {
		return "[" + elem.name
	}
	return "[L" + elem.name + ";"
}
