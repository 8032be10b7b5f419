package vm

import (
	"fmt"

	"github.com/jerbob92/javabind/jni"
)

type env struct {
	vm       *VM
	thread   *Thread
	locals   map[jni.Object]*Object
	lastRef  jni.Object
	capacity int
	pending  *Object
	detached bool
}

// newLocal creates a local reference. When the local capacity is exhausted
// it throws OutOfMemoryError and returns the null reference.
func (e *env) newLocal(obj *Object) jni.Object {
	if obj == nil {
		return 0
	}
	if len(e.locals) >= e.capacity {
		e.throw(OutOfMemoryClassName, "local reference capacity of %d exceeded", e.capacity)
		return 0
	}
	return e.addLocal(obj)
}

func (e *env) addLocal(obj *Object) jni.Object {
	e.lastRef++
	e.locals[e.lastRef] = obj
	e.vm.liveLocalRefs.Add(1)
	return e.lastRef
}

// deref resolves a reference, ok is false for dangling references.
func (e *env) deref(ref jni.Object) (*Object, bool) {
	if ref == 0 {
		return nil, true
	}
	obj, ok := e.locals[ref]
	return obj, ok
}

func (e *env) throw(className, format string, args ...any) {
	cls, ok := e.vm.lookupClass(className)
	if !ok {
		cls = e.vm.mustClass(RuntimeExceptionClassName)
	}
	e.pending = &Object{class: cls, value: fmt.Sprintf(format, args...)}
}

func (e *env) FindClass(name string) jni.Class {
	cls, ok := e.vm.lookupClass(name)
	if !ok {
		e.throw(NoClassDefFoundClassName, "%s", name)
		return 0
	}
	return cls.id
}

func (e *env) getMethodID(clsID jni.Class, name, sig string, static bool) jni.MethodID {
	cls := e.vm.classByID(clsID)
	if cls == nil {
		e.throw(NoClassDefFoundClassName, "invalid class handle %d", clsID)
		return 0
	}
	m := cls.findMethod(name, sig, static)
	if m == nil {
		e.throw(NoSuchMethodClassName, "%s.%s%s", cls.name, name, sig)
		return 0
	}
	return m.id
}

func (e *env) GetStaticMethodID(cls jni.Class, name, sig string) jni.MethodID {
	return e.getMethodID(cls, name, sig, true)
}

func (e *env) GetMethodID(cls jni.Class, name, sig string) jni.MethodID {
	return e.getMethodID(cls, name, sig, false)
}

// decodeArgs converts argument words according to the method's parameter
// types. Reference arguments are checked against the declared class.
func (e *env) decodeArgs(m *method, args []jni.Value) ([]any, bool) {
	if len(args) < len(m.params) {
		e.throw(IllegalArgumentClassName, "%s.%s%s expects %d arguments, got %d", m.class.name, m.name, m.sig, len(m.params), len(args))
		return nil, false
	}

	decoded := make([]any, len(m.params))
	for i, param := range m.params {
		switch param {
		case jni.SigBoolean:
			decoded[i] = jni.DecodeBoolean(args[i])
		case jni.SigByte:
			decoded[i] = jni.DecodeByte(args[i])
		case jni.SigChar:
			decoded[i] = jni.DecodeChar(args[i])
		case jni.SigShort:
			decoded[i] = jni.DecodeShort(args[i])
		case jni.SigInt:
			decoded[i] = jni.DecodeInt(args[i])
		case jni.SigLong:
			decoded[i] = jni.DecodeLong(args[i])
		case jni.SigFloat:
			decoded[i] = jni.DecodeFloat(args[i])
		case jni.SigDouble:
			decoded[i] = jni.DecodeDouble(args[i])
		default:
			obj, ok := e.deref(jni.DecodeObject(args[i]))
			if !ok {
				e.throw(IllegalArgumentClassName, "argument %d is not a valid reference", i)
				return nil, false
			}
			if obj != nil {
				paramClass, ok := e.vm.classForSignature(param)
				if !ok {
					e.throw(NoClassDefFoundClassName, "%s", param)
					return nil, false
				}
				if !obj.class.isSubclassOf(paramClass) {
					e.throw(IllegalArgumentClassName, "argument %d: %s is not an instance of %s", i, obj.class.name, paramClass.name)
					return nil, false
				}
			}
			decoded[i] = obj
		}
	}

	return decoded, true
}

// encodeResult converts a native result into a result word.
func (e *env) encodeResult(m *method, result any) (jni.Value, bool) {
	if m.ret == jni.SigVoid {
		return 0, true
	}

	mismatch := func() (jni.Value, bool) {
		e.throw(ClassCastClassName, "%s.%s%s returned %T", m.class.name, m.name, m.sig, result)
		return 0, false
	}

	switch m.ret {
	case jni.SigBoolean:
		v, ok := result.(bool)
		if !ok {
			return mismatch()
		}
		return jni.EncodeBoolean(v), true
	case jni.SigByte:
		v, ok := result.(int8)
		if !ok {
			return mismatch()
		}
		return jni.EncodeByte(v), true
	case jni.SigChar:
		v, ok := result.(uint16)
		if !ok {
			return mismatch()
		}
		return jni.EncodeChar(v), true
	case jni.SigShort:
		v, ok := result.(int16)
		if !ok {
			return mismatch()
		}
		return jni.EncodeShort(v), true
	case jni.SigInt:
		v, ok := result.(int32)
		if !ok {
			return mismatch()
		}
		return jni.EncodeInt(v), true
	case jni.SigLong:
		v, ok := result.(int64)
		if !ok {
			return mismatch()
		}
		return jni.EncodeLong(v), true
	case jni.SigFloat:
		v, ok := result.(float32)
		if !ok {
			return mismatch()
		}
		return jni.EncodeFloat(v), true
	case jni.SigDouble:
		v, ok := result.(float64)
		if !ok {
			return mismatch()
		}
		return jni.EncodeDouble(v), true
	}

	var obj *Object
	switch v := result.(type) {
	case nil:
	case *Object:
		obj = v
	default:
		return mismatch()
	}
	if obj == nil {
		return 0, true
	}

	retClass, ok := e.vm.classForSignature(m.ret)
	if !ok || !obj.class.isSubclassOf(retClass) {
		return mismatch()
	}

	ref := e.newLocal(obj)
	if ref == 0 {
		return 0, false
	}
	return jni.EncodeObject(ref), true
}

func (e *env) invoke(m *method, this *Object, args []jni.Value) jni.Value {
	decoded, ok := e.decodeArgs(m, args)
	if !ok {
		return 0
	}

	result, err := m.fn(e.thread, this, decoded)
	if err != nil {
		e.pending = e.vm.throwableFromError(err)
		return 0
	}

	value, _ := e.encodeResult(m, result)
	return value
}

func (e *env) CallStaticMethodA(clsID jni.Class, methodID jni.MethodID, args []jni.Value) jni.Value {
	m := e.vm.methodByID(methodID)
	if m == nil || !m.static {
		e.throw(IllegalArgumentClassName, "invalid static method id %d", methodID)
		return 0
	}
	cls := e.vm.classByID(clsID)
	if cls == nil || !cls.isSubclassOf(m.class) {
		e.throw(IllegalArgumentClassName, "method %s.%s does not belong to class handle %d", m.class.name, m.name, clsID)
		return 0
	}
	return e.invoke(m, nil, args)
}

func (e *env) CallMethodA(ref jni.Object, methodID jni.MethodID, args []jni.Value) jni.Value {
	m := e.vm.methodByID(methodID)
	if m == nil || m.static || m.name == "<init>" {
		e.throw(IllegalArgumentClassName, "invalid method id %d", methodID)
		return 0
	}
	obj, ok := e.deref(ref)
	if !ok {
		e.throw(IllegalArgumentClassName, "invalid reference %d", ref)
		return 0
	}
	if obj == nil {
		e.throw(NullPointerClassName, "%s.%s called on null", m.class.name, m.name)
		return 0
	}
	if !obj.class.isSubclassOf(m.class) {
		e.throw(IllegalArgumentClassName, "%s is not an instance of %s", obj.class.name, m.class.name)
		return 0
	}
	return e.invoke(m, obj, args)
}

func (e *env) NewObjectA(clsID jni.Class, ctorID jni.MethodID, args []jni.Value) jni.Object {
	cls := e.vm.classByID(clsID)
	m := e.vm.methodByID(ctorID)
	if cls == nil || m == nil || m.name != "<init>" || m.class != cls {
		e.throw(IllegalArgumentClassName, "invalid constructor id %d", ctorID)
		return 0
	}
	if cls.elem != nil {
		e.throw(IllegalArgumentClassName, "cannot construct array class %s", cls.name)
		return 0
	}

	obj := &Object{class: cls}
	e.invoke(m, obj, args)
	if e.pending != nil {
		return 0
	}
	return e.newLocal(obj)
}

func (e *env) IsInstanceOf(ref jni.Object, clsID jni.Class) bool {
	obj, ok := e.deref(ref)
	if !ok || obj == nil {
		// null is an instance of every class.
		return ok
	}
	cls := e.vm.classByID(clsID)
	if cls == nil {
		return false
	}
	return obj.class.isSubclassOf(cls)
}

func (e *env) NewString(chars []uint16) jni.Object {
	return e.newLocal(newStringChars(e.vm.mustClass(stringClassName), chars))
}

func (e *env) stringObject(ref jni.Object) *Object {
	obj, ok := e.deref(ref)
	if !ok || obj == nil {
		e.throw(NullPointerClassName, "invalid string reference %d", ref)
		return nil
	}
	if _, ok := obj.value.([]uint16); !ok {
		e.throw(ClassCastClassName, "%s is not a string", obj.class.name)
		return nil
	}
	return obj
}

func (e *env) GetStringLength(ref jni.Object) int {
	obj := e.stringObject(ref)
	if obj == nil {
		return 0
	}
	return len(obj.Chars())
}

func (e *env) GetStringChars(ref jni.Object) []uint16 {
	obj := e.stringObject(ref)
	if obj == nil {
		return nil
	}
	chars := obj.Chars()
	copied := make([]uint16, len(chars))
	copy(copied, chars)
	return copied
}

func (e *env) ReleaseStringChars(ref jni.Object, chars []uint16) {
	// The chars are a copy owned by the caller.
}

func (e *env) NewObjectArray(length int, elementClass jni.Class, initial jni.Object) jni.Object {
	if length < 0 {
		e.throw(NegativeArraySizeClassName, "%d", length)
		return 0
	}
	elem := e.vm.classByID(elementClass)
	if elem == nil {
		e.throw(NoClassDefFoundClassName, "invalid class handle %d", elementClass)
		return 0
	}
	initialObj, ok := e.deref(initial)
	if !ok {
		e.throw(IllegalArgumentClassName, "invalid reference %d", initial)
		return 0
	}
	if initialObj != nil && !initialObj.class.isSubclassOf(elem) {
		e.throw(ArrayStoreClassName, "%s", initialObj.class.name)
		return 0
	}

	arrayClass, ok := e.vm.lookupClass(arrayClassName(elem))
	if !ok {
		e.throw(NoClassDefFoundClassName, "[%s", elem.name)
		return 0
	}

	elems := make([]*Object, length)
	for i := range elems {
		elems[i] = initialObj
	}
	return e.newLocal(&Object{class: arrayClass, elems: elems})
}

func (e *env) arrayObject(ref jni.Object) *Object {
	obj, ok := e.deref(ref)
	if !ok || obj == nil {
		e.throw(NullPointerClassName, "invalid array reference %d", ref)
		return nil
	}
	if obj.class.elem == nil {
		e.throw(ClassCastClassName, "%s is not an array", obj.class.name)
		return nil
	}
	return obj
}

func (e *env) GetArrayLength(ref jni.Object) int {
	arr := e.arrayObject(ref)
	if arr == nil {
		return 0
	}
	return len(arr.elems)
}

func (e *env) GetObjectArrayElement(ref jni.Object, index int) jni.Object {
	arr := e.arrayObject(ref)
	if arr == nil {
		return 0
	}
	if index < 0 || index >= len(arr.elems) {
		e.throw(ArrayIndexClassName, "index %d out of bounds for length %d", index, len(arr.elems))
		return 0
	}
	return e.newLocal(arr.elems[index])
}

func (e *env) SetObjectArrayElement(ref jni.Object, index int, value jni.Object) {
	arr := e.arrayObject(ref)
	if arr == nil {
		return
	}
	if index < 0 || index >= len(arr.elems) {
		e.throw(ArrayIndexClassName, "index %d out of bounds for length %d", index, len(arr.elems))
		return
	}
	obj, ok := e.deref(value)
	if !ok {
		e.throw(IllegalArgumentClassName, "invalid reference %d", value)
		return
	}
	if obj != nil && !obj.class.isSubclassOf(arr.class.elem) {
		e.throw(ArrayStoreClassName, "%s", obj.class.name)
		return
	}
	arr.elems[index] = obj
}

func (e *env) DeleteLocalRef(ref jni.Object) {
	if ref == 0 {
		return
	}
	if _, ok := e.locals[ref]; ok {
		delete(e.locals, ref)
		e.vm.liveLocalRefs.Add(-1)
	}
}

func (e *env) ExceptionCheck() bool {
	return e.pending != nil
}

func (e *env) ExceptionOccurred() jni.Object {
	if e.pending == nil {
		return 0
	}
	// The pending throwable always gets a reference, even when the local
	// capacity is exhausted.
	return e.addLocal(e.pending)
}

func (e *env) ExceptionClear() {
	e.pending = nil
}
