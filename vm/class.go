package vm

import (
	"fmt"
	"strings"

	"github.com/jerbob92/javabind/jni"
)

// NativeFunc implements a method. For instance methods and constructors
// this is the receiver, for static methods it is nil. Arguments are decoded
// according to the method signature: bool, int8, uint16, int16, int32,
// int64, float32, float64 for primitives and *Object (nil for null) for
// references. A returned error is thrown as an exception in the caller.
type NativeFunc func(t *Thread, this *Object, args []any) (any, error)

// MethodDef declares a method of a ClassDef. Constructors are named
// "<init>" and return void.
type MethodDef struct {
	Name      string
	Signature string
	Static    bool
	Fn        NativeFunc
}

// ClassDef declares a class provided by a library.
type ClassDef struct {
	// Name is the internal class name, e.g. "entry/percent/PercentEntryPoint".
	Name string
	// Super defaults to java/lang/Object.
	Super   string
	Methods []MethodDef
}

type methodKey struct {
	name string
	sig  string
}

type method struct {
	id     jni.MethodID
	class  *class
	name   string
	sig    string
	static bool
	params []string
	ret    string
	fn     NativeFunc
}

type class struct {
	id      jni.Class
	name    string
	super   *class
	elem    *class
	methods map[methodKey]*method
}

func (c *class) isSubclassOf(other *class) bool {
	for current := c; current != nil; current = current.super {
		if current == other {
			return true
		}
	}

	// Arrays are covariant in their element type.
	if c.elem != nil && other.elem != nil {
		return c.elem.isSubclassOf(other.elem)
	}

	return false
}

func (c *class) findMethod(name, sig string, static bool) *method {
	for current := c; current != nil; current = current.super {
		m, ok := current.methods[methodKey{name: name, sig: sig}]
		if ok && m.static == static {
			return m
		}
		if name == "<init>" {
			// Constructors are not inherited.
			break
		}
	}
	return nil
}

// defineClass adds a class to the VM class table. The super class must
// already be defined.
func (vm *VM) defineClass(def *ClassDef) error {
	if def.Name == "" || strings.HasPrefix(def.Name, "[") || strings.ContainsAny(def.Name, ";.") {
		return fmt.Errorf("invalid class name %q", def.Name)
	}

	vm.classLock.Lock()
	defer vm.classLock.Unlock()

	if _, ok := vm.classes[def.Name]; ok {
		return fmt.Errorf("class %s is already defined", def.Name)
	}

	var super *class
	if def.Name != objectClassName {
		superName := def.Super
		if superName == "" {
			superName = objectClassName
		}
		var ok bool
		super, ok = vm.classes[superName]
		if !ok {
			return fmt.Errorf("super class %s of %s is not defined", superName, def.Name)
		}
	}

	cls := &class{
		name:    def.Name,
		super:   super,
		methods: map[methodKey]*method{},
	}

	for i := range def.Methods {
		md := def.Methods[i]
		params, ret, err := jni.ParseMethodSignature(md.Signature)
		if err != nil {
			return fmt.Errorf("could not define %s.%s: %w", def.Name, md.Name, err)
		}
		if md.Fn == nil {
			return fmt.Errorf("could not define %s.%s: no implementation", def.Name, md.Name)
		}
		if md.Name == "<init>" && (md.Static || ret != jni.SigVoid) {
			return fmt.Errorf("could not define %s.<init>: constructors must be non-static and return void", def.Name)
		}

		key := methodKey{name: md.Name, sig: md.Signature}
		if _, ok := cls.methods[key]; ok {
			return fmt.Errorf("method %s.%s%s is defined twice", def.Name, md.Name, md.Signature)
		}

		vm.lastMethodID++
		m := &method{
			id:     vm.lastMethodID,
			class:  cls,
			name:   md.Name,
			sig:    md.Signature,
			static: md.Static,
			params: params,
			ret:    ret,
			fn:     md.Fn,
		}
		cls.methods[key] = m
		vm.methodsByID[m.id] = m
	}

	vm.registerClass(cls)
	return nil
}

// registerClass must be called with classLock held.
func (vm *VM) registerClass(cls *class) {
	vm.lastClassID++
	cls.id = vm.lastClassID
	vm.classes[cls.name] = cls
	vm.classesByID[cls.id] = cls
}

// lookupClass resolves a class by internal name. Array classes are created
// on first use, arrays of primitives are not supported.
func (vm *VM) lookupClass(name string) (*class, bool) {
	vm.classLock.RLock()
	cls, ok := vm.classes[name]
	vm.classLock.RUnlock()
	if ok {
		return cls, true
	}

	if !strings.HasPrefix(name, "[") {
		return nil, false
	}

	elem, ok := vm.classForSignature(name[1:])
	if !ok {
		return nil, false
	}

	vm.classLock.Lock()
	defer vm.classLock.Unlock()

	// Another thread may have created it in the mean time.
	if cls, ok = vm.classes[name]; ok {
		return cls, true
	}

	cls = &class{
		name:    name,
		super:   vm.classes[objectClassName],
		elem:    elem,
		methods: map[methodKey]*method{},
	}
	vm.registerClass(cls)
	return cls, true
}

// classForSignature resolves the class of a reference field descriptor.
func (vm *VM) classForSignature(sig string) (*class, bool) {
	if strings.HasPrefix(sig, "L") && strings.HasSuffix(sig, ";") {
		return vm.lookupClass(sig[1 : len(sig)-1])
	}
	if strings.HasPrefix(sig, "[") {
		return vm.lookupClass(sig)
	}
	return nil, false
}

func (vm *VM) classByID(id jni.Class) *class {
	vm.classLock.RLock()
	defer vm.classLock.RUnlock()
	return vm.classesByID[id]
}

func (vm *VM) methodByID(id jni.MethodID) *method {
	vm.classLock.RLock()
	defer vm.classLock.RUnlock()
	return vm.methodsByID[id]
}

// mustClass returns a built-in class.
func (vm *VM) mustClass(name string) *class {
	cls, ok := vm.lookupClass(name)
	if !ok {
		panic(fmt.Errorf("built-in class %s is not defined", name))
	}
	return cls
}
