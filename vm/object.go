package vm

import (
	"fmt"
	"unicode/utf16"
)

// Object is a managed object living in a VM. Native methods receive and
// return objects directly; only the jni.Env boundary works with handles.
type Object struct {
	class *class

	// value holds the payload of built-in classes: []uint16 for strings,
	// bool/int32/int64/float64 for boxed values and string for throwables.
	value any
	elems []*Object

	fields map[string]any
}

// ClassName returns the internal name of the object's class, e.g.
// "java/lang/String" or "[Ljava/lang/String;".
func (o *Object) ClassName() string {
	return o.class.name
}

// IsArray reports whether the object is an array.
func (o *Object) IsArray() bool {
	return o.class.elem != nil
}

// String returns the contents of a java/lang/String object.
func (o *Object) String() string {
	chars, ok := o.value.([]uint16)
	if !ok {
		return fmt.Sprintf("%s@%p", o.class.name, o)
	}
	return string(utf16.Decode(chars))
}

// Chars returns the UTF-16 code units of a java/lang/String object.
func (o *Object) Chars() []uint16 {
	chars, _ := o.value.([]uint16)
	return chars
}

// Value returns the primitive payload of a boxed object.
func (o *Object) Value() any {
	return o.value
}

// Len returns the length of an array object.
func (o *Object) Len() int {
	return len(o.elems)
}

// Elements returns the elements of an array object.
func (o *Object) Elements() []*Object {
	return o.elems
}

// Field returns a named field of a plain instance.
func (o *Object) Field(name string) any {
	return o.fields[name]
}

// SetField sets a named field of a plain instance.
func (o *Object) SetField(name string, value any) {
	if o.fields == nil {
		o.fields = map[string]any{}
	}
	o.fields[name] = value
}

// InstanceOf reports whether the object is an instance of the named class.
func (o *Object) InstanceOf(name string) bool {
	for c := o.class; c != nil; c = c.super {
		if c.name == name {
			return true
		}
	}
	return false
}

func newString(cls *class, s string) *Object {
	return &Object{class: cls, value: utf16.Encode([]rune(s))}
}

func newStringChars(cls *class, chars []uint16) *Object {
	copied := make([]uint16, len(chars))
	copy(copied, chars)
	return &Object{class: cls, value: copied}
}
