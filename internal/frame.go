package javabind

import (
	"github.com/jerbob92/javabind/jni"
)

// Frame tracks the local references created while marshaling. Release
// deletes them in reverse creation order.
type Frame struct {
	env  jni.Env
	refs []jni.Object
}

func NewFrame(env jni.Env) *Frame {
	return &Frame{env: env}
}

// Track adds ref to the frame and returns it. The null reference is ignored.
func (f *Frame) Track(ref jni.Object) jni.Object {
	if ref != 0 {
		f.refs = append(f.refs, ref)
	}
	return ref
}

// Len returns the number of live references.
func (f *Frame) Len() int {
	return len(f.refs)
}

func (f *Frame) Release() {
	for i := len(f.refs) - 1; i >= 0; i-- {
		f.env.DeleteLocalRef(f.refs[i])
	}
	f.refs = f.refs[:0]
}
