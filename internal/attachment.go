package javabind

import (
	"context"
	"runtime"

	"github.com/jerbob92/javabind/jni"
)

// attachment is the calling goroutine's registration with the runtime. The
// goroutine stays locked to its OS thread until Release.
type attachment struct {
	vm       jni.VM
	env      jni.Env
	released bool
}

func attach(ctx context.Context, vm jni.VM) (*attachment, error) {
	runtime.LockOSThread()

	env, err := vm.AttachCurrentThread(ctx)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, newError(KindLifecycle, err, "Failed to attach to Java VM")
	}

	return &attachment{vm: vm, env: env}, nil
}

// Release detaches the thread. Only the first call has an effect.
func (a *attachment) Release() error {
	if a.released {
		return nil
	}
	a.released = true
	defer runtime.UnlockOSThread()

	if err := a.vm.DetachCurrentThread(a.env); err != nil {
		return newError(KindLifecycle, err, "Failed to detach from Java VM")
	}
	return nil
}
