// Package vm is a managed runtime implemented in Go. It hosts class-based
// objects behind the jni interfaces, so the bridge can be used without an
// external virtual machine. Classes come from Go libraries registered on
// the config and from WebAssembly modules on the class path.
package vm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jerbob92/javabind/jni"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

var ErrDestroyed = errors.New("vm has been destroyed")

// Stats is a snapshot of the VM's thread and reference bookkeeping.
type Stats struct {
	// Attached is the number of currently attached threads.
	Attached int
	// Attachments is the number of attachments since creation.
	Attachments int
	// LiveLocalRefs is the number of local references held by attached
	// threads.
	LiveLocalRefs int
	// LeakedLocalRefs counts local references that were still alive when
	// their thread detached.
	LeakedLocalRefs int
}

type VM struct {
	config     *config
	logger     *zap.Logger
	classPath  []string
	properties map[string]string

	classLock    sync.RWMutex
	classes      map[string]*class
	classesByID  map[jni.Class]*class
	methodsByID  map[jni.MethodID]*method
	lastClassID  jni.Class
	lastMethodID jni.MethodID

	wasmRuntime      wazero.Runtime
	wasiInstantiated bool

	destroyed       atomic.Bool
	attached        atomic.Int64
	attachments     atomic.Int64
	liveLocalRefs   atomic.Int64
	leakedLocalRefs atomic.Int64
}

type launcher struct {
	config *config
}

// NewLauncher returns a jni.Launcher creating VMs with the given config.
// A nil config means NewConfig().
func NewLauncher(c IConfig) jni.Launcher {
	if c == nil {
		c = NewConfig()
	}
	return &launcher{config: c.(*config)}
}

func (l *launcher) CreateJavaVM(ctx context.Context, args jni.InitArgs) (jni.VM, error) {
	return Create(ctx, l.config, args)
}

// Create creates a VM. A nil config means NewConfig().
func Create(ctx context.Context, c IConfig, args jni.InitArgs) (*VM, error) {
	if c == nil {
		c = NewConfig()
	}
	cfg := c.(*config)

	if args.Version < jni.Version1_8 {
		return nil, fmt.Errorf("unsupported interface version %#x", args.Version)
	}

	vm := &VM{
		config:      cfg,
		logger:      cfg.logger,
		properties:  map[string]string{},
		classes:     map[string]*class{},
		classesByID: map[jni.Class]*class{},
		methodsByID: map[jni.MethodID]*method{},
	}

	for _, option := range args.Options {
		switch {
		case strings.HasPrefix(option, jni.ClassPathOption):
			vm.classPath = splitClassPath(strings.TrimPrefix(option, jni.ClassPathOption))
		case strings.HasPrefix(option, "-D"):
			name, value, _ := strings.Cut(strings.TrimPrefix(option, "-D"), "=")
			vm.properties[name] = value
		case strings.HasPrefix(option, "-X"):
			vm.logger.Debug("ignoring runtime option", zap.String("option", option))
		default:
			if !args.IgnoreUnrecognized {
				return nil, fmt.Errorf("unrecognized option: %s", option)
			}
		}
	}

	builtins := builtinClasses()
	for i := range builtins {
		if err := vm.defineClass(builtins[i]); err != nil {
			return nil, fmt.Errorf("could not define built-in class: %w", err)
		}
	}

	if err := vm.loadClassPath(ctx); err != nil {
		if vm.wasmRuntime != nil {
			vm.wasmRuntime.Close(ctx)
		}
		return nil, err
	}

	vm.logger.Debug("vm created", zap.Strings("classPath", vm.classPath))
	return vm, nil
}

func splitClassPath(classPath string) []string {
	entries := []string{}
	for _, entry := range strings.Split(classPath, string(os.PathListSeparator)) {
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

func (vm *VM) loadClassPath(ctx context.Context) error {
	for _, entry := range vm.classPath {
		if classes, ok := vm.config.libraries[entry]; ok {
			for i := range classes {
				if err := vm.defineClass(classes[i]); err != nil {
					return fmt.Errorf("could not load %s: %w", entry, err)
				}
			}
			vm.logger.Debug("loaded library", zap.String("entry", entry), zap.Int("classes", len(classes)))
			continue
		}

		if strings.HasSuffix(entry, ".wasm") {
			if err := vm.loadWasm(ctx, entry); err != nil {
				return fmt.Errorf("could not load %s: %w", entry, err)
			}
			continue
		}

		return fmt.Errorf("class path entry %s not found", entry)
	}

	return nil
}

// AttachCurrentThread implements jni.VM.
func (vm *VM) AttachCurrentThread(ctx context.Context) (jni.Env, error) {
	if vm.destroyed.Load() {
		return nil, ErrDestroyed
	}

	vm.attached.Add(1)
	vm.attachments.Add(1)
	return &env{
		vm:       vm,
		thread:   &Thread{vm: vm, ctx: ctx},
		locals:   map[jni.Object]*Object{},
		capacity: vm.config.localCapacity,
	}, nil
}

// DetachCurrentThread implements jni.VM.
func (vm *VM) DetachCurrentThread(je jni.Env) error {
	e, ok := je.(*env)
	if !ok || e.vm != vm {
		return fmt.Errorf("env %T was not attached to this vm", je)
	}
	if e.detached {
		return fmt.Errorf("thread is already detached")
	}

	e.detached = true
	if leaked := len(e.locals); leaked > 0 {
		vm.leakedLocalRefs.Add(int64(leaked))
		vm.liveLocalRefs.Add(-int64(leaked))
		vm.logger.Warn("thread detached with live local references", zap.Int("count", leaked))
	}
	e.locals = nil
	vm.attached.Add(-1)

	return nil
}

// DestroyJavaVM implements jni.VM.
func (vm *VM) DestroyJavaVM(ctx context.Context) error {
	if !vm.destroyed.CompareAndSwap(false, true) {
		return ErrDestroyed
	}

	if attached := vm.attached.Load(); attached > 0 {
		vm.logger.Warn("destroying vm with attached threads", zap.Int64("attached", attached))
	}

	if vm.wasmRuntime != nil {
		if err := vm.wasmRuntime.Close(ctx); err != nil {
			return fmt.Errorf("could not close wasm runtime: %w", err)
		}
	}

	vm.logger.Debug("vm destroyed")
	return nil
}

// Destroyed reports whether DestroyJavaVM has been called.
func (vm *VM) Destroyed() bool {
	return vm.destroyed.Load()
}

// Stats returns the current bookkeeping counters.
func (vm *VM) Stats() Stats {
	return Stats{
		Attached:        int(vm.attached.Load()),
		Attachments:     int(vm.attachments.Load()),
		LiveLocalRefs:   int(vm.liveLocalRefs.Load()),
		LeakedLocalRefs: int(vm.leakedLocalRefs.Load()),
	}
}

// HasClass reports whether a class is loaded.
func (vm *VM) HasClass(name string) bool {
	_, ok := vm.lookupClass(name)
	return ok
}
