package javabind

import (
	"context"
	"sort"
	"sync"

	"github.com/jerbob92/javabind/jni"

	"go.uber.org/zap"
)

// IBridge is a bridge to one managed runtime instance. All methods are safe
// for concurrent use.
type IBridge interface {
	// Start creates the runtime with path as class path. It fails when the
	// runtime is already started.
	Start(ctx context.Context, path string) error
	// Destroy shuts the runtime down. It fails when it is not started.
	Destroy(ctx context.Context) error
	Started() bool
	// Handle returns the live runtime.
	Handle() (jni.VM, error)

	// Declare registers a call binding.
	Declare(declaration Declaration) (ICall, error)
	// Register is Declare with the declaration given as arguments.
	Register(name, className, methodName string, returnType Type, argumentTypes ...Type) (ICall, error)
	// Call invokes a registered call by name.
	Call(ctx context.Context, name string, arguments ...any) (any, error)
	GetCall(name string) (ICall, bool)
	// Calls returns the registered calls ordered by name.
	Calls() []ICall
}

type bridge struct {
	config *bridgeConfig
	logger *zap.Logger

	// lock guards handle. Start and Destroy take the write side, calls
	// hold the read side for their whole duration.
	lock   sync.RWMutex
	handle jni.VM

	callsLock sync.RWMutex
	calls     map[string]*call
}

// CreateBridge returns a bridge that is not started. A nil config means
// NewConfig().
func CreateBridge(config IBridgeConfig) IBridge {
	if config == nil {
		config = NewConfig()
	}
	c := config.(*bridgeConfig)

	return &bridge{
		config: c,
		logger: c.logger,
		calls:  map[string]*call{},
	}
}

func (b *bridge) Start(ctx context.Context, path string) error {
	if path == "" {
		return newError(KindConfiguration, nil, "invalid jar path")
	}
	if b.config.launcher == nil {
		return newError(KindConfiguration, nil, "no runtime launcher configured")
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	if b.handle != nil {
		return newError(KindLifecycle, nil, "Java VM already started")
	}

	options := append([]string{}, b.config.options...)
	options = append(options, jni.ClassPathOption+path)

	vm, err := b.config.launcher.CreateJavaVM(ctx, jni.InitArgs{
		Version:            b.config.version,
		Options:            options,
		IgnoreUnrecognized: b.config.ignoreUnrecognized,
	})
	if err != nil {
		return newError(KindLifecycle, err, "Failed to create Java VM")
	}
	if vm == nil {
		return newError(KindLifecycle, nil, "Failed to create Java VM")
	}

	b.handle = vm
	b.logger.Debug("java vm started", zap.String("path", path))

	return nil
}

func (b *bridge) Destroy(ctx context.Context) error {
	b.lock.Lock()
	defer b.lock.Unlock()

	if b.handle == nil {
		return newError(KindLifecycle, nil, "Java VM not started")
	}

	// The handle is gone even when the shutdown reports an error.
	vm := b.handle
	b.handle = nil

	if err := vm.DestroyJavaVM(ctx); err != nil {
		return newError(KindLifecycle, err, "Failed to destroy Java VM")
	}

	b.logger.Debug("java vm destroyed")
	return nil
}

func (b *bridge) Started() bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.handle != nil
}

func (b *bridge) Handle() (jni.VM, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.getHandle()
}

// getHandle must be called with lock held.
func (b *bridge) getHandle() (jni.VM, error) {
	if b.handle == nil {
		return nil, newError(KindLifecycle, nil, "Java VM not started")
	}
	return b.handle, nil
}

func (b *bridge) Declare(declaration Declaration) (ICall, error) {
	c, err := newCall(b, declaration)
	if err != nil {
		return nil, err
	}

	b.callsLock.Lock()
	defer b.callsLock.Unlock()

	if _, ok := b.calls[c.name]; ok {
		return nil, newError(KindConfiguration, nil, "call %s is already registered", c.name)
	}
	b.calls[c.name] = c

	b.logger.Debug("declared call", zap.String("name", c.name), zap.String("class", c.className), zap.String("method", c.methodName), zap.String("signature", c.signature))

	return c, nil
}

func (b *bridge) Register(name, className, methodName string, returnType Type, argumentTypes ...Type) (ICall, error) {
	return b.Declare(Declaration{
		Name:      name,
		Class:     className,
		Method:    methodName,
		Returns:   returnType,
		Arguments: argumentTypes,
	})
}

func (b *bridge) GetCall(name string) (ICall, bool) {
	b.callsLock.RLock()
	defer b.callsLock.RUnlock()

	c, ok := b.calls[name]
	if !ok {
		return nil, false
	}
	return c, true
}

func (b *bridge) Calls() []ICall {
	b.callsLock.RLock()
	defer b.callsLock.RUnlock()

	names := make([]string, 0, len(b.calls))
	for name := range b.calls {
		names = append(names, name)
	}
	sort.Strings(names)

	calls := make([]ICall, len(names))
	for i := range names {
		calls[i] = b.calls[names[i]]
	}
	return calls
}

func (b *bridge) Call(ctx context.Context, name string, arguments ...any) (any, error) {
	c, ok := b.GetCall(name)
	if !ok {
		return nil, newError(KindLookup, nil, "call %s is not registered", name)
	}
	return c.Call(ctx, arguments...)
}
