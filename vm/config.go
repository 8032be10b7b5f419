package vm

import (
	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

// DefaultLocalCapacity is the number of local references an attached
// thread may hold at the same time.
const DefaultLocalCapacity = 4096

// IConfig configures the VMs created by a launcher. Every With method
// returns a copy, a config can be shared between launchers.
type IConfig interface {
	// WithLibrary makes the classes available under a class path entry
	// called name, e.g. "lib.jar".
	WithLibrary(name string, classes ...*ClassDef) IConfig
	WithLocalCapacity(capacity int) IConfig
	WithLogger(logger *zap.Logger) IConfig
	// WithWasmRuntimeConfig sets the wazero runtime config used to load
	// ".wasm" class path entries.
	WithWasmRuntimeConfig(config wazero.RuntimeConfig) IConfig
}

type config struct {
	libraries         map[string][]*ClassDef
	localCapacity     int
	logger            *zap.Logger
	wasmRuntimeConfig wazero.RuntimeConfig
}

// NewConfig returns the default configuration.
func NewConfig() IConfig {
	return &config{
		libraries:     map[string][]*ClassDef{},
		localCapacity: DefaultLocalCapacity,
		logger:        zap.NewNop(),
	}
}

func (c *config) clone() *config {
	ret := *c
	ret.libraries = make(map[string][]*ClassDef, len(c.libraries))
	for name, classes := range c.libraries {
		ret.libraries[name] = classes
	}
	return &ret
}

func (c *config) WithLibrary(name string, classes ...*ClassDef) IConfig {
	ret := c.clone()
	ret.libraries[name] = append(append([]*ClassDef{}, c.libraries[name]...), classes...)
	return ret
}

func (c *config) WithLocalCapacity(capacity int) IConfig {
	ret := c.clone()
	ret.localCapacity = capacity
	return ret
}

func (c *config) WithLogger(logger *zap.Logger) IConfig {
	ret := c.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	ret.logger = logger
	return ret
}

func (c *config) WithWasmRuntimeConfig(wasmConfig wazero.RuntimeConfig) IConfig {
	ret := c.clone()
	ret.wasmRuntimeConfig = wasmConfig
	return ret
}
