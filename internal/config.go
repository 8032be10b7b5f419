package javabind

import (
	"github.com/jerbob92/javabind/jni"

	"go.uber.org/zap"
)

// IBridgeConfig configures a bridge. Every With method returns a copy.
type IBridgeConfig interface {
	// WithLauncher sets the runtime used by Start.
	WithLauncher(launcher jni.Launcher) IBridgeConfig
	WithLogger(logger *zap.Logger) IBridgeConfig
	// WithVersion sets the requested interface version, defaults to
	// jni.Version1_8.
	WithVersion(version int32) IBridgeConfig
	// WithOptions adds runtime options, passed before the class path.
	WithOptions(options ...string) IBridgeConfig
	WithIgnoreUnrecognized(ignore bool) IBridgeConfig
}

type bridgeConfig struct {
	launcher           jni.Launcher
	logger             *zap.Logger
	version            int32
	options            []string
	ignoreUnrecognized bool
}

// NewConfig returns a config without a launcher.
func NewConfig() IBridgeConfig {
	return &bridgeConfig{
		logger:  zap.NewNop(),
		version: jni.Version1_8,
	}
}

func (c *bridgeConfig) clone() *bridgeConfig {
	ret := *c
	ret.options = append([]string{}, c.options...)
	return &ret
}

func (c *bridgeConfig) WithLauncher(launcher jni.Launcher) IBridgeConfig {
	ret := c.clone()
	ret.launcher = launcher
	return ret
}

func (c *bridgeConfig) WithLogger(logger *zap.Logger) IBridgeConfig {
	ret := c.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	ret.logger = logger
	return ret
}

func (c *bridgeConfig) WithVersion(version int32) IBridgeConfig {
	ret := c.clone()
	ret.version = version
	return ret
}

func (c *bridgeConfig) WithOptions(options ...string) IBridgeConfig {
	ret := c.clone()
	ret.options = append(ret.options, options...)
	return ret
}

func (c *bridgeConfig) WithIgnoreUnrecognized(ignore bool) IBridgeConfig {
	ret := c.clone()
	ret.ignoreUnrecognized = ignore
	return ret
}
