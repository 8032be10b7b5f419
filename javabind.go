package javabind

import (
	"io"

	internal "github.com/jerbob92/javabind/internal"
	"github.com/jerbob92/javabind/jni"
	"github.com/jerbob92/javabind/vm"
)

type Bridge interface {
	internal.IBridge
}

type Call interface {
	internal.ICall
}

type Config interface {
	internal.IBridgeConfig
}

type Type = internal.Type

type Declaration = internal.Declaration

type DeclarationFile = internal.DeclarationFile

type CallDeclaration = internal.CallDeclaration

type Error = internal.Error

type ErrorKind = internal.Kind

const (
	KindConfiguration = internal.KindConfiguration
	KindLifecycle     = internal.KindLifecycle
	KindLookup        = internal.KindLookup
	KindTypeMismatch  = internal.KindTypeMismatch
	KindAllocation    = internal.KindAllocation
	KindInvocation    = internal.KindInvocation
)

var (
	ErrConfiguration = internal.ErrConfiguration
	ErrLifecycle     = internal.ErrLifecycle
	ErrLookup        = internal.ErrLookup
	ErrTypeMismatch  = internal.ErrTypeMismatch
	ErrAllocation    = internal.ErrAllocation
	ErrInvocation    = internal.ErrInvocation
)

var (
	Boolean = internal.Boolean
	Byte    = internal.Byte
	Char    = internal.Char
	Short   = internal.Short
	Int     = internal.Int
	Long    = internal.Long
	Float   = internal.Float
	Double  = internal.Double
	Void    = internal.Void

	Object       = internal.Object
	String       = internal.String
	BoxedBoolean = internal.BoxedBoolean
	BoxedInteger = internal.BoxedInteger
	BoxedLong    = internal.BoxedLong
	BoxedDouble  = internal.BoxedDouble
)

// PairClassName is the helper class used by Pair.
const PairClassName = internal.PairClassName

// NewConfig returns a config that starts the bundled runtime of package vm
// with its default configuration.
func NewConfig() Config {
	return internal.NewConfig().WithLauncher(vm.NewLauncher(nil))
}

// NewConfigWithLauncher returns a config that starts runtimes with launcher.
func NewConfigWithLauncher(launcher jni.Launcher) Config {
	return internal.NewConfig().WithLauncher(launcher)
}

// CreateBridge returns a bridge that is not started yet. A nil config means
// NewConfig().
func CreateBridge(config Config) Bridge {
	if config == nil {
		config = NewConfig()
	}
	return internal.CreateBridge(config)
}

func Array(element Type) Type {
	return internal.Array(element)
}

func Pair(key, value Type) Type {
	return internal.Pair(key, value)
}

func PairOf(className string, key, value Type) Type {
	return internal.PairOf(className, key, value)
}

func Class(name string) Type {
	return internal.Class(name)
}

// ArrayElement returns the element type of an array type.
func ArrayElement(t Type) (Type, bool) {
	return internal.ArrayElement(t)
}

// PairSides returns the key and value types of a pair type.
func PairSides(t Type) (key, value Type, ok bool) {
	return internal.PairSides(t)
}

// MethodSignature composes the method descriptor, e.g. "(II)I".
func MethodSignature(ret Type, args ...Type) string {
	return internal.MethodSignature(ret, args...)
}

// ResolveType resolves a type expression like "array<Pair<array<String>,
// Boolean>>".
func ResolveType(expr string) (Type, error) {
	return internal.ResolveType(expr)
}

func LoadDeclarations(r io.Reader) (*DeclarationFile, error) {
	return internal.LoadDeclarations(r)
}

// DeclareAll declares every call of the file on the bridge.
func DeclareAll(b Bridge, f *DeclarationFile) error {
	return internal.DeclareAll(b, f)
}

// ErrorKindOf returns the kind of the first bridge error in err's chain.
func ErrorKindOf(err error) ErrorKind {
	return internal.KindOf(err)
}
