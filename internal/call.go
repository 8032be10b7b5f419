package javabind

import (
	"context"
	"fmt"

	"github.com/jerbob92/javabind/jni"

	"go.uber.org/zap"
)

// Declaration declares a static method as a call.
type Declaration struct {
	// Name is the name the call is exposed under.
	Name string
	// Class is the internal class name, e.g. "entry/percent/PercentEntryPoint".
	Class     string
	Method    string
	Returns   Type
	Arguments []Type
}

// ICall is a registered call binding.
type ICall interface {
	Name() string
	ClassName() string
	MethodName() string
	// Signature returns the method descriptor, computed once at declaration.
	Signature() string
	ReturnType() Type
	ArgumentTypes() []Type
	// Call attaches the current thread, converts the arguments, invokes the
	// method and converts the result.
	Call(ctx context.Context, arguments ...any) (any, error)
}

type returnKind int

const (
	returnVoid returnKind = iota
	returnScalar
	returnObject
)

type call struct {
	bridge        *bridge
	name          string
	className     string
	methodName    string
	signature     string
	returnType    Type
	returnKind    returnKind
	argumentTypes []Type
}

func newCall(b *bridge, d Declaration) (*call, error) {
	if d.Name == "" {
		return nil, newError(KindConfiguration, nil, "call name is missing")
	}
	if d.Class == "" || d.Method == "" {
		return nil, newError(KindConfiguration, nil, "call %s needs a class and a method", d.Name)
	}
	if d.Returns == nil {
		return nil, newError(KindConfiguration, nil, "call %s has no return type", d.Name)
	}
	if err := d.Returns.validate(); err != nil {
		return nil, fmt.Errorf("invalid return type of call %s: %w", d.Name, err)
	}

	for i := range d.Arguments {
		if d.Arguments[i] == nil {
			return nil, newError(KindConfiguration, nil, "argument %d of call %s has no type", i, d.Name)
		}
		if d.Arguments[i].Signature() == jni.SigVoid {
			return nil, newError(KindConfiguration, nil, "argument %d of call %s is void, void can only be used as a return type", i, d.Name)
		}
		if err := d.Arguments[i].validate(); err != nil {
			return nil, fmt.Errorf("invalid type of argument %d of call %s: %w", i, d.Name, err)
		}
	}

	c := &call{
		bridge:        b,
		name:          d.Name,
		className:     d.Class,
		methodName:    d.Method,
		signature:     MethodSignature(d.Returns, d.Arguments...),
		returnType:    d.Returns,
		argumentTypes: append([]Type{}, d.Arguments...),
	}

	switch {
	case d.Returns.Signature() == jni.SigVoid:
		c.returnKind = returnVoid
	case d.Returns.IsReference():
		c.returnKind = returnObject
	default:
		c.returnKind = returnScalar
	}

	return c, nil
}

func (c *call) Name() string {
	return c.name
}

func (c *call) ClassName() string {
	return c.className
}

func (c *call) MethodName() string {
	return c.methodName
}

func (c *call) Signature() string {
	return c.signature
}

func (c *call) ReturnType() Type {
	return c.returnType
}

func (c *call) ArgumentTypes() []Type {
	return append([]Type{}, c.argumentTypes...)
}

func (c *call) Call(ctx context.Context, arguments ...any) (res any, err error) {
	b := c.bridge

	b.lock.RLock()
	defer b.lock.RUnlock()

	vm, err := b.getHandle()
	if err != nil {
		return nil, err
	}

	att, err := attach(ctx, vm)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := att.Release(); releaseErr != nil && err == nil {
			res, err = nil, releaseErr
		}
	}()

	res, err = c.invoke(ctx, att.env, arguments)
	if err != nil {
		// Nothing may stay pending once the thread is detached.
		att.env.ExceptionClear()
		b.logger.Warn("call failed", zap.String("name", c.name), zap.Error(err))
		return nil, err
	}

	b.logger.Debug("call succeeded", zap.String("name", c.name))
	return res, nil
}

// invoke runs the call on an attached thread. Every local reference it
// creates is deleted before it returns.
func (c *call) invoke(ctx context.Context, env jni.Env, arguments []any) (any, error) {
	if len(arguments) != len(c.argumentTypes) {
		return nil, typeMismatch("function %s called with %d argument(s), expected %d arg(s)", c.name, len(arguments), len(c.argumentTypes))
	}

	cls, err := findClass(env, c.className)
	if err != nil {
		return nil, err
	}

	mid, err := getMethodID(env, cls, c.methodName, c.signature, true)
	if err != nil {
		return nil, err
	}

	frame := NewFrame(env)
	defer frame.Release()

	argsWired := make([]jni.Value, len(arguments))
	for i := range arguments {
		argsWired[i], err = c.argumentTypes[i].ToWireType(ctx, env, frame, arguments[i])
		if err != nil {
			return nil, fmt.Errorf("could not convert argument %d (%s): %w", i, c.argumentTypes[i].Name(), err)
		}
	}

	ret := env.CallStaticMethodA(cls, mid, argsWired)
	if err := invocationError(env, c.methodName); err != nil {
		return nil, err
	}

	switch c.returnKind {
	case returnVoid:
		return nil, nil
	case returnScalar:
		return c.returnType.FromWireType(ctx, env, ret)
	}

	ref := jni.DecodeObject(ret)
	if ref == 0 {
		return nil, newError(KindInvocation, nil, "method %s returned null", c.methodName)
	}
	defer env.DeleteLocalRef(ref)

	converted, err := c.returnType.FromWireType(ctx, env, ret)
	if err != nil {
		return nil, fmt.Errorf("could not convert return value (%s): %w", c.returnType.Name(), err)
	}
	return converted, nil
}
