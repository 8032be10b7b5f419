// Package luabridge exposes a javabind bridge as a Lua module. Every
// function reports failures the Lua way: it returns nil and an error
// message instead of raising an error.
package luabridge

import (
	"context"
	"fmt"

	"github.com/jerbob92/javabind"
	"github.com/jerbob92/javabind/jni"

	lua "github.com/yuin/gopher-lua"
)

// Preload registers the module under name, so scripts can require it.
func Preload(L *lua.LState, name string, bridge javabind.Bridge) {
	L.PreloadModule(name, Loader(bridge))
}

// Loader returns a module loader with start_jvm, destroy_jvm and one
// function per call declared on the bridge when the module is loaded.
func Loader(bridge javabind.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		funcs := map[string]lua.LGFunction{
			"start_jvm":   startJVM(bridge),
			"destroy_jvm": destroyJVM(bridge),
		}

		calls := bridge.Calls()
		for i := range calls {
			funcs[calls[i].Name()] = callFunction(calls[i])
		}

		L.Push(L.SetFuncs(L.NewTable(), funcs))
		return 1
	}
}

func pushError(L *lua.LState, err error) int {
	L.SetTop(0)
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

func stateContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func startJVM(bridge javabind.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		var path string
		switch v := L.Get(1).(type) {
		case lua.LString:
			path = string(v)
		case lua.LNumber:
			path = v.String()
		}

		// An empty path is rejected by the bridge.
		if err := bridge.Start(stateContext(L), path); err != nil {
			return pushError(L, err)
		}
		return 0
	}
}

func destroyJVM(bridge javabind.Bridge) lua.LGFunction {
	return func(L *lua.LState) int {
		if err := bridge.Destroy(stateContext(L)); err != nil {
			return pushError(L, err)
		}
		return 0
	}
}

func callFunction(call javabind.Call) lua.LGFunction {
	argumentTypes := call.ArgumentTypes()
	isVoid := call.ReturnType().Signature() == jni.SigVoid

	return func(L *lua.LState) int {
		arguments := make([]any, L.GetTop())
		for i := range arguments {
			arguments[i] = FromLValue(L.Get(i + 1))
			if i < len(argumentTypes) {
				arguments[i] = coerce(argumentTypes[i], arguments[i])
			}
		}

		res, err := call.Call(stateContext(L), arguments...)
		if err != nil {
			return pushError(L, err)
		}

		if isVoid {
			return 0
		}
		L.Push(ToLValue(L, res))
		return 1
	}
}

// coerce applies the string coercion Lua applies itself: numbers are
// accepted where a string is expected, also inside arrays and pairs.
func coerce(t javabind.Type, value any) any {
	if element, ok := javabind.ArrayElement(t); ok {
		elems, ok := value.([]any)
		if !ok {
			return value
		}
		coerced := make([]any, len(elems))
		for i := range elems {
			coerced[i] = coerce(element, elems[i])
		}
		return coerced
	}

	if key, val, ok := javabind.PairSides(t); ok {
		sides, ok := value.([]any)
		if !ok || len(sides) < 2 {
			return value
		}
		coerced := append([]any{}, sides...)
		coerced[0] = coerce(key, sides[0])
		coerced[1] = coerce(val, sides[1])
		return coerced
	}

	if t.Signature() != javabind.String.Signature() {
		return value
	}
	if f, ok := value.(float64); ok {
		return lua.LNumber(f).String()
	}
	return value
}

// FromLValue converts a Lua value to the dynamic value the bridge converts
// from. Tables are read as sequences from 1 to their length.
func FromLValue(lv lua.LValue) any {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		n := v.Len()
		seq := make([]any, n)
		for i := 0; i < n; i++ {
			seq[i] = FromLValue(v.RawGetInt(i + 1))
		}
		return seq
	}

	// Functions, userdata and threads have no counterpart.
	return lv
}

// ToLValue converts a value returned by the bridge to a Lua value.
func ToLValue(L *lua.LState, value any) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int8:
		return lua.LNumber(v)
	case uint16:
		return lua.LNumber(v)
	case int16:
		return lua.LNumber(v)
	case int32:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []any:
		tbl := L.CreateTable(len(v), 0)
		for i := range v {
			tbl.RawSetInt(i+1, ToLValue(L, v[i]))
		}
		return tbl
	}

	return lua.LString(fmt.Sprintf("%v", value))
}
