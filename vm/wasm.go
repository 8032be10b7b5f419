package vm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jerbob92/javabind/jni"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"
)

// wasmClassName returns the class a module is loaded as: the file name
// without extension.
func wasmClassName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func wasmSignature(t api.ValueType) (string, bool) {
	switch t {
	case api.ValueTypeI32:
		return jni.SigInt, true
	case api.ValueTypeI64:
		return jni.SigLong, true
	case api.ValueTypeF32:
		return jni.SigFloat, true
	case api.ValueTypeF64:
		return jni.SigDouble, true
	}
	return "", false
}

func wasmMethodSignature(def api.FunctionDefinition) (string, bool) {
	results := def.ResultTypes()
	if len(results) > 1 {
		return "", false
	}

	params := make([]string, len(def.ParamTypes()))
	for i, t := range def.ParamTypes() {
		sig, ok := wasmSignature(t)
		if !ok {
			return "", false
		}
		params[i] = sig
	}

	ret := jni.SigVoid
	if len(results) == 1 {
		sig, ok := wasmSignature(results[0])
		if !ok {
			return "", false
		}
		ret = sig
	}

	return jni.MethodSignature(ret, params...), true
}

func encodeWasmParam(t api.ValueType, v any) uint64 {
	switch t {
	case api.ValueTypeI32:
		return api.EncodeI32(v.(int32))
	case api.ValueTypeI64:
		return api.EncodeI64(v.(int64))
	case api.ValueTypeF32:
		return api.EncodeF32(v.(float32))
	default:
		return api.EncodeF64(v.(float64))
	}
}

func decodeWasmResult(t api.ValueType, v uint64) any {
	switch t {
	case api.ValueTypeI32:
		return api.DecodeI32(v)
	case api.ValueTypeI64:
		return int64(v)
	case api.ValueTypeF32:
		return api.DecodeF32(v)
	default:
		return api.DecodeF64(v)
	}
}

// wasmError converts a wasm trap into an exception.
func wasmError(err error) error {
	if strings.Contains(err.Error(), "integer divide by zero") {
		return Throw(ArithmeticClassName, "/ by zero")
	}
	return Throw(RuntimeExceptionClassName, "%s", err.Error())
}

// wasmMethod looks the function up per call, api.Function is not safe for
// concurrent use.
func wasmMethod(mod api.Module, name string, def api.FunctionDefinition, sig string) MethodDef {
	paramTypes := def.ParamTypes()
	resultTypes := def.ResultTypes()

	return MethodDef{
		Name:      name,
		Signature: sig,
		Static:    true,
		Fn: func(t *Thread, this *Object, args []any) (any, error) {
			params := make([]uint64, len(paramTypes))
			for i := range paramTypes {
				params[i] = encodeWasmParam(paramTypes[i], args[i])
			}

			results, err := mod.ExportedFunction(name).Call(t.Context(), params...)
			if err != nil {
				return nil, wasmError(err)
			}

			if len(resultTypes) == 0 {
				return nil, nil
			}
			return decodeWasmResult(resultTypes[0], results[0]), nil
		},
	}
}

// loadWasm compiles a WebAssembly module and defines a class with one static
// method per exported function that only uses numeric types.
func (vm *VM) loadWasm(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if vm.wasmRuntime == nil {
		runtimeConfig := vm.config.wasmRuntimeConfig
		if runtimeConfig == nil {
			runtimeConfig = wazero.NewRuntimeConfig()
		}
		vm.wasmRuntime = wazero.NewRuntimeWithConfig(ctx, runtimeConfig)
	}

	compiled, err := vm.wasmRuntime.CompileModule(ctx, data)
	if err != nil {
		return fmt.Errorf("could not compile module: %w", err)
	}

	for _, imported := range compiled.ImportedFunctions() {
		moduleName, _, _ := imported.Import()
		if moduleName == wasi_snapshot_preview1.ModuleName && !vm.wasiInstantiated {
			if _, err := wasi_snapshot_preview1.Instantiate(ctx, vm.wasmRuntime); err != nil {
				return fmt.Errorf("could not instantiate WASI: %w", err)
			}
			vm.wasiInstantiated = true
		}
	}

	className := wasmClassName(path)
	moduleConfig := wazero.NewModuleConfig().
		WithName(className).
		WithStartFunctions("_initialize")

	mod, err := vm.wasmRuntime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return fmt.Errorf("could not instantiate module: %w", err)
	}

	exported := compiled.ExportedFunctions()
	names := make([]string, 0, len(exported))
	for name := range exported {
		names = append(names, name)
	}
	sort.Strings(names)

	def := &ClassDef{Name: className}
	for _, name := range names {
		fnDef := exported[name]
		sig, ok := wasmMethodSignature(fnDef)
		if !ok {
			vm.logger.Debug("skipping export with unsupported signature", zap.String("class", className), zap.String("export", name))
			continue
		}
		def.Methods = append(def.Methods, wasmMethod(mod, name, fnDef, sig))
	}

	if err := vm.defineClass(def); err != nil {
		return err
	}

	vm.logger.Debug("loaded wasm module", zap.String("path", path), zap.String("class", className), zap.Int("methods", len(def.Methods)))
	return nil
}
