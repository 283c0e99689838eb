package closure

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/embervm/bindsdk/call"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/memory"
)

// Module is one instantiated closure artifact. Its exports become
// callables; its linear memory, when present, doubles as a memory
// handle structure descriptors can be laid over.
type Module struct {
	mod api.Module
}

// Close releases the module instance.
func (m *Module) Close(ctx context.Context) error {
	return m.mod.Close(ctx)
}

// Memory returns the artifact's linear memory as a memory.Memory, or
// false if the artifact exports none. The wazero memory satisfies the
// handle interface directly.
func (m *Module) Memory() (memory.Memory, bool) {
	mem := m.mod.Memory()
	if mem == nil {
		return nil, false
	}
	return mem, true
}

// Closure wraps the named export behind the uniform call contract.
// Arity follows the export's declared parameters. An artifact without
// that export is a construction error.
func (m *Module) Closure(export string) (call.Closure, error) {
	fn := m.mod.ExportedFunction(export)
	if fn == nil {
		return nil, fmt.Errorf("artifact %q exports no function %q", m.mod.Name(), export)
	}
	def := fn.Definition()
	return &wasmClosure{
		name:    export,
		fn:      fn,
		params:  def.ParamTypes(),
		results: def.ResultTypes(),
	}, nil
}

// wasmClosure adapts one wasm export to call.Closure. Execution errors
// (traps, exit codes) propagate untouched as the engine's own error
// signal.
type wasmClosure struct {
	name    string
	fn      api.Function
	params  []api.ValueType
	results []api.ValueType
}

func (c *wasmClosure) Arity() (int, bool) {
	return len(c.params), false
}

func (c *wasmClosure) Invoke(ctx context.Context, args []any) ([]any, error) {
	if len(args) != len(c.params) {
		return nil, &dErrors.ArityMismatchError{Member: c.name, Want: len(c.params), Got: len(args)}
	}

	raw := make([]uint64, len(args))
	for i, arg := range args {
		enc, err := encodeParam(arg, c.params[i])
		if err != nil {
			return nil, &dErrors.ConversionError{Err: err, Member: c.name, Index: i}
		}
		raw[i] = enc
	}

	out, err := c.fn.Call(ctx, raw...)
	if err != nil {
		return nil, err
	}

	results := make([]any, len(out))
	for i, r := range out {
		results[i] = decodeResult(r, c.results[i])
	}
	return results, nil
}

func encodeParam(v any, t api.ValueType) (uint64, error) {
	switch t {
	case api.ValueTypeI32:
		n, ok := v.(int64)
		if !ok {
			return 0, fmt.Errorf("cannot convert %T to i32", v)
		}
		if n < -1<<31 || n > 1<<31-1 {
			return 0, fmt.Errorf("value %d overflows i32", n)
		}
		return api.EncodeI32(int32(n)), nil
	case api.ValueTypeI64:
		n, ok := v.(int64)
		if !ok {
			return 0, fmt.Errorf("cannot convert %T to i64", v)
		}
		return api.EncodeI64(n), nil
	case api.ValueTypeF32:
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("cannot convert %T to f32", v)
		}
		return api.EncodeF32(float32(f)), nil
	case api.ValueTypeF64:
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("cannot convert %T to f64", v)
		}
		return api.EncodeF64(f), nil
	default:
		return 0, fmt.Errorf("unsupported parameter type %s", api.ValueTypeName(t))
	}
}

func decodeResult(raw uint64, t api.ValueType) any {
	switch t {
	case api.ValueTypeI32:
		return int64(api.DecodeI32(raw))
	case api.ValueTypeI64:
		return int64(raw)
	case api.ValueTypeF32:
		return float64(api.DecodeF32(raw))
	case api.ValueTypeF64:
		return api.DecodeF64(raw)
	default:
		return raw
	}
}
