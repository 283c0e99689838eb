package starbind

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/embervm/bindsdk/domain/entities"
)

// ToStarlark translates a canonical bridge value into its Starlark
// form. Pointer values become plain ints; scripts treat addresses as
// opaque numbers.
func ToStarlark(v any) (starlark.Value, error) {
	switch v := v.(type) {
	case nil:
		return starlark.None, nil
	case bool:
		return starlark.Bool(v), nil
	case int64:
		return starlark.MakeInt64(v), nil
	case entities.Ptr:
		return starlark.MakeUint64(uint64(v)), nil
	case float64:
		return starlark.Float(v), nil
	case string:
		return starlark.String(v), nil
	case []byte:
		return starlark.Bytes(v), nil
	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			ev, err := ToStarlark(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}
		return starlark.NewList(elems), nil
	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			sv, err := ToStarlark(val)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, fmt.Errorf("no starlark form for %T", v)
}

// FromStarlark translates a Starlark value into its canonical bridge
// form: None to nil, ints to int64, floats to float64, lists and
// tuples to []any.
func FromStarlark(v starlark.Value) (any, error) {
	switch v := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(v), nil
	case starlark.Int:
		n, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("int %v does not fit in 64 bits", v)
		}
		return n, nil
	case starlark.Float:
		return float64(v), nil
	case starlark.String:
		return string(v), nil
	case starlark.Bytes:
		return []byte(v), nil
	case starlark.Tuple:
		return fromSequence(v)
	case *starlark.List:
		elems := make([]starlark.Value, v.Len())
		for i := range elems {
			elems[i] = v.Index(i)
		}
		return fromSequence(elems)
	}
	return nil, fmt.Errorf("no bridge form for starlark %s", v.Type())
}

func fromSequence(elems []starlark.Value) ([]any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		ev, err := FromStarlark(e)
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}
