package call

import (
	"fmt"
	"reflect"

	"github.com/embervm/bindsdk/domain/entities"
)

var (
	anyType   = reflect.TypeOf((*any)(nil)).Elem()
	ptrType   = reflect.TypeOf(entities.Ptr(0))
	bytesType = reflect.TypeOf([]byte(nil))
)

// convertArg translates one canonical script value to the native
// parameter type it is bound to. Translation is exact: integers only
// into integer parameters (range checked), floats only into float
// parameters, never across the signedness or float/int boundary.
func convertArg(v any, t reflect.Type) (reflect.Value, error) {
	if t == anyType {
		if v == nil {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(v), nil
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot pass nil as %s", t)
	}
	if t == ptrType {
		if p, ok := v.(entities.Ptr); ok {
			return reflect.ValueOf(p), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", v, t)
	}

	switch t.Kind() {
	case reflect.Bool:
		if b, ok := v.(bool); ok {
			return reflect.ValueOf(b).Convert(t), nil
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := v.(int64); ok {
			if reflect.Zero(t).OverflowInt(n) {
				return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
			}
			return reflect.ValueOf(n).Convert(t), nil
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if n, ok := v.(int64); ok {
			if n < 0 || reflect.Zero(t).OverflowUint(uint64(n)) {
				return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, t)
			}
			return reflect.ValueOf(n).Convert(t), nil
		}

	case reflect.Float32, reflect.Float64:
		if f, ok := v.(float64); ok {
			return reflect.ValueOf(f).Convert(t), nil
		}

	case reflect.String:
		if s, ok := v.(string); ok {
			return reflect.ValueOf(s).Convert(t), nil
		}

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			switch raw := v.(type) {
			case []byte:
				return reflect.ValueOf(raw).Convert(t), nil
			case string:
				return reflect.ValueOf([]byte(raw)).Convert(t), nil
			}
			break
		}
		if seq, ok := v.([]any); ok {
			out := reflect.MakeSlice(t, len(seq), len(seq))
			for i, elem := range seq {
				ev, err := convertArg(elem, t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				out.Index(i).Set(ev)
			}
			return out, nil
		}

	default:
		if rv := reflect.ValueOf(v); rv.Type().AssignableTo(t) {
			return rv, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", v, t)
}

// Normalize folds a native value into its canonical script form:
// signed and unsigned integers to int64, float32 to float64, non-byte
// slices to []any. Values already canonical pass through unchanged.
func Normalize(v any) any {
	switch n := v.(type) {
	case nil, bool, int64, float64, string, []byte, entities.Ptr:
		return v
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	case []any:
		out := make([]any, len(n))
		for i, elem := range n {
			out[i] = Normalize(elem)
		}
		return out
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice && rv.Type() != bytesType {
			out := make([]any, rv.Len())
			for i := range out {
				out[i] = Normalize(rv.Index(i).Interface())
			}
			return out
		}
		return v
	}
}
