package call

import (
	"context"
	"fmt"
	"reflect"

	dErrors "github.com/embervm/bindsdk/domain/errors"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Wrap adapts an arbitrary Go function to the uniform call contract.
//
// The function may take a leading context.Context, which is fed from
// the caller and not counted as a parameter. A trailing error result is
// split off as the call failure; all other results are returned in
// order as canonical values. A variadic tail collects the excess
// arguments as one logical sequence.
//
// Arity is derived from the signature; Invoke rejects mismatched
// argument counts with ArityMismatch and untranslatable arguments with
// a ConversionError carrying the argument index.
func Wrap(name string, fn any) (Adapter, error) {
	if fn == nil {
		return Adapter{}, fmt.Errorf("native function %q is nil", name)
	}
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Adapter{}, fmt.Errorf("native function %q: got %T, want a func", name, fn)
	}

	numIn := fnType.NumIn()
	takesCtx := numIn > 0 && fnType.In(0) == ctxType
	firstArg := 0
	if takesCtx {
		firstArg = 1
	}
	variadic := fnType.IsVariadic()
	arity := numIn - firstArg
	if variadic {
		arity--
	}

	numOut := fnType.NumOut()
	errIndex := -1
	if numOut > 0 && fnType.Out(numOut-1).Implements(errType) {
		errIndex = numOut - 1
	}

	uniform := func(ctx context.Context, args []any) ([]any, error) {
		in := make([]reflect.Value, 0, numIn)
		if takesCtx {
			if ctx == nil {
				ctx = context.Background()
			}
			in = append(in, reflect.ValueOf(ctx))
		}
		for i, arg := range args {
			var paramType reflect.Type
			if variadic && i >= arity {
				paramType = fnType.In(numIn - 1).Elem()
			} else {
				paramType = fnType.In(firstArg + i)
			}
			v, err := convertArg(arg, paramType)
			if err != nil {
				return nil, &dErrors.ConversionError{Err: err, Member: name, Index: i}
			}
			in = append(in, v)
		}

		out := fnVal.Call(in)

		if errIndex >= 0 {
			if errVal := out[errIndex]; !errVal.IsNil() {
				return nil, errVal.Interface().(error)
			}
			out = out[:errIndex]
		}
		results := make([]any, len(out))
		for i, rv := range out {
			results[i] = Normalize(rv.Interface())
		}
		return results, nil
	}

	return Adapter{name: name, fn: uniform, arity: arity, variadic: variadic}, nil
}

// MustWrap adapts fn or panics. Intended for process-start registration
// where a malformed signature is fatal.
func MustWrap(name string, fn any) Adapter {
	a, err := Wrap(name, fn)
	if err != nil {
		panic(err)
	}
	return a
}
