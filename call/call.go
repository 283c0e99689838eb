// Package call defines the uniform calling convention of the bridge:
// ordered argument values in, ordered result values out. Native
// functions and precompiled closures present the same contract to the
// caller; only the execution target differs.
package call

import (
	"context"

	dErrors "github.com/embervm/bindsdk/domain/errors"
)

// Func is the generic call shape every invocable member reduces to.
// Arguments and results are canonical script values: nil, bool, int64,
// float64, string, []byte, entities.Ptr, or []any of those.
type Func func(ctx context.Context, args []any) ([]any, error)

// Closure is an externally supplied, already-compiled script callable.
// It is opaque to the bridge: errors raised during execution propagate
// as the owning engine's own error signal, not as a binding-layer
// error.
type Closure interface {
	// Invoke runs the closure with the uniform calling convention.
	Invoke(ctx context.Context, args []any) ([]any, error)

	// Arity returns the number of declared parameters and whether the
	// closure collects excess arguments.
	Arity() (n int, variadic bool)
}

// FromFunc wraps an engine-supplied uniform function as a Closure with
// the declared arity (-1 to accept any argument count). The bridge
// treats the result as an opaque compiled artifact.
func FromFunc(arity int, fn Func) Closure {
	if arity < 0 {
		return funcClosure{variadic: true, fn: fn}
	}
	return funcClosure{arity: arity, fn: fn}
}

type funcClosure struct {
	arity    int
	variadic bool
	fn       Func
}

func (c funcClosure) Invoke(ctx context.Context, args []any) ([]any, error) {
	return c.fn(ctx, args)
}

func (c funcClosure) Arity() (int, bool) {
	return c.arity, c.variadic
}

// Adapter binds a Func to its declared arity. Invoke rejects argument
// counts that do not match before the function is entered.
type Adapter struct {
	name     string
	fn       Func
	arity    int
	variadic bool
}

// Raw builds an Adapter around an already-uniform Func with an
// explicitly declared arity. An arity of -1 accepts any argument count.
func Raw(name string, fn Func, arity int) Adapter {
	if arity < 0 {
		return Adapter{name: name, fn: fn, arity: 0, variadic: true}
	}
	return Adapter{name: name, fn: fn, arity: arity}
}

// Name returns the member name the adapter was built for.
func (a Adapter) Name() string { return a.name }

// NumParams returns the declared parameter count (the fixed-argument
// minimum for variadic functions).
func (a Adapter) NumParams() int { return a.arity }

// Variadic reports whether excess arguments are collected into one
// ordered sequence.
func (a Adapter) Variadic() bool { return a.variadic }

// WrapFunc returns a copy of the adapter with its underlying function
// wrapped. Arity metadata is unchanged; the table builder uses this to
// apply its middleware chain.
func (a Adapter) WrapFunc(wrap func(Func) Func) Adapter {
	a.fn = wrap(a.fn)
	return a
}

// Invoke checks arity and dispatches to the underlying function.
func (a Adapter) Invoke(ctx context.Context, args []any) ([]any, error) {
	if a.variadic {
		if len(args) < a.arity {
			return nil, &dErrors.ArityMismatchError{Member: a.name, Want: a.arity, Got: len(args), Variadic: true}
		}
	} else if len(args) != a.arity {
		return nil, &dErrors.ArityMismatchError{Member: a.name, Want: a.arity, Got: len(args)}
	}
	return a.fn(ctx, args)
}
