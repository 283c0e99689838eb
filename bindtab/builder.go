package bindtab

import (
	"fmt"

	"github.com/embervm/bindsdk/call"
	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/structdef"
)

// tableBuilder accumulates declarations during table construction.
type tableBuilder struct {
	class      string
	entries    map[string]Entry
	order      []string
	aliases    map[string]string
	aliasOrder []string
	middleware []Middleware
	errors     []error
}

// Option is a functional option declaring one row of the binding table.
type Option func(*tableBuilder)

// New compiles the declarations into an immutable Table for the named
// class. Construction fails on the first malformed row: duplicate or
// empty names, nil function or closure references, null addresses, or
// an alias without a target. A failed build produces no table.
func New(class string, opts ...Option) (*Table, error) {
	b := &tableBuilder{
		class:   class,
		entries: make(map[string]Entry),
		aliases: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	// Alias targets may be declared after the alias row, so they are
	// checked once all rows are in.
	for _, alias := range b.aliasOrder {
		target := b.aliases[alias]
		if _, ok := b.entries[target]; !ok {
			return nil, fmt.Errorf("class %s: alias %q points to undeclared member %q", class, alias, target)
		}
	}

	entries := make(map[string]Entry, len(b.entries))
	for name, e := range b.entries {
		entries[name] = b.applyMiddleware(e)
	}

	return &Table{
		class:   class,
		entries: entries,
		order:   b.order,
		aliases: b.aliases,
	}, nil
}

// MustNew builds a table or panics. Binding tables are built once at
// process start; a malformed declaration list is fatal to
// initialization and must prevent the class from becoming available.
func MustNew(class string, opts ...Option) *Table {
	t, err := New(class, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (b *tableBuilder) applyMiddleware(e Entry) Entry {
	if len(b.middleware) == 0 {
		return e
	}
	wrap := func(fn call.Func) call.Func {
		// Reverse order so the first middleware wraps outermost.
		for i := len(b.middleware) - 1; i >= 0; i-- {
			fn = b.middleware[i](fn)
		}
		return fn
	}
	switch e := e.(type) {
	case NativeFuncEntry:
		e.Adapter = e.Adapter.WrapFunc(wrap)
		return e
	case ClosureEntry:
		return ClosureEntry{Closure: wrappedClosure{inner: e.Closure, fn: wrap(e.Closure.Invoke)}}
	case VariableEntry, ConstPointerEntry, StructRefEntry:
		return e
	default:
		return e
	}
}

func (b *tableBuilder) add(name string, e Entry) {
	if name == "" {
		b.fail(fmt.Errorf("class %s: member name cannot be empty", b.class))
		return
	}
	if _, exists := b.entries[name]; exists {
		b.fail(&dErrors.DuplicateNameError{Scope: "class " + b.class, Name: name})
		return
	}
	if _, exists := b.aliases[name]; exists {
		b.fail(&dErrors.DuplicateNameError{Scope: "class " + b.class, Name: name})
		return
	}
	b.entries[name] = e
	b.order = append(b.order, name)
}

func (b *tableBuilder) fail(err error) {
	b.errors = append(b.errors, err)
}

// WithVariable declares a per-instance mutable slot initialized to the
// given default.
func WithVariable(name string, def any) Option {
	return func(b *tableBuilder) {
		b.add(name, VariableEntry{Default: def})
	}
}

// WithConstPointer declares a fixed address of native global state.
// A null address is a construction error.
func WithConstPointer(name string, addr entities.Ptr) Option {
	return func(b *tableBuilder) {
		if addr == 0 {
			b.fail(fmt.Errorf("class %s: constant pointer %q is null", b.class, name))
			return
		}
		b.add(name, ConstPointerEntry{Addr: addr})
	}
}

// WithFunc declares a native function member. The function is adapted
// to the uniform call contract by reflection; its arity is derived from
// the signature. A nil or non-func reference is a construction error.
func WithFunc(name string, fn any) Option {
	return func(b *tableBuilder) {
		a, err := call.Wrap(name, fn)
		if err != nil {
			b.fail(fmt.Errorf("class %s: %w", b.class, err))
			return
		}
		b.add(name, NativeFuncEntry{Adapter: a})
	}
}

// WithRawFunc declares a native function member that already has the
// uniform shape, with an explicitly declared arity (-1 for any count).
func WithRawFunc(name string, fn call.Func, arity int) Option {
	return func(b *tableBuilder) {
		if fn == nil {
			b.fail(fmt.Errorf("class %s: native function %q is nil", b.class, name))
			return
		}
		b.add(name, NativeFuncEntry{Adapter: call.Raw(name, fn, arity)})
	}
}

// WithClosure declares a precompiled closure member.
func WithClosure(name string, c call.Closure) Option {
	return func(b *tableBuilder) {
		if c == nil {
			b.fail(fmt.Errorf("class %s: closure %q is nil", b.class, name))
			return
		}
		b.add(name, ClosureEntry{Closure: c})
	}
}

// WithStructRef declares a structure reference member: a descriptor
// plus the base address of the struct instance it describes.
func WithStructRef(name string, d *structdef.Descriptor, base entities.Ptr) Option {
	return func(b *tableBuilder) {
		if d == nil {
			b.fail(fmt.Errorf("class %s: structure reference %q has no descriptor", b.class, name))
			return
		}
		if base == 0 {
			b.fail(fmt.Errorf("class %s: structure reference %q has a null base", b.class, name))
			return
		}
		b.add(name, StructRefEntry{Descriptor: d, Base: base})
	}
}

// WithAlias declares a deprecated alias for an existing member. The
// alias shares the target's entry; it never duplicates it. The target
// may be declared in a later row.
func WithAlias(alias, target string) Option {
	return func(b *tableBuilder) {
		if alias == "" {
			b.fail(fmt.Errorf("class %s: alias name cannot be empty", b.class))
			return
		}
		if _, exists := b.entries[alias]; exists {
			b.fail(&dErrors.DuplicateNameError{Scope: "class " + b.class, Name: alias})
			return
		}
		if _, exists := b.aliases[alias]; exists {
			b.fail(&dErrors.DuplicateNameError{Scope: "class " + b.class, Name: alias})
			return
		}
		b.aliases[alias] = target
		b.aliasOrder = append(b.aliasOrder, alias)
	}
}

// WithMiddleware adds middleware wrapping every invocable entry.
// Middleware executes in FIFO order (first added wraps outermost).
func WithMiddleware(mw ...Middleware) Option {
	return func(b *tableBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
