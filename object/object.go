// Package object implements the per-instance dynamic object runtime:
// one shared binding table per class, private mutable variable slots
// per instance, and name-based resolution over both.
package object

import (
	"context"
	"fmt"

	"github.com/embervm/bindsdk/bindtab"
	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/memory"
)

// Object is one logical instance of an exposed class. The scripting
// engine is single-threaded and cooperative, so instances are not
// internally locked; only the owning script thread may touch them.
type Object struct {
	table *bindtab.Table
	vars  map[string]any
	mem   memory.Memory
}

// Option configures an instance at creation.
type Option func(*Object)

// WithMemory attaches the memory handle structure references and
// pointer-typed members of this instance resolve against.
func WithMemory(mem memory.Memory) Option {
	return func(o *Object) {
		o.mem = mem
	}
}

// New creates an instance of the class the table describes. Variable
// slots are populated from the table's declared defaults; every other
// entry kind stays shared and identical across instances.
func New(table *bindtab.Table, opts ...Option) *Object {
	o := &Object{
		table: table,
		vars:  table.VariableDefaults(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Table returns the shared binding table of the instance's class.
func (o *Object) Table() *bindtab.Table {
	return o.table
}

// Memory returns the instance's memory handle, or nil if none is
// attached.
func (o *Object) Memory() memory.Memory {
	return o.mem
}

// Get resolves a member read by name: the private variable slot first,
// then the shared table. Constant pointers yield their address, struct
// references yield a *StructView bound to the instance's memory, and
// invocable members yield a *BoundMember.
func (o *Object) Get(name string) (any, error) {
	canonical := o.table.Canonical(name)
	if v, ok := o.vars[canonical]; ok {
		return v, nil
	}
	e, err := o.table.Resolve(canonical)
	if err != nil {
		return nil, &dErrors.UnknownMemberError{Class: o.table.Class(), Name: name}
	}

	switch e := e.(type) {
	case bindtab.VariableEntry:
		// A variable resolved through the table only happens when the
		// slot was dropped, which New never does; honor the default.
		return e.Default, nil
	case bindtab.ConstPointerEntry:
		return e.Addr, nil
	case bindtab.NativeFuncEntry:
		n := e.Adapter.NumParams()
		return &BoundMember{name: canonical, invoke: e.Adapter.Invoke, arity: n, variadic: e.Adapter.Variadic()}, nil
	case bindtab.ClosureEntry:
		n, variadic := e.Closure.Arity()
		return &BoundMember{name: canonical, invoke: e.Closure.Invoke, arity: n, variadic: variadic}, nil
	case bindtab.StructRefEntry:
		if o.mem == nil {
			return nil, fmt.Errorf("class %s: member %q needs a memory handle, none attached", o.table.Class(), name)
		}
		return &StructView{desc: e.Descriptor, base: e.Base, mem: o.mem}, nil
	default:
		return nil, fmt.Errorf("class %s: member %q has unknown kind", o.table.Class(), name)
	}
}

// Set writes a member by name. Only variable-kind members accept
// writes; every other kind fails with AccessDenied. Writes mutate only
// this instance's private slot.
func (o *Object) Set(name string, value any) error {
	canonical := o.table.Canonical(name)
	if _, ok := o.vars[canonical]; ok {
		o.vars[canonical] = value
		return nil
	}
	e, err := o.table.Resolve(canonical)
	if err != nil {
		return &dErrors.UnknownMemberError{Class: o.table.Class(), Name: name}
	}
	if e.Kind() == entities.KindVariable {
		o.vars[canonical] = value
		return nil
	}
	return &dErrors.AccessDeniedError{Name: name}
}

// Call invokes an invocable member with the uniform calling convention.
// Native functions and precompiled closures are called identically;
// argument counts are checked against the declared arity before any
// execution happens.
func (o *Object) Call(ctx context.Context, name string, args ...any) ([]any, error) {
	e, err := o.table.Resolve(name)
	if err != nil {
		return nil, &dErrors.UnknownMemberError{Class: o.table.Class(), Name: name}
	}

	switch e := e.(type) {
	case bindtab.NativeFuncEntry:
		return e.Adapter.Invoke(ctx, args)
	case bindtab.ClosureEntry:
		n, variadic := e.Closure.Arity()
		if variadic {
			if len(args) < n {
				return nil, &dErrors.ArityMismatchError{Member: name, Want: n, Got: len(args), Variadic: true}
			}
		} else if len(args) != n {
			return nil, &dErrors.ArityMismatchError{Member: name, Want: n, Got: len(args)}
		}
		return e.Closure.Invoke(ctx, args)
	case bindtab.VariableEntry, bindtab.ConstPointerEntry, bindtab.StructRefEntry:
		return nil, fmt.Errorf("class %s: member %q is not callable", o.table.Class(), name)
	default:
		return nil, fmt.Errorf("class %s: member %q has unknown kind", o.table.Class(), name)
	}
}

// BoundMember is an invocable member resolved from an instance. It
// carries the declared arity so engines can report it.
type BoundMember struct {
	name     string
	invoke   func(ctx context.Context, args []any) ([]any, error)
	arity    int
	variadic bool
}

// Name returns the canonical member name.
func (m *BoundMember) Name() string {
	return m.name
}

// Arity returns the declared parameter count and whether excess
// arguments are collected.
func (m *BoundMember) Arity() (int, bool) {
	return m.arity, m.variadic
}

// Invoke calls the member. Arity is enforced by the underlying entry.
func (m *BoundMember) Invoke(ctx context.Context, args []any) ([]any, error) {
	if m.variadic {
		if len(args) < m.arity {
			return nil, &dErrors.ArityMismatchError{Member: m.name, Want: m.arity, Got: len(args), Variadic: true}
		}
	} else if len(args) != m.arity {
		return nil, &dErrors.ArityMismatchError{Member: m.name, Want: m.arity, Got: len(args)}
	}
	return m.invoke(ctx, args)
}
