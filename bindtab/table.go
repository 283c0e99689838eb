// Package bindtab compiles ordered binding declarations into an
// immutable, name-indexed table of exposed capabilities, one per
// exposed class. Once created via New, entries cannot be added or
// removed, which keeps lookups lock-free for the table's lifetime.
package bindtab

import (
	"github.com/embervm/bindsdk/call"
	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/structdef"
)

// Entry is one named capability of a class. It is a closed sum over the
// five declaration kinds; dispatch sites type-switch over the concrete
// entry types exhaustively.
type Entry interface {
	// Kind returns the declaration kind tag of the entry.
	Kind() entities.Kind

	sealed()
}

// VariableEntry declares a per-instance mutable slot. The shared table
// only records the slot's defined default; the value itself lives in
// each instance.
type VariableEntry struct {
	Default any
}

func (VariableEntry) Kind() entities.Kind { return entities.KindVariable }
func (VariableEntry) sealed()             {}

// ConstPointerEntry exposes the fixed, non-null address of native
// global state, read-only for the table's lifetime.
type ConstPointerEntry struct {
	Addr entities.Ptr
}

func (ConstPointerEntry) Kind() entities.Kind { return entities.KindConstPointer }
func (ConstPointerEntry) sealed()             {}

// NativeFuncEntry exposes a native function through the call adapter,
// with arity declared by the adapter.
type NativeFuncEntry struct {
	Adapter call.Adapter
}

func (NativeFuncEntry) Kind() entities.Kind { return entities.KindNativeFunc }
func (NativeFuncEntry) sealed()             {}

// ClosureEntry exposes a precompiled closure. It is invoked through the
// same call path as a native function; execution errors propagate as
// the owning engine's own error signal.
type ClosureEntry struct {
	Closure call.Closure
}

func (ClosureEntry) Kind() entities.Kind { return entities.KindClosure }
func (ClosureEntry) sealed()             {}

// StructRefEntry pairs a structure descriptor with the base address of
// the struct instance it describes.
type StructRefEntry struct {
	Descriptor *structdef.Descriptor
	Base       entities.Ptr
}

func (StructRefEntry) Kind() entities.Kind { return entities.KindStructRef }
func (StructRefEntry) sealed()             {}

// Table is the immutable, name-indexed capability collection of one
// exposed class, shared by every instance of that class. It is safe for
// concurrent readers.
type Table struct {
	class   string
	entries map[string]Entry
	order   []string
	aliases map[string]string
}

// Class returns the exposed class name the table was built for.
func (t *Table) Class() string {
	return t.class
}

// Resolve returns the entry registered under name. Deprecated aliases
// resolve to their canonical entry. A lookup miss fails with
// UnknownMember.
func (t *Table) Resolve(name string) (Entry, error) {
	e, ok := t.entries[t.Canonical(name)]
	if !ok {
		return nil, &dErrors.UnknownMemberError{Class: t.class, Name: name}
	}
	return e, nil
}

// Has reports whether name resolves to an entry, through an alias or
// directly.
func (t *Table) Has(name string) bool {
	_, ok := t.entries[t.Canonical(name)]
	return ok
}

// Canonical maps a deprecated alias to its target name; any other name
// is returned unchanged.
func (t *Table) Canonical(name string) string {
	if target, ok := t.aliases[name]; ok {
		return target
	}
	return name
}

// Names returns the canonical entry names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Aliases returns a copy of the alias mapping.
func (t *Table) Aliases() map[string]string {
	out := make(map[string]string, len(t.aliases))
	for alias, target := range t.aliases {
		out[alias] = target
	}
	return out
}

// VariableDefaults returns the defined default of every variable-kind
// entry. Instances copy these into their private slots at creation.
func (t *Table) VariableDefaults() map[string]any {
	out := make(map[string]any)
	for name, e := range t.entries {
		if v, ok := e.(VariableEntry); ok {
			out[name] = v.Default
		}
	}
	return out
}
