package manifest

import (
	"fmt"

	"github.com/embervm/bindsdk/bindtab"
	"github.com/embervm/bindsdk/call"
	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/structdef"
)

// registry holds the native symbols a document's rows resolve against.
type registry struct {
	funcs       map[string]any
	closures    map[string]call.Closure
	descriptors map[string]*structdef.Descriptor
	tableOpts   []bindtab.Option
}

// BuildOption supplies symbols or table options to Build.
type BuildOption func(*registry)

// WithFuncSymbol registers a Go function under a symbol name. Rows of
// kind native-function resolve their symbol against this set.
func WithFuncSymbol(name string, fn any) BuildOption {
	return func(r *registry) {
		r.funcs[name] = fn
	}
}

// WithClosureSymbol registers a loaded closure under a symbol name.
// Rows of kind precompiled-closure resolve their symbol against this
// set.
func WithClosureSymbol(name string, c call.Closure) BuildOption {
	return func(r *registry) {
		r.closures[name] = c
	}
}

// WithDescriptor registers a prebuilt structure descriptor under its
// own name, in addition to any structs the document declares inline.
func WithDescriptor(d *structdef.Descriptor) BuildOption {
	return func(r *registry) {
		r.descriptors[d.Name()] = d
	}
}

// WithTableOptions forwards extra options, middleware in particular,
// to the underlying table builder.
func WithTableOptions(opts ...bindtab.Option) BuildOption {
	return func(r *registry) {
		r.tableOpts = append(r.tableOpts, opts...)
	}
}

// Build compiles a parsed document into a binding table, resolving
// function and closure symbols against the registered set. Any
// unresolvable symbol, unknown struct name, or malformed row fails the
// whole build; a failed build produces no table.
func Build(doc *Document, opts ...BuildOption) (*bindtab.Table, error) {
	reg := &registry{
		funcs:       make(map[string]any),
		closures:    make(map[string]call.Closure),
		descriptors: make(map[string]*structdef.Descriptor),
	}
	for _, opt := range opts {
		opt(reg)
	}

	descs := make(map[string]*structdef.Descriptor, len(reg.descriptors)+len(doc.Structs))
	for name, d := range reg.descriptors {
		descs[name] = d
	}
	for _, sd := range doc.Structs {
		if _, exists := descs[sd.Name]; exists {
			return nil, &dErrors.DuplicateNameError{Scope: "struct declarations", Name: sd.Name}
		}
		d, err := compileStruct(sd)
		if err != nil {
			return nil, err
		}
		descs[sd.Name] = d
	}

	rows := append([]bindtab.Option(nil), reg.tableOpts...)
	for _, m := range doc.Members {
		opt, err := compileMember(doc.Class, m, reg, descs)
		if err != nil {
			return nil, err
		}
		rows = append(rows, opt)
	}
	for _, a := range doc.Aliases {
		rows = append(rows, bindtab.WithAlias(a.Name, a.For))
	}

	return bindtab.New(doc.Class, rows...)
}

// Load parses and builds in one step.
func Load(data []byte, opts ...BuildOption) (*bindtab.Table, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

func compileStruct(sd StructDecl) (*structdef.Descriptor, error) {
	fields := make([]structdef.Field, 0, len(sd.Fields))
	for _, fd := range sd.Fields {
		t, ok := entities.ParseFieldType(fd.Type)
		if !ok {
			return nil, fmt.Errorf("struct %s: field %q has unknown type %q", sd.Name, fd.Name, fd.Type)
		}
		access := entities.ReadWrite
		if fd.Access == "ro" {
			access = entities.ReadOnly
		}
		fields = append(fields, structdef.Field{Name: fd.Name, Type: t, Access: access})
	}
	return structdef.NewDescriptor(sd.Name, fields...)
}

func compileMember(class string, m MemberDecl, reg *registry, descs map[string]*structdef.Descriptor) (bindtab.Option, error) {
	switch m.Kind {
	case entities.KindVariable.String():
		// YAML hands integers over as int; fold defaults into their
		// canonical script form before they seed instance slots.
		return bindtab.WithVariable(m.Name, call.Normalize(m.Default)), nil

	case entities.KindConstPointer.String():
		return bindtab.WithConstPointer(m.Name, entities.Ptr(m.Address)), nil

	case entities.KindNativeFunc.String():
		sym := symbolOf(m)
		fn, ok := reg.funcs[sym]
		if !ok {
			return nil, fmt.Errorf("class %s: member %q: no function registered for symbol %q", class, m.Name, sym)
		}
		return bindtab.WithFunc(m.Name, fn), nil

	case entities.KindClosure.String():
		sym := symbolOf(m)
		c, ok := reg.closures[sym]
		if !ok {
			return nil, fmt.Errorf("class %s: member %q: no closure registered for symbol %q", class, m.Name, sym)
		}
		return bindtab.WithClosure(m.Name, c), nil

	case entities.KindStructRef.String():
		if m.Struct == "" {
			return nil, fmt.Errorf("class %s: member %q: structure reference names no struct", class, m.Name)
		}
		d, ok := descs[m.Struct]
		if !ok {
			return nil, fmt.Errorf("class %s: member %q: unknown struct %q", class, m.Name, m.Struct)
		}
		return bindtab.WithStructRef(m.Name, d, entities.Ptr(m.Base)), nil

	default:
		return nil, fmt.Errorf("class %s: member %q has unknown kind %q", class, m.Name, m.Kind)
	}
}

func symbolOf(m MemberDecl) string {
	if m.Symbol != "" {
		return m.Symbol
	}
	return m.Name
}
