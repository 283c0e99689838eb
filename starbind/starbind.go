// Package starbind exposes dynamic objects to Starlark scripts. It is
// the reference scripting frontend of the bridge: members resolve as
// attributes, invocable members surface as builtins, and structure
// references surface as attribute-bearing sub-values.
package starbind

import (
	"context"
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/object"
)

const contextLocal = "bindsdk.context"

// SetContext stores a context on the thread; builtins invoked from the
// script pass it to the native side.
func SetContext(thread *starlark.Thread, ctx context.Context) {
	thread.SetLocal(contextLocal, ctx)
}

func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextLocal).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// Instance adapts an object into a Starlark value with attributes.
type Instance struct {
	name string
	obj  *object.Object
}

var (
	_ starlark.Value       = (*Instance)(nil)
	_ starlark.HasAttrs    = (*Instance)(nil)
	_ starlark.HasSetField = (*Instance)(nil)
)

// Bind wraps an object instance for use as a Starlark global.
func Bind(name string, obj *object.Object) *Instance {
	return &Instance{name: name, obj: obj}
}

func (in *Instance) String() string {
	return fmt.Sprintf("<%s %s>", in.Type(), in.obj.Table().Class())
}

func (in *Instance) Type() string          { return "native_object" }
func (in *Instance) Freeze()               {}
func (in *Instance) Truth() starlark.Bool  { return starlark.True }
func (in *Instance) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", in.Type()) }

// Attr resolves a member read. Unknown members report "no such
// attribute" through Starlark's own protocol so scripts can catch it
// with hasattr.
func (in *Instance) Attr(name string) (starlark.Value, error) {
	v, err := in.obj.Get(name)
	if err != nil {
		var unknown *dErrors.UnknownMemberError
		if errors.As(err, &unknown) {
			return nil, nil
		}
		return nil, dErrors.ToErrorDetail(err)
	}

	switch v := v.(type) {
	case *object.BoundMember:
		return memberBuiltin(v), nil
	case *object.StructView:
		return &StructValue{name: name, view: v}, nil
	default:
		return ToStarlark(v)
	}
}

// AttrNames lists canonical member names; deprecated aliases are
// resolvable but not advertised.
func (in *Instance) AttrNames() []string {
	return in.obj.Table().Names()
}

// SetField writes a member. Binding errors surface as Starlark
// evaluation errors carrying the structured error type.
func (in *Instance) SetField(name string, val starlark.Value) error {
	v, err := FromStarlark(val)
	if err != nil {
		return err
	}
	if err := in.obj.Set(name, v); err != nil {
		return dErrors.ToErrorDetail(err)
	}
	return nil
}

func memberBuiltin(m *object.BoundMember) *starlark.Builtin {
	return starlark.NewBuiltin(m.Name(), func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		in := make([]any, len(args))
		for i, a := range args {
			v, err := FromStarlark(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", b.Name(), i, err)
			}
			in[i] = v
		}

		out, err := m.Invoke(threadContext(thread), in)
		if err != nil {
			return nil, dErrors.ToErrorDetail(err)
		}

		switch len(out) {
		case 0:
			return starlark.None, nil
		case 1:
			return ToStarlark(out[0])
		default:
			tuple := make(starlark.Tuple, len(out))
			for i, v := range out {
				sv, err := ToStarlark(v)
				if err != nil {
					return nil, err
				}
				tuple[i] = sv
			}
			return tuple, nil
		}
	})
}

// StructValue adapts a structure view into a Starlark value whose
// attributes are the described fields.
type StructValue struct {
	name string
	view *object.StructView
}

var (
	_ starlark.Value       = (*StructValue)(nil)
	_ starlark.HasAttrs    = (*StructValue)(nil)
	_ starlark.HasSetField = (*StructValue)(nil)
)

func (s *StructValue) String() string {
	return fmt.Sprintf("<%s %s>", s.Type(), s.view.Descriptor().Name())
}

func (s *StructValue) Type() string          { return "struct_view" }
func (s *StructValue) Freeze()               {}
func (s *StructValue) Truth() starlark.Bool  { return starlark.True }
func (s *StructValue) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", s.Type()) }

func (s *StructValue) Attr(name string) (starlark.Value, error) {
	v, err := s.view.Get(name)
	if err != nil {
		var unknown *dErrors.UnknownMemberError
		if errors.As(err, &unknown) {
			return nil, nil
		}
		return nil, dErrors.ToErrorDetail(err)
	}
	return ToStarlark(v)
}

func (s *StructValue) AttrNames() []string {
	return s.view.Descriptor().Names()
}

func (s *StructValue) SetField(name string, val starlark.Value) error {
	v, err := FromStarlark(val)
	if err != nil {
		return err
	}
	if err := s.view.Set(name, v); err != nil {
		return dErrors.ToErrorDetail(err)
	}
	return nil
}
