// Package structdef describes the named-field layout of opaque native
// memory blocks and provides the only supported way to access their
// fields: by declared name and primitive type, never by raw offset.
package structdef

import (
	"fmt"

	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
)

// Field declares one named field of a structure. Offsets are implied by
// declaration order and field widths, matching the native layout
// exactly; the descriptor author is responsible for any padding the
// native compiler inserts (declare it as an explicit field).
type Field struct {
	Name   string
	Type   entities.FieldType
	Access entities.Access
}

type fieldSlot struct {
	Field
	offset uint32
}

// Descriptor is an immutable, ordered sequence of named fields laid
// over an opaque native memory block. It is built once and shared; it
// is safe for concurrent readers.
type Descriptor struct {
	name   string
	fields []fieldSlot
	index  map[string]int
	size   uint32
}

// NewDescriptor builds a descriptor from fields in declaration order.
// It fails with a DuplicateNameError on repeated field names and
// rejects empty names and unknown type tags.
func NewDescriptor(name string, fields ...Field) (*Descriptor, error) {
	d := &Descriptor{
		name:   name,
		fields: make([]fieldSlot, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("descriptor %s: field name cannot be empty", name)
		}
		if f.Type.Width() == 0 {
			return nil, fmt.Errorf("descriptor %s: field %q has unknown type tag", name, f.Name)
		}
		if _, exists := d.index[f.Name]; exists {
			return nil, &dErrors.DuplicateNameError{Scope: "descriptor " + name, Name: f.Name}
		}
		d.index[f.Name] = len(d.fields)
		d.fields = append(d.fields, fieldSlot{Field: f, offset: d.size})
		d.size += f.Type.Width()
	}
	return d, nil
}

// MustDescriptor builds a descriptor or panics. Intended for
// process-start registration where a malformed layout is fatal.
func MustDescriptor(name string, fields ...Field) *Descriptor {
	d, err := NewDescriptor(name, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the descriptor's name.
func (d *Descriptor) Name() string {
	return d.name
}

// Size returns the total byte size of the described structure.
func (d *Descriptor) Size() uint32 {
	return d.size
}

// NumFields returns the number of declared fields.
func (d *Descriptor) NumFields() int {
	return len(d.fields)
}

// Names returns the field names in declaration order.
func (d *Descriptor) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// FieldInfo returns the declaration and implied offset of a field.
func (d *Descriptor) FieldInfo(name string) (f Field, offset uint32, ok bool) {
	i, ok := d.index[name]
	if !ok {
		return Field{}, 0, false
	}
	return d.fields[i].Field, d.fields[i].offset, true
}

func (d *Descriptor) slot(name string) (fieldSlot, error) {
	i, ok := d.index[name]
	if !ok {
		return fieldSlot{}, &dErrors.UnknownMemberError{Class: "descriptor " + d.name, Name: name}
	}
	return d.fields[i], nil
}
