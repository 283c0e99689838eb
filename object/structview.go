package object

import (
	"github.com/embervm/bindsdk/domain/entities"
	"github.com/embervm/bindsdk/memory"
	"github.com/embervm/bindsdk/structdef"
)

// StructView is the named-field view an instance exposes onto an opaque
// native struct: a descriptor, the struct's base address, and the
// instance's memory handle. Consumers address fields only by declared
// name and primitive type, never by raw offset.
type StructView struct {
	desc *structdef.Descriptor
	base entities.Ptr
	mem  memory.Memory
}

// Descriptor returns the layout the view resolves fields through.
func (v *StructView) Descriptor() *structdef.Descriptor {
	return v.desc
}

// Base returns the base address of the described struct instance.
func (v *StructView) Base() entities.Ptr {
	return v.base
}

// Get reads the named field.
func (v *StructView) Get(name string) (any, error) {
	return v.desc.Read(v.mem, v.base, name)
}

// Set writes the named field, honoring the declared access rights.
func (v *StructView) Set(name string, value any) error {
	return v.desc.Write(v.mem, v.base, name, value)
}
