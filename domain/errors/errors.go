// Package errors provides domain-specific error types for the binding
// bridge. All error types support unwrapping via errors.As() and
// errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/embervm/bindsdk/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for error types that can convert
// themselves to a structured ErrorDetail. Engine adapters rely on it to
// raise binding failures as script-level errors.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
// Errors that don't carry their own detail are categorized as internal.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// DuplicateNameError is a construction-time failure: two declaration
// rows (or two fields of one descriptor) share a name.
type DuplicateNameError struct {
	// Scope names the table or descriptor being built.
	Scope string
	Name  string
}

func (e *DuplicateNameError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("duplicate name %q in %s", e.Name, e.Scope)
	}
	return fmt.Sprintf("duplicate name %q", e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *DuplicateNameError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "duplicate_name", Code: e.Name}
}

// UnknownMemberError is a runtime lookup miss: the name is declared
// neither as an instance variable nor in the shared table.
type UnknownMemberError struct {
	Class string
	Name  string
}

func (e *UnknownMemberError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("unknown member %q on %s", e.Name, e.Class)
	}
	return fmt.Sprintf("unknown member %q", e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *UnknownMemberError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "unknown_member", Code: e.Name}
}

// TypeMismatchError reports a field access with the wrong primitive
// kind, or an integer value outside the field's representable range.
// The access is rejected before any memory is touched.
type TypeMismatchError struct {
	Field string
	Want  entities.FieldType
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q expects %s, got %s", e.Field, e.Want, e.Got)
}

// ToErrorDetail implements DetailedError.
func (e *TypeMismatchError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "type_mismatch", Code: e.Field}
}

// AccessDeniedError reports a write to a member that does not accept
// writes: a read-only field, or a non-variable table entry.
type AccessDeniedError struct {
	Name string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%q is read-only", e.Name)
}

// ToErrorDetail implements DetailedError.
func (e *AccessDeniedError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "access_denied", Code: e.Name}
}

// ArityMismatchError reports a call whose argument count does not match
// the callee's declared arity. For variadic callees Want is the minimum
// number of fixed arguments.
type ArityMismatchError struct {
	Member   string
	Want     int
	Got      int
	Variadic bool
}

func (e *ArityMismatchError) Error() string {
	if e.Variadic {
		return fmt.Sprintf("%s expects at least %d arguments, got %d", e.Member, e.Want, e.Got)
	}
	return fmt.Sprintf("%s expects %d arguments, got %d", e.Member, e.Want, e.Got)
}

// ToErrorDetail implements DetailedError.
func (e *ArityMismatchError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "arity_mismatch", Code: e.Member}
}

// ConversionError reports an argument that cannot be translated to the
// native parameter type it is bound to.
type ConversionError struct {
	Err    error
	Member string
	Index  int
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: argument %d: %v", e.Member, e.Index, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConversionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "conversion", Code: e.Member}
}

// MemoryAccessError reports a read or write that the memory handle
// rejected. It is raised before any partial write happens.
type MemoryAccessError struct {
	Offset uint32
	Count  uint32
}

func (e *MemoryAccessError) Error() string {
	return fmt.Sprintf("memory access out of range: offset %#x, %d bytes", e.Offset, e.Count)
}

// ToErrorDetail implements DetailedError.
func (e *MemoryAccessError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "memory", Code: fmt.Sprintf("%#x", e.Offset)}
}
