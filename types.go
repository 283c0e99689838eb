// Package bindsdk is the root of the native binding bridge: it exposes
// host capabilities (variables, constant pointers, native functions,
// precompiled closures, structure references) to an embedded scripting
// engine through immutable per-class binding tables.
//
// The root package carries the shared public surface; the work happens
// in the subpackages: bindtab builds tables, object runs instances,
// structdef describes native structs, call adapts native functions,
// closure loads precompiled artifacts, manifest loads declarative
// bindings, starbind adapts objects to Starlark.
package bindsdk

import (
	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
)

// Args is the argument list of a uniform call, in canonical script
// form: nil, bool, int64, float64, string, []byte, entities.Ptr or
// []any per element.
type Args []any

// ErrorDetail is re-exported from domain/entities; it is the
// script-surfaceable form of every binding-layer failure.
type ErrorDetail = entities.ErrorDetail

// Ptr is re-exported from domain/entities: an address in the bound
// memory handle.
type Ptr = entities.Ptr

// ToErrorDetail converts any error into its structured form. Typed
// binding errors keep their category; everything else becomes
// "internal".
func ToErrorDetail(err error) *ErrorDetail {
	return dErrors.ToErrorDetail(err)
}

// Version of the SDK.
const Version = "0.1.0"
