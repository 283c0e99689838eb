// Package manifest loads declarative YAML binding manifests and
// compiles them into binding tables. A manifest is the textual form of
// a class declaration: its member rows, struct layouts, and deprecated
// aliases, in the order the table should carry them.
package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Document is the root of a binding manifest.
type Document struct {
	Class       string       `json:"class" yaml:"class" validate:"required"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Structs     []StructDecl `json:"structs,omitempty" yaml:"structs,omitempty" validate:"omitempty,dive"`
	Members     []MemberDecl `json:"members" yaml:"members" validate:"required,min=1,dive"`
	Aliases     []AliasDecl  `json:"aliases,omitempty" yaml:"aliases,omitempty" validate:"omitempty,dive"`
}

// StructDecl declares a named structure layout usable by
// structure-reference members of the same document.
type StructDecl struct {
	Name   string      `json:"name" yaml:"name" validate:"required"`
	Fields []FieldDecl `json:"fields" yaml:"fields" validate:"required,min=1,dive"`
}

// FieldDecl declares one structure field. Access defaults to "rw".
type FieldDecl struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Type   string `json:"type" yaml:"type" validate:"required,oneof=u8 i8 u16 i16 u32 i32 u64 i64 f32 f64 bool ptr32"`
	Access string `json:"access,omitempty" yaml:"access,omitempty" validate:"omitempty,oneof=ro rw"`
}

// MemberDecl declares one row of the binding table. Which payload
// fields apply depends on the kind: variables carry a default,
// constant pointers an address, functions and closures a symbol,
// structure references a struct name and base address.
type MemberDecl struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	Kind    string `json:"kind" yaml:"kind" validate:"required,oneof=variable constant-pointer native-function precompiled-closure structure-reference"`
	Default any    `json:"default,omitempty" yaml:"default,omitempty"`
	Address uint32 `json:"address,omitempty" yaml:"address,omitempty"`
	Symbol  string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Struct  string `json:"struct,omitempty" yaml:"struct,omitempty"`
	Base    uint32 `json:"base,omitempty" yaml:"base,omitempty"`
}

// AliasDecl declares a deprecated spelling for another member.
type AliasDecl struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	For  string `json:"for" yaml:"for" validate:"required"`
}

// Schema generates the JSON Schema (Draft 2020-12) of the binding
// manifest format, suitable for editor tooling and CI validation of
// manifest files.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&Document{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}
