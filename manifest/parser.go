package manifest

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton; constructing a validator per
// call is expensive and the instance is safe for concurrent use.
var validate = validator.New()

// Parse unmarshals a YAML binding manifest and validates its shape.
// It does not resolve symbols or check cross-references between rows;
// that happens in Build.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse binding manifest: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("binding manifest is invalid: %w", err)
	}
	return &doc, nil
}
