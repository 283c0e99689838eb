package bindsdk

import (
	"fmt"

	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
)

// Argument accessors for raw native functions. Adapted functions get
// typed parameters for free; functions with the raw uniform shape use
// these to pick arguments out of the canonical list.

// GetString safely extracts a string argument.
// Returns the value and true if present and a string, otherwise "" and false.
func GetString(args Args, i int) (string, bool) {
	if i < 0 || i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

// GetInt safely extracts an integer argument.
// Canonical integers are int64; int and integral float64 are accepted
// for values produced outside the conversion layer.
func GetInt(args Args, i int) (int64, bool) {
	if i < 0 || i >= len(args) {
		return 0, false
	}
	switch n := args[i].(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

// GetFloat safely extracts a float argument. Integer arguments widen.
func GetFloat(args Args, i int) (float64, bool) {
	if i < 0 || i >= len(args) {
		return 0, false
	}
	switch n := args[i].(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// GetBool safely extracts a bool argument.
func GetBool(args Args, i int) (bool, bool) {
	if i < 0 || i >= len(args) {
		return false, false
	}
	b, ok := args[i].(bool)
	return b, ok
}

// GetBytes safely extracts a byte slice argument. Strings convert.
func GetBytes(args Args, i int) ([]byte, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	switch v := args[i].(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	}
	return nil, false
}

// GetPtr safely extracts an address argument.
func GetPtr(args Args, i int) (entities.Ptr, bool) {
	if i < 0 || i >= len(args) {
		return 0, false
	}
	p, ok := args[i].(entities.Ptr)
	return p, ok
}

// GetList safely extracts a list argument.
func GetList(args Args, i int) ([]any, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	l, ok := args[i].([]any)
	return l, ok
}

// GetStringSlice safely extracts a list argument whose elements are
// all strings.
func GetStringSlice(args Args, i int) ([]string, bool) {
	l, ok := GetList(args, i)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// MustGetString extracts a string argument or fails with a conversion
// error carrying the member name and argument index.
func MustGetString(member string, args Args, i int) (string, error) {
	s, ok := GetString(args, i)
	if !ok {
		return "", argError(member, args, i, "string")
	}
	return s, nil
}

// MustGetInt extracts an integer argument or fails with a conversion
// error.
func MustGetInt(member string, args Args, i int) (int64, error) {
	n, ok := GetInt(args, i)
	if !ok {
		return 0, argError(member, args, i, "integer")
	}
	return n, nil
}

// MustGetBool extracts a bool argument or fails with a conversion
// error.
func MustGetBool(member string, args Args, i int) (bool, error) {
	b, ok := GetBool(args, i)
	if !ok {
		return false, argError(member, args, i, "bool")
	}
	return b, nil
}

// MustGetPtr extracts an address argument or fails with a conversion
// error.
func MustGetPtr(member string, args Args, i int) (entities.Ptr, error) {
	p, ok := GetPtr(args, i)
	if !ok {
		return 0, argError(member, args, i, "pointer")
	}
	return p, nil
}

func argError(member string, args Args, i int, want string) error {
	var got any
	if i >= 0 && i < len(args) {
		got = args[i]
	}
	return &dErrors.ConversionError{
		Member: member,
		Index:  i,
		Err:    fmt.Errorf("expected %s, got %T", want, got),
	}
}

// GetStringDefault extracts a string argument with a fallback, for
// optional trailing arguments.
func GetStringDefault(args Args, i int, def string) string {
	s, ok := GetString(args, i)
	if !ok {
		return def
	}
	return s
}

// GetIntDefault extracts an integer argument with a fallback.
func GetIntDefault(args Args, i int, def int64) int64 {
	n, ok := GetInt(args, i)
	if !ok {
		return def
	}
	return n
}

// GetBoolDefault extracts a bool argument with a fallback.
func GetBoolDefault(args Args, i int, def bool) bool {
	b, ok := GetBool(args, i)
	if !ok {
		return def
	}
	return b
}
