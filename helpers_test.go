package bindsdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/internal/testutil"
)

func TestGetString(t *testing.T) {
	args := Args{"hello", int64(1)}

	s, ok := GetString(args, 0)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	_, ok = GetString(args, 1)
	assert.False(t, ok)

	_, ok = GetString(args, 5)
	assert.False(t, ok)

	_, ok = GetString(args, -1)
	assert.False(t, ok)
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name string
		arg  any
		want int64
		ok   bool
	}{
		{"int64", int64(42), 42, true},
		{"int", 7, 7, true},
		{"integral float", 3.0, 3, true},
		{"fractional float", 3.5, 0, false},
		{"string", "42", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := GetInt(Args{tt.arg}, 0)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestGetFloat(t *testing.T) {
	f, ok := GetFloat(Args{1.5}, 0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	f, ok = GetFloat(Args{int64(2)}, 0)
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)

	_, ok = GetFloat(Args{"2"}, 0)
	assert.False(t, ok)
}

func TestGetBool(t *testing.T) {
	b, ok := GetBool(Args{true}, 0)
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = GetBool(Args{int64(1)}, 0)
	assert.False(t, ok)
}

func TestGetBytes(t *testing.T) {
	raw, ok := GetBytes(Args{[]byte{1, 2}}, 0)
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2}, raw)

	raw, ok = GetBytes(Args{"ab"}, 0)
	assert.True(t, ok)
	assert.Equal(t, []byte("ab"), raw)

	_, ok = GetBytes(Args{int64(0)}, 0)
	assert.False(t, ok)
}

func TestGetPtr(t *testing.T) {
	p, ok := GetPtr(Args{entities.Ptr(0x10)}, 0)
	assert.True(t, ok)
	assert.Equal(t, entities.Ptr(0x10), p)

	// Addresses never masquerade as plain integers.
	_, ok = GetPtr(Args{int64(0x10)}, 0)
	assert.False(t, ok)
}

func TestGetStringSlice(t *testing.T) {
	out, ok := GetStringSlice(Args{[]any{"a", "b"}}, 0)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, out)

	_, ok = GetStringSlice(Args{[]any{"a", int64(1)}}, 0)
	assert.False(t, ok)

	_, ok = GetStringSlice(Args{"a"}, 0)
	assert.False(t, ok)
}

func TestMustGetters(t *testing.T) {
	args := Args{"host", int64(8080)}

	s, err := MustGetString("connect", args, 0)
	require.NoError(t, err)
	assert.Equal(t, "host", s)

	_, err = MustGetInt("connect", args, 0)
	var conv *dErrors.ConversionError
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, "connect", conv.Member)
	assert.Equal(t, 0, conv.Index)
	testutil.RequireErrorType(t, err, "conversion")
	testutil.RequireErrorCode(t, err, "connect")

	_, err = MustGetBool("connect", args, 2)
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, 2, conv.Index)

	_, err = MustGetPtr("connect", args, 1)
	testutil.RequireErrorType(t, err, "conversion")
}

func TestDefaults(t *testing.T) {
	args := Args{"x"}

	assert.Equal(t, "x", GetStringDefault(args, 0, "y"))
	assert.Equal(t, "y", GetStringDefault(args, 1, "y"))
	assert.Equal(t, int64(9), GetIntDefault(args, 0, 9))
	assert.True(t, GetBoolDefault(args, 3, true))
}

func TestToErrorDetail(t *testing.T) {
	detail := ToErrorDetail(&dErrors.AccessDeniedError{Name: "flags"})
	require.NotNil(t, detail)
	assert.Equal(t, "access_denied", detail.Type)

	assert.Nil(t, ToErrorDetail(nil))
}
