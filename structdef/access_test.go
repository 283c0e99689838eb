package structdef

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
	"github.com/embervm/bindsdk/memory"
)

func testDescriptor(t *testing.T) *Descriptor {
	t.Helper()
	d, err := NewDescriptor("runtime",
		Field{Name: "magic", Type: entities.U32, Access: entities.ReadOnly},
		Field{Name: "counter", Type: entities.I32, Access: entities.ReadWrite},
		Field{Name: "tiny", Type: entities.U8, Access: entities.ReadWrite},
		Field{Name: "signedTiny", Type: entities.I8, Access: entities.ReadWrite},
		Field{Name: "ratio", Type: entities.F64, Access: entities.ReadWrite},
		Field{Name: "enabled", Type: entities.Bool, Access: entities.ReadWrite},
		Field{Name: "next", Type: entities.Ptr32, Access: entities.ReadWrite},
	)
	require.NoError(t, err)
	return d
}

func TestDescriptor_WriteReadRoundTrip(t *testing.T) {
	d := testDescriptor(t)
	mem := memory.NewByteMemory(64)
	base := entities.Ptr(8)

	cases := []struct {
		field string
		value any
	}{
		{"counter", int64(-12345)},
		{"counter", int64(math.MaxInt32)},
		{"counter", int64(math.MinInt32)},
		{"tiny", int64(0)},
		{"tiny", int64(255)},
		{"signedTiny", int64(-128)},
		{"signedTiny", int64(127)},
		{"ratio", 3.5},
		{"ratio", -0.25},
		{"enabled", true},
		{"enabled", false},
		{"next", entities.Ptr(0x2000)},
	}
	for _, tc := range cases {
		require.NoError(t, d.Write(mem, base, tc.field, tc.value), tc.field)
		got, err := d.Read(mem, base, tc.field)
		require.NoError(t, err, tc.field)
		assert.Equal(t, tc.value, got, tc.field)
	}
}

func TestDescriptor_ReadOnlyField(t *testing.T) {
	d := testDescriptor(t)
	mem := memory.NewByteMemory(64)

	before := append([]byte(nil), mem...)
	err := d.Write(mem, 0, "magic", int64(7))

	var denied *dErrors.AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "magic", denied.Name)
	assert.Equal(t, before, []byte(mem), "denied write must leave memory unchanged")
}

func TestDescriptor_TypeMismatch(t *testing.T) {
	d := testDescriptor(t)
	mem := memory.NewByteMemory(64)

	cases := []struct {
		name  string
		field string
		value any
	}{
		{"float into int field", "counter", 1.5},
		{"int into float field", "ratio", int64(1)},
		{"bool into int field", "tiny", true},
		{"int into bool field", "enabled", int64(1)},
		{"int into ptr field", "next", int64(0x2000)},
		{"string into int field", "counter", "42"},
		{"u8 overflow", "tiny", int64(256)},
		{"u8 underflow", "tiny", int64(-1)},
		{"i8 overflow", "signedTiny", int64(128)},
		{"i32 overflow", "counter", int64(math.MaxInt32) + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := append([]byte(nil), mem...)
			err := d.Write(mem, 0, tc.field, tc.value)

			var mismatch *dErrors.TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tc.field, mismatch.Field)
			assert.Equal(t, before, []byte(mem))
		})
	}
}

func TestDescriptor_UnknownField(t *testing.T) {
	d := testDescriptor(t)
	mem := memory.NewByteMemory(64)

	_, err := d.Read(mem, 0, "missing")
	var unknown *dErrors.UnknownMemberError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)

	err = d.Write(mem, 0, "missing", int64(1))
	require.ErrorAs(t, err, &unknown)
}

func TestDescriptor_MemoryBounds(t *testing.T) {
	d := testDescriptor(t)
	// Too small for the struct at base 0: size is 23 bytes.
	mem := memory.NewByteMemory(4)

	_, err := d.Read(mem, 0, "ratio")
	var access *dErrors.MemoryAccessError
	require.ErrorAs(t, err, &access)

	err = d.Write(mem, 0, "ratio", 1.0)
	require.ErrorAs(t, err, &access)
}

func TestDescriptor_SignednessIsExact(t *testing.T) {
	d := testDescriptor(t)
	mem := memory.NewByteMemory(64)

	// 0xff written through the unsigned field reads back 255 there and
	// must not be confused with the signed interpretation.
	require.NoError(t, d.Write(mem, 0, "tiny", int64(255)))
	got, err := d.Read(mem, 0, "tiny")
	require.NoError(t, err)
	assert.Equal(t, int64(255), got)

	require.NoError(t, d.Write(mem, 0, "signedTiny", int64(-1)))
	got, err = d.Read(mem, 0, "signedTiny")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)
}
