package structdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervm/bindsdk/domain/entities"
	dErrors "github.com/embervm/bindsdk/domain/errors"
)

func TestNewDescriptor_Offsets(t *testing.T) {
	d, err := NewDescriptor("settings",
		Field{Name: "version", Type: entities.U32, Access: entities.ReadOnly},
		Field{Name: "flag", Type: entities.Bool, Access: entities.ReadWrite},
		Field{Name: "level", Type: entities.I16, Access: entities.ReadWrite},
		Field{Name: "scale", Type: entities.F32, Access: entities.ReadWrite},
	)
	require.NoError(t, err)

	assert.Equal(t, "settings", d.Name())
	assert.Equal(t, uint32(11), d.Size())
	assert.Equal(t, []string{"version", "flag", "level", "scale"}, d.Names())

	wantOffsets := map[string]uint32{"version": 0, "flag": 4, "level": 5, "scale": 7}
	for name, want := range wantOffsets {
		_, off, ok := d.FieldInfo(name)
		require.True(t, ok, name)
		assert.Equal(t, want, off, name)
	}
}

func TestNewDescriptor_DuplicateName(t *testing.T) {
	_, err := NewDescriptor("dup",
		Field{Name: "x", Type: entities.U8, Access: entities.ReadWrite},
		Field{Name: "x", Type: entities.U16, Access: entities.ReadWrite},
	)
	require.Error(t, err)

	var dupErr *dErrors.DuplicateNameError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "x", dupErr.Name)
}

func TestNewDescriptor_EmptyName(t *testing.T) {
	_, err := NewDescriptor("bad", Field{Name: "", Type: entities.U8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestMustDescriptor_PanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		MustDescriptor("dup",
			Field{Name: "a", Type: entities.U8},
			Field{Name: "a", Type: entities.U8},
		)
	})
}
