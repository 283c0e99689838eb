package starbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/embervm/bindsdk/bindtab"
	"github.com/embervm/bindsdk/domain/entities"
	"github.com/embervm/bindsdk/memory"
	"github.com/embervm/bindsdk/object"
	"github.com/embervm/bindsdk/structdef"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

func testDevice(t *testing.T) *object.Object {
	t.Helper()

	settings := structdef.MustDescriptor("settings",
		structdef.Field{Name: "version", Type: entities.U32, Access: entities.ReadOnly},
		structdef.Field{Name: "level", Type: entities.I16, Access: entities.ReadWrite},
	)

	mem := memory.NewByteMemory(256)

	table := bindtab.MustNew("Device",
		bindtab.WithVariable("counter", int64(0)),
		bindtab.WithConstPointer("settings_addr", 0x40),
		bindtab.WithFunc("add", func(a, b int64) int64 { return a + b }),
		bindtab.WithFunc("sum", func(ns ...int64) int64 {
			var total int64
			for _, n := range ns {
				total += n
			}
			return total
		}),
		bindtab.WithStructRef("settings", settings, 1),
		bindtab.WithAlias("get_sum", "sum"),
	)
	return object.New(table, object.WithMemory(mem))
}

func exec(t *testing.T, obj *object.Object, src string) (starlark.StringDict, error) {
	t.Helper()
	thread := &starlark.Thread{Name: "test"}
	return starlark.ExecFileOptions(fileOptions, thread, "test.star", src,
		starlark.StringDict{"device": Bind("device", obj)})
}

func TestScript_EndToEnd(t *testing.T) {
	obj := testDevice(t)

	globals, err := exec(t, obj, `
device.counter = device.counter + 5
total = device.add(2, 40)
everything = device.sum(1, 2, 3, 4)
legacy = device.get_sum(10)
addr = device.settings_addr
device.settings.level = 3
level = device.settings.level
`)
	require.NoError(t, err)

	assert.Equal(t, starlark.MakeInt(42), globals["total"])
	assert.Equal(t, starlark.MakeInt(10), globals["everything"])
	assert.Equal(t, starlark.MakeInt(10), globals["legacy"])
	assert.Equal(t, starlark.MakeInt(0x40), globals["addr"])
	assert.Equal(t, starlark.MakeInt(3), globals["level"])

	// Script-side mutation landed in the instance slot.
	v, err := obj.Get("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestScript_StructFieldWrite_HitsMemory(t *testing.T) {
	obj := testDevice(t)

	_, err := exec(t, obj, `device.settings.level = -7`)
	require.NoError(t, err)

	view, err := obj.Get("settings")
	require.NoError(t, err)
	got, err := view.(*object.StructView).Get("level")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), got)
}

func TestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"write to const", `device.settings_addr = 1`, "access_denied"},
		{"write to func", `device.add = 1`, "access_denied"},
		{"arity mismatch", `device.add(1)`, "arity_mismatch"},
		{"conversion failure", `device.add(1, "two")`, "conversion"},
		{"read-only field", `device.settings.version = 2`, "access_denied"},
		{"field type mismatch", `device.settings.level = 1.5`, "type_mismatch"},
		{"field range", `device.settings.level = 40000`, "type_mismatch"},
		{"unknown member", `device.missing()`, "no .missing field or method"},
		{"unknown field", `device.settings.missing`, "no .missing field or method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, testDevice(t), tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScript_HasattrSeesMembers(t *testing.T) {
	globals, err := exec(t, testDevice(t), `
known = hasattr(device, "counter")
aliased = hasattr(device, "get_sum")
unknown = hasattr(device, "missing")
names = dir(device)
`)
	require.NoError(t, err)

	assert.Equal(t, starlark.True, globals["known"])
	assert.Equal(t, starlark.True, globals["aliased"])
	assert.Equal(t, starlark.False, globals["unknown"])
	names := globals["names"].(*starlark.List)
	assert.Equal(t, 5, names.Len())
}

func TestConvert_RoundTrip(t *testing.T) {
	for _, v := range []any{nil, true, int64(-9), 1.5, "hi", []byte("raw"), []any{int64(1), "x"}} {
		sv, err := ToStarlark(v)
		require.NoError(t, err)
		back, err := FromStarlark(sv)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}

	sv, err := ToStarlark(entities.Ptr(0x1000))
	require.NoError(t, err)
	back, err := FromStarlark(sv)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1000), back)
}

func TestConvert_Unsupported(t *testing.T) {
	_, err := ToStarlark(struct{}{})
	require.Error(t, err)

	_, err = FromStarlark(starlark.NewDict(0))
	require.Error(t, err)
}
