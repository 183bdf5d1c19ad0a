package accessor

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type base struct {
	ID   int16
	Note string
}

type derived struct {
	Tag string
	base
}

type viaPointer struct {
	Flag bool
	*base
}

func TestFieldOf_Promoted(t *testing.T) {
	f, err := FieldFor[derived]("ID")
	require.NoError(t, err)

	want := unsafe.Offsetof(derived{}.base) + unsafe.Offsetof(base{}.ID)
	assert.Equal(t, want, f.Offset())
	assert.Equal(t, reflect.TypeFor[derived](), f.Owner())

	acc, err := Create(f)
	require.NoError(t, err)

	d := &derived{Tag: "t", base: base{ID: 12, Note: "n"}}
	v, err := acc.GetInt16(d)
	require.NoError(t, err)
	assert.Equal(t, int16(12), v)

	require.NoError(t, acc.SetInt8(d, -1))
	assert.Equal(t, int16(-1), d.ID)
	assert.Equal(t, "t", d.Tag)
	assert.Equal(t, "n", d.Note)
}

func TestFieldOf_PointerOwner(t *testing.T) {
	f, err := FieldOf(reflect.TypeFor[*Box](), "count")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[Box](), f.Owner())
}

func TestFieldOf_Errors(t *testing.T) {
	tests := []struct {
		name  string
		owner reflect.Type
		field string
	}{
		{"nil owner", nil, "count"},
		{"not a struct", reflect.TypeFor[int](), "count"},
		{"pointer to pointer", reflect.TypeFor[**Box](), "count"},
		{"missing field", reflect.TypeFor[Box](), "size"},
		{"promoted through pointer", reflect.TypeFor[viaPointer](), "ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FieldOf(tt.owner, tt.field)
			require.ErrorIs(t, err, ErrIllegalArgument)
			assert.Nil(t, f)
		})
	}
}

func TestStaticOf_Errors(t *testing.T) {
	var n int32

	tests := []struct {
		name  string
		owner reflect.Type
		field string
		ptr   any
	}{
		{"not a pointer", reflect.TypeFor[Box](), "n", n},
		{"nil pointer", reflect.TypeFor[Box](), "n", (*int32)(nil)},
		{"nil", reflect.TypeFor[Box](), "n", nil},
		{"no name", reflect.TypeFor[Box](), "", &n},
		{"owner not a struct", reflect.TypeFor[string](), "n", &n},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StaticOf(tt.owner, tt.field, tt.ptr)
			require.ErrorIs(t, err, ErrIllegalArgument)
		})
	}
}

func TestField_String(t *testing.T) {
	var n float32

	f, err := FieldFor[Box]("count")
	require.NoError(t, err)
	assert.Equal(t, "field accessor.Box.count int32", f.String())

	s, err := StaticOf(reflect.TypeFor[Box](), "total", &n)
	require.NoError(t, err)
	assert.Equal(t, "static accessor.Box.total float32", s.String())
	assert.Zero(t, s.Offset())
}

func TestInScope_Nil(t *testing.T) {
	f, err := FieldFor[Box]("count", InScope(nil))
	require.NoError(t, err)
	assert.NotNil(t, f.Scope())
}
