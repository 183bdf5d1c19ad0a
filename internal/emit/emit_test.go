package emit

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"fastreflect/primitive"
)

type point struct {
	X   int32
	Y   float64
	Tag string
	On  bool
}

var hits int64

func fieldOf(t *testing.T, name string) reflect.StructField {
	t.Helper()

	f, ok := reflect.TypeFor[point]().FieldByName(name)
	require.True(t, ok, name)

	return f
}

func instanceProgram(t *testing.T, name string) *Program {
	t.Helper()

	f := fieldOf(t, name)

	return NewInstance("Unit_"+name, reflect.TypeFor[point](), f.Name, f.Type, f.Offset)
}

func staticProgram() *Program {
	return NewStatic("Unit_hits", reflect.TypeFor[point](), "hits", reflect.TypeFor[int64](), unsafe.Pointer(&hits))
}

// fill emits every entry point; the ones named in live get their body from
// the callback, all others throw.
func fill(p *Program, live map[string]func(*MethodBuilder)) *Program {
	for _, kind := range []MethodKind{KindGetter, KindSetter} {
		for _, s := range primitive.Sorts {
			b := p.method(kind, s)
			if fn, ok := live[EntryName(kind, s)]; ok {
				fn(b)
			} else {
				b.Throw()
			}
		}
	}

	return p
}

func link(t *testing.T, p *Program) *Object {
	t.Helper()

	ctor, err := p.Link(nil)
	require.NoError(t, err)

	obj, err := ctor("ref")
	require.NoError(t, err)

	return obj.(*Object)
}
