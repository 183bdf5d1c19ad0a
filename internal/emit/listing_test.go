package emit

import (
	"encoding/json"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fastreflect/primitive"
)

func sampleProgram(t *testing.T) *Program {
	t.Helper()

	return fill(instanceProgram(t, "X"), map[string]func(*MethodBuilder){
		"GetInt8": func(b *MethodBuilder) {
			b.LoadReceiver().CheckReceiver().GetField().Convert(primitive.SortInt32, primitive.SortInt8).Return()
		},
		"Set": func(b *MethodBuilder) {
			b.LoadReceiver().CheckReceiver().LoadValue().Unbox(primitive.SortInt32).PutField().Return()
		},
	})
}

func TestListing(t *testing.T) {
	out, err := Listing(sampleProgram(t))
	require.NoError(t, err)

	assert.Contains(t, out, "unit Unit_X\n")
	assert.Contains(t, out, "field X int32 (SortInt32, offset 0)")
	assert.Contains(t, out, "func (u *Unit_X) GetInt8(obj any) (int8, error)\n")
	assert.Contains(t, out, "  02 getfield point.X int32\n")
	assert.Contains(t, out, "  03 convert int32 -> int8\n")
	assert.Contains(t, out, "     | out = int8(v)\n")
	assert.Contains(t, out, "func (u *Unit_X) SetInt8(obj any, v int8) error // illegal\n")
	assert.Contains(t, out, "     | case float64:\n")
}

func TestExportYAML(t *testing.T) {
	data, err := ExportYAML(sampleProgram(t))
	require.NoError(t, err)

	var mf Manifest
	require.NoError(t, yaml.Unmarshal(data, &mf))

	assert.Equal(t, "Unit_X", mf.Name)
	assert.Equal(t, "SortInt32", mf.Sort)
	require.Len(t, mf.Methods, 18)

	var get8 MethodManifest
	for _, m := range mf.Methods {
		if m.Name == "GetInt8" {
			get8 = m
		}
	}
	assert.True(t, get8.Live)
	assert.Equal(t, []string{"loadreceiver", "checkreceiver", "getfield", "convert int32 -> int8", "return"}, get8.Code)
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(staticProgramFilled())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "Unit_hits", raw["name"])
	assert.Equal(t, true, raw["static"])
	assert.NotContains(t, raw, "offset")

	spew.Dump(raw["methods"])
}

func staticProgramFilled() *Program {
	return fill(staticProgram(), map[string]func(*MethodBuilder){
		"GetInt64": func(b *MethodBuilder) { b.GetStatic().Return() },
	})
}
