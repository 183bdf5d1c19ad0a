package emit

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastreflect/loader"
)

func TestLink_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := loader.NewRegistry(loader.WithLogger(zerolog.New(&buf)))

	p := fill(instanceProgram(t, "X"), map[string]func(*MethodBuilder){
		"GetInt32": func(b *MethodBuilder) {
			b.LoadReceiver().CheckReceiver().GetField().Return().Throw()
		},
	})

	class, err := r.Define(loader.System, "Unit_X_warn", p)
	require.NoError(t, err)

	inst, err := class.New("ref")
	require.NoError(t, err)

	// the trailing throw is dead code
	v, err := inst.(*Object).Table.GetInt32(&point{X: 4})
	require.NoError(t, err)
	assert.Equal(t, int32(4), v)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"code":"code.unreachable"`)
	assert.Contains(t, out, `"method":"GetInt32"`)
	assert.Contains(t, out, `"offset":4`)
}

func TestLink_NoWarningsNoLogs(t *testing.T) {
	var buf bytes.Buffer
	r := loader.NewRegistry(loader.WithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel)))

	_, err := r.Define(loader.System, "Unit_X_quiet", fill(instanceProgram(t, "X"), nil))
	require.NoError(t, err)

	assert.Empty(t, buf.String())
}
