package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning("unreachable", "instruction after return", "Unit_1", "GetInt8", 3)
	assert.True(t, d.IsValid())

	d.AddError("underflow", "stack is empty", "Unit_1", "Get", 0)

	d.AddError("mismatch", "want int32, got bool", "Unit_1", "", -1)

	assert.True(t, d.HasErrors())
	assert.Len(t, d.Errors, 2)
	assert.Len(t, d.Warnings, 1)
	assert.Equal(t, DiagnosticWarning, d.Warnings[0].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		"[Unit_1] Get@0: [underflow] stack is empty; [Unit_1]: [mismatch] want int32, got bool",
		err.Error())
}

func TestDiagnostic_String(t *testing.T) {
	assert.Equal(t, "plain", Diagnostic{Message: "plain", Offset: -1}.String())
	assert.Equal(t, "Set: [c] m", Diagnostic{Code: "c", Message: "m", Method: "Set", Offset: -1}.String())
}

func TestDiagnosticSeverity_String(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, UnknownStr, DiagnosticSeverity(42).String())
}
