package emit

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastreflect/primitive"
)

func verifyErrors(t *testing.T, p *Program) []string {
	t.Helper()

	err := Verify(p)
	require.ErrorIs(t, err, ErrVerify)

	var verr *VerifyError
	require.ErrorAs(t, err, &verr)

	codes := make([]string, 0, len(verr.Diagnostics.Errors))
	for _, d := range verr.Diagnostics.Errors {
		codes = append(codes, d.Code)
	}

	return codes
}

func TestVerify_Valid(t *testing.T) {
	p := fill(instanceProgram(t, "X"), map[string]func(*MethodBuilder){
		"GetInt32": func(b *MethodBuilder) {
			b.LoadReceiver().CheckReceiver().GetField().Return()
		},
	})

	require.NoError(t, Verify(p))
}

func TestVerify_Methods(t *testing.T) {
	tests := []struct {
		name   string
		access primitive.SortEnum
		kind   MethodKind
		build  func(*MethodBuilder)
		code   string
	}{
		{
			name: "underflow", access: primitive.SortInt32, kind: KindGetter,
			build: func(b *MethodBuilder) { b.GetField().Return() },
			code:  "stack.underflow",
		},
		{
			name: "unchecked receiver", access: primitive.SortInt32, kind: KindGetter,
			build: func(b *MethodBuilder) { b.LoadReceiver().GetField().Return() },
			code:  "stack.mismatch",
		},
		{
			name: "static op on instance field", access: primitive.SortInt32, kind: KindGetter,
			build: func(b *MethodBuilder) { b.GetStatic().Return() },
			code:  "field.static",
		},
		{
			name: "widening convert on read", access: primitive.SortInt64, kind: KindGetter,
			build: func(b *MethodBuilder) {
				b.LoadReceiver().CheckReceiver().GetField().Convert(primitive.SortInt32, primitive.SortInt64).Return()
			},
			code: "",
		},
		{
			name: "bool convert", access: primitive.SortBool, kind: KindGetter,
			build: func(b *MethodBuilder) {
				b.LoadReceiver().CheckReceiver().GetField().Convert(primitive.SortInt32, primitive.SortBool).Return()
			},
			code: "convert.pair",
		},
		{
			name: "wrong return sort", access: primitive.SortInt16, kind: KindGetter,
			build: func(b *MethodBuilder) { b.LoadReceiver().CheckReceiver().GetField().Return() },
			code:  "stack.mismatch",
		},
		{
			name: "fallthrough", access: primitive.SortInt32, kind: KindGetter,
			build: func(b *MethodBuilder) { b.LoadReceiver().CheckReceiver().GetField() },
			code:  "code.fallthrough",
		},
		{
			name: "value in getter", access: primitive.SortInt32, kind: KindGetter,
			build: func(b *MethodBuilder) { b.LoadValue().Return() },
			code:  "value.kind",
		},
		{
			name: "store without unbox", access: primitive.SortObject, kind: KindSetter,
			build: func(b *MethodBuilder) { b.LoadReceiver().CheckReceiver().LoadValue().PutField().Return() },
			code:  "stack.mismatch",
		},
		{
			name: "checkcast into primitive", access: primitive.SortObject, kind: KindSetter,
			build: func(b *MethodBuilder) {
				b.LoadReceiver().CheckReceiver().LoadValue().CheckCast().PutField().Return()
			},
			code: "checkcast.field",
		},
		{
			name: "leftover operands", access: primitive.SortInt32, kind: KindSetter,
			build: func(b *MethodBuilder) { b.LoadReceiver().CheckReceiver().LoadValue().Return() },
			code:  "stack.leftover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := instanceProgram(t, "X")
			tt.build(p.method(tt.kind, tt.access))

			err := Verify(p)
			if tt.code == "" {
				// legal to verify; the generator never emits it
				require.NoError(t, err)
				return
			}

			assert.Contains(t, verifyErrors(t, p), tt.code)
		})
	}
}

func TestVerify_Layout(t *testing.T) {
	p := &Program{Owner: reflect.TypeFor[int](), FieldType: reflect.TypeFor[int32](), Static: true}

	codes := verifyErrors(t, p)
	assert.Contains(t, codes, "unit.name")
	assert.Contains(t, codes, "unit.owner")
	assert.Contains(t, codes, "unit.static")

	p = instanceProgram(t, "Tag")
	p.Offset = 1 << 20
	assert.Contains(t, verifyErrors(t, p), "unit.offset")
}

func TestVerify_DuplicateMethod(t *testing.T) {
	p := instanceProgram(t, "X")
	p.Getter(primitive.SortInt32).Throw()
	p.Getter(primitive.SortInt32).Throw()

	assert.Equal(t, []string{"method.duplicate"}, verifyErrors(t, p))
}

func TestVerify_MethodName(t *testing.T) {
	p := instanceProgram(t, "X")
	p.Getter(primitive.SortInt32).Throw()
	p.Methods[0].Name = "Fetch"

	assert.Equal(t, []string{"method.name"}, verifyErrors(t, p))
}

func TestVerify_UnreachableIsWarning(t *testing.T) {
	p := instanceProgram(t, "X")
	p.Getter(primitive.SortInt32).Throw().Return()

	require.NoError(t, Verify(p))

	diags := Check(p)
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, "code.unreachable", diags.Warnings[0].Code)
	assert.Equal(t, "GetInt32", diags.Warnings[0].Method)
	assert.Equal(t, 1, diags.Warnings[0].Offset)
}
