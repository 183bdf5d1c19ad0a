package emit

import (
	"fmt"
	"reflect"

	"fastreflect/internal/diagnostic"
	"fastreflect/primitive"
)

// slot is one simulated operand stack entry.
type slot struct {
	sort  primitive.SortEnum
	owner bool // receiver already checked against the owner type
}

func (s slot) String() string {
	if s.owner {
		return "receiver"
	}

	return s.sort.GoType()
}

// Verify checks the layout of p and simulates the operand stack of every
// method. All problems are collected before it fails.
func Verify(p *Program) error {
	diags := Check(p)
	if diags.HasErrors() {
		return &VerifyError{Unit: p.Name, Diagnostics: diags}
	}

	return nil
}

// Check runs the checks of Verify and returns every finding, warnings
// included.
func Check(p *Program) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	verifyLayout(p, &diags)

	seen := make(map[string]struct{}, len(p.Methods))
	for i := range p.Methods {
		m := &p.Methods[i]

		if _, ok := seen[m.Name]; ok {
			diags.AddError("method.duplicate", "method defined twice", p.Name, m.Name, -1)
			continue
		}
		seen[m.Name] = struct{}{}

		verifyMethod(p, m, &diags)
	}

	return diags
}

func verifyLayout(p *Program, d *diagnostic.Diagnostics) {
	if p.Name == "" {
		d.AddError("unit.name", "unit has no name", "", "", -1)
	}

	if p.Owner == nil || p.Owner.Kind() != reflect.Struct {
		d.AddError("unit.owner", fmt.Sprintf("owner %v is not a struct type", p.Owner), p.Name, "", -1)
	}

	if p.FieldType == nil {
		d.AddError("unit.field", "field has no type", p.Name, "", -1)
		return
	}

	if p.Static {
		if p.Addr == nil {
			d.AddError("unit.static", "static field has no address", p.Name, "", -1)
		}
		return
	}

	if p.Owner != nil && p.Owner.Kind() == reflect.Struct && p.Offset+p.FieldType.Size() > p.Owner.Size() {
		d.AddError("unit.offset", fmt.Sprintf("field at offset %d overruns %s", p.Offset, p.Owner), p.Name, "", -1)
	}
}

func verifyMethod(p *Program, m *Method, d *diagnostic.Diagnostics) {
	report := func(offset int, code, format string, args ...any) {
		d.AddError(code, fmt.Sprintf(format, args...), p.Name, m.Name, offset)
	}

	if !m.Access.IsValid() || m.Kind != KindGetter && m.Kind != KindSetter {
		report(-1, "method.signature", "invalid %s for %s", m.Kind, m.Access)
		return
	}

	if want := EntryName(m.Kind, m.Access); m.Name != want {
		report(-1, "method.name", "%s %s must be named %s", m.Access, m.Kind, want)
	}

	field := p.FieldSort()
	stack := make([]slot, 0, 2)

	pop := func(offset int) (slot, bool) {
		if len(stack) == 0 {
			report(offset, "stack.underflow", "operand stack is empty")
			return slot{}, false
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		return top, true
	}

	expect := func(offset int, want slot) {
		got, ok := pop(offset)
		if ok && got != want {
			report(offset, "stack.mismatch", "want %s, got %s", want, got)
		}
	}

	static := func(offset int, want bool) {
		if p.Static != want {
			report(offset, "field.static", "%s is invalid for static=%t field", m.Code[offset].Op.Mnemonic(), p.Static)
		}
	}

	terminated := false
	for i, in := range m.Code {
		if terminated {
			d.AddWarning("code.unreachable", in.String()+" is unreachable", p.Name, m.Name, i)
			continue
		}

		switch in.Op {
		case OpLoadReceiver:
			static(i, false)
			stack = append(stack, slot{sort: primitive.SortObject})

		case OpCheckReceiver:
			expect(i, slot{sort: primitive.SortObject})
			stack = append(stack, slot{sort: primitive.SortObject, owner: true})

		case OpGetField:
			static(i, false)
			expect(i, slot{sort: primitive.SortObject, owner: true})
			stack = append(stack, slot{sort: field})

		case OpGetStatic:
			static(i, true)
			stack = append(stack, slot{sort: field})

		case OpConvert:
			category := primitive.Classify(primitive.ConversionPair{From: in.From, To: in.To})
			if category != primitive.CategoryNarrowing && category != primitive.CategoryWidening {
				report(i, "convert.pair", "no numeric conversion from %s to %s", in.From, in.To)
			}
			expect(i, slot{sort: in.From})
			stack = append(stack, slot{sort: in.To})

		case OpBox:
			if !in.From.IsPrimitive() {
				report(i, "box.sort", "cannot box %s", in.From)
			}
			expect(i, slot{sort: in.From})
			stack = append(stack, slot{sort: primitive.SortObject})

		case OpLoadValue:
			if m.Kind != KindSetter {
				report(i, "value.kind", "value argument loaded by a %s", m.Kind)
			}
			stack = append(stack, slot{sort: m.Access})

		case OpUnbox:
			if !in.To.IsPrimitive() {
				report(i, "unbox.sort", "cannot unbox into %s", in.To)
			}
			expect(i, slot{sort: primitive.SortObject})
			stack = append(stack, slot{sort: in.To})

		case OpCheckCast:
			if field != primitive.SortObject {
				report(i, "checkcast.field", "reference cast into %s field", field)
			}
			expect(i, slot{sort: primitive.SortObject})
			stack = append(stack, slot{sort: primitive.SortObject})

		case OpPutField:
			static(i, false)
			expect(i, slot{sort: field})
			expect(i, slot{sort: primitive.SortObject, owner: true})

		case OpPutStatic:
			static(i, true)
			expect(i, slot{sort: field})

		case OpReturn:
			if m.Kind == KindGetter {
				expect(i, slot{sort: m.Access})
			}
			if len(stack) != 0 {
				report(i, "stack.leftover", "%d operands left on return", len(stack))
			}
			terminated = true

		case OpThrow:
			terminated = true

		default:
			report(i, "code.opcode", "unknown opcode %s", in.Op)
		}
	}

	if !terminated {
		report(len(m.Code), "code.fallthrough", "method does not end in return or throw")
	}
}
