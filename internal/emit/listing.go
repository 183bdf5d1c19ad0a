package emit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"fastreflect/primitive"
)

var listingTemplate = template.Must(template.New("listing").Parse(
	`unit {{.Name}}
  owner {{.Owner}}
  field {{.Field}} {{.FieldType}} ({{.Sort}}{{if .Static}}, static{{else}}, offset {{.Offset}}{{end}})

func New(field any) *{{.Name}}
func (u *{{.Name}}) Field() any
{{range .Methods}}
{{.Signature}}{{if not .Live}} // illegal{{end}}
{{range .Lines}}  {{.}}
{{end}}{{end}}`))

type listingMethod struct {
	Signature string
	Live      bool
	Lines     []string
}

// Listing renders p as a human readable disassembly. Conversion steps are
// annotated with the Go statements they stand for.
func Listing(p *Program) (string, error) {
	data := map[string]any{
		"Name":      p.Name,
		"Owner":     p.Owner,
		"Field":     p.Field,
		"FieldType": p.FieldType,
		"Sort":      p.FieldSort(),
		"Static":    p.Static,
		"Offset":    p.Offset,
	}

	methods := make([]listingMethod, 0, len(p.Methods))
	for i := range p.Methods {
		m := &p.Methods[i]

		lm := listingMethod{
			Signature: signature(p.Name, m),
			Live:      m.Live(),
		}

		for j, in := range m.Code {
			lm.Lines = append(lm.Lines, fmt.Sprintf("%02d %s", j, describe(p, in)))

			stmts, err := statements(p, m, in)
			if err != nil {
				return "", err
			}
			for _, stmt := range stmts {
				lm.Lines = append(lm.Lines, "   | "+stmt)
			}
		}

		methods = append(methods, lm)
	}
	data["Methods"] = methods

	var buf bytes.Buffer
	if err := listingTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func signature(unit string, m *Method) string {
	typ := m.Access.GoType()

	if m.Kind == KindSetter {
		return fmt.Sprintf("func (u *%s) %s(obj any, v %s) error", unit, m.Name, typ)
	}

	return fmt.Sprintf("func (u *%s) %s(obj any) (%s, error)", unit, m.Name, typ)
}

func describe(p *Program, in Instr) string {
	switch in.Op {
	case OpCheckReceiver:
		return in.String() + " *" + p.Owner.Name()
	case OpGetField, OpPutField, OpGetStatic, OpPutStatic:
		return in.String() + " " + p.Owner.Name() + "." + p.Field + " " + p.FieldType.String()
	case OpCheckCast:
		return in.String() + " " + p.FieldType.String()
	default:
		return in.String()
	}
}

// statements returns the Go statements a conversion step stands for.
func statements(p *Program, m *Method, in Instr) ([]string, error) {
	var pair primitive.ConversionPair

	switch in.Op {
	case OpConvert:
		pair = primitive.ConversionPair{From: in.From, To: in.To}
	case OpBox:
		pair = primitive.ConversionPair{From: in.From, To: primitive.SortObject}
	case OpUnbox:
		pair = primitive.ConversionPair{From: primitive.SortObject, To: in.To}
	case OpCheckCast:
		pair = primitive.ConversionPair{From: primitive.SortObject, To: primitive.SortObject}
	default:
		return nil, nil
	}

	dstType := ""
	if in.Op == OpUnbox || in.Op == OpCheckCast {
		dstType = p.FieldType.String()
	}

	stmts, err := primitive.Generate(pair, "v", "out", dstType, m.Name)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", p.Name, m.Name, err)
	}

	for i, stmt := range stmts {
		stmts[i] = strings.ReplaceAll(stmt, "\t", "  ")
	}

	return stmts, nil
}
