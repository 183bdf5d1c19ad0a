package emit

import (
	"reflect"
	"unsafe"

	"fastreflect/loader"
	"fastreflect/primitive"
)

// Program is the generated code of one accessor unit.
type Program struct {
	Name      string
	Owner     reflect.Type // declaring struct type
	Field     string
	FieldType reflect.Type
	Static    bool
	Offset    uintptr        // instance fields only
	Addr      unsafe.Pointer // static fields only

	Methods []Method
}

// Method is one entry point of a unit.
type Method struct {
	Name   string
	Kind   MethodKind
	Access primitive.SortEnum
	Code   []Instr
}

// Live reports whether the method does anything but throw.
func (m *Method) Live() bool {
	return !(len(m.Code) == 1 && m.Code[0].Op == OpThrow)
}

// NewInstance starts an empty program for an instance field.
func NewInstance(name string, owner reflect.Type, field string, fieldType reflect.Type, offset uintptr) *Program {
	return &Program{
		Name:      name,
		Owner:     owner,
		Field:     field,
		FieldType: fieldType,
		Offset:    offset,
	}
}

// NewStatic starts an empty program for a scope-wide variable at addr.
func NewStatic(name string, owner reflect.Type, field string, fieldType reflect.Type, addr unsafe.Pointer) *Program {
	return &Program{
		Name:      name,
		Owner:     owner,
		Field:     field,
		FieldType: fieldType,
		Static:    true,
		Addr:      addr,
	}
}

func (p *Program) FieldSort() primitive.SortEnum {
	return primitive.FromReflectType(p.FieldType)
}

// Requires implements loader.Code.
func (p *Program) Requires() []reflect.Type {
	return []reflect.Type{p.Owner, p.FieldType}
}

// Link implements loader.Code: it verifies and compiles p and returns a
// constructor taking the field reference the instance reports back.
//
// Warnings found on the way are logged through the logger of ctx.
func (p *Program) Link(ctx *loader.Context) (loader.Constructor, error) {
	diags := Check(p)
	if diags.HasErrors() {
		return nil, &VerifyError{Unit: p.Name, Diagnostics: diags}
	}

	if ctx != nil {
		log := ctx.Logger()
		for _, w := range diags.Warnings {
			log.Warn().
				Str("unit", w.Unit).
				Str("method", w.Method).
				Int("offset", w.Offset).
				Str("code", w.Code).
				Msg(w.Message)
		}
	}

	table, err := compile(p)
	if err != nil {
		return nil, err
	}

	name := p.Name

	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, &EntryError{Unit: name, Method: "New", Err: ErrIllegalArgument}
		}

		return &Object{Class: name, Table: table, Ref: args[0]}, nil
	}, nil
}

// Getter appends a getter for access and returns its builder.
func (p *Program) Getter(access primitive.SortEnum) *MethodBuilder {
	return p.method(KindGetter, access)
}

// Setter appends a setter for access and returns its builder.
func (p *Program) Setter(access primitive.SortEnum) *MethodBuilder {
	return p.method(KindSetter, access)
}

func (p *Program) method(kind MethodKind, access primitive.SortEnum) *MethodBuilder {
	p.Methods = append(p.Methods, Method{
		Name:   EntryName(kind, access),
		Kind:   kind,
		Access: access,
	})

	return &MethodBuilder{p: p, idx: len(p.Methods) - 1}
}

// MethodBuilder appends instructions to one method. Calls chain.
type MethodBuilder struct {
	p   *Program
	idx int
}

func (b *MethodBuilder) emit(in Instr) *MethodBuilder {
	m := &b.p.Methods[b.idx]
	m.Code = append(m.Code, in)

	return b
}

func (b *MethodBuilder) LoadReceiver() *MethodBuilder {
	return b.emit(Instr{Op: OpLoadReceiver})
}

func (b *MethodBuilder) CheckReceiver() *MethodBuilder {
	return b.emit(Instr{Op: OpCheckReceiver})
}

func (b *MethodBuilder) GetField() *MethodBuilder {
	return b.emit(Instr{Op: OpGetField})
}

func (b *MethodBuilder) GetStatic() *MethodBuilder {
	return b.emit(Instr{Op: OpGetStatic})
}

func (b *MethodBuilder) Convert(from, to primitive.SortEnum) *MethodBuilder {
	return b.emit(Instr{Op: OpConvert, From: from, To: to})
}

func (b *MethodBuilder) Box(from primitive.SortEnum) *MethodBuilder {
	return b.emit(Instr{Op: OpBox, From: from})
}

func (b *MethodBuilder) LoadValue() *MethodBuilder {
	return b.emit(Instr{Op: OpLoadValue})
}

func (b *MethodBuilder) Unbox(to primitive.SortEnum) *MethodBuilder {
	return b.emit(Instr{Op: OpUnbox, To: to})
}

func (b *MethodBuilder) CheckCast() *MethodBuilder {
	return b.emit(Instr{Op: OpCheckCast})
}

func (b *MethodBuilder) PutField() *MethodBuilder {
	return b.emit(Instr{Op: OpPutField})
}

func (b *MethodBuilder) PutStatic() *MethodBuilder {
	return b.emit(Instr{Op: OpPutStatic})
}

func (b *MethodBuilder) Return() *MethodBuilder {
	return b.emit(Instr{Op: OpReturn})
}

func (b *MethodBuilder) Throw() *MethodBuilder {
	return b.emit(Instr{Op: OpThrow})
}
