package accessor

import (
	"fmt"
	"reflect"
	"unsafe"

	"fastreflect/loader"
	"fastreflect/primitive"
)

// Field describes one field of a struct type, or one variable attached to a
// struct type, in an isolation scope. It is immutable.
type Field struct {
	owner  reflect.Type
	name   string
	typ    reflect.Type
	sort   primitive.SortEnum
	static bool
	offset uintptr
	addr   unsafe.Pointer
	scope  *loader.Scope
}

type FieldOption func(*Field)

// InScope places the field in scope instead of loader.System.
func InScope(scope *loader.Scope) FieldOption {
	return func(f *Field) {
		f.scope = scope
	}
}

// FieldOf describes the instance field name of owner. Promoted fields are
// found through embedded struct values but not through embedded pointers.
func FieldOf(owner reflect.Type, name string, opts ...FieldOption) (*Field, error) {
	owner, err := structType(owner)
	if err != nil {
		return nil, err
	}

	sf, ok := owner.FieldByName(name)
	if !ok {
		return nil, fmt.Errorf("%s has no field %q: %w", owner, name, ErrIllegalArgument)
	}

	var offset uintptr
	t := owner
	for i, idx := range sf.Index {
		step := t.Field(idx)
		offset += step.Offset

		if i == len(sf.Index)-1 {
			break
		}

		if step.Type.Kind() != reflect.Struct {
			return nil, fmt.Errorf("%s.%s is promoted through *%s: %w", owner, name, step.Type.Elem(), ErrIllegalArgument)
		}
		t = step.Type
	}

	f := &Field{
		owner:  owner,
		name:   sf.Name,
		typ:    sf.Type,
		sort:   primitive.FromReflectType(sf.Type),
		offset: offset,
	}

	return f.apply(opts), nil
}

// FieldFor is FieldOf for the type parameter.
func FieldFor[T any](name string, opts ...FieldOption) (*Field, error) {
	return FieldOf(reflect.TypeFor[T](), name, opts...)
}

// StaticOf describes the variable ptr points to as a static field called
// name of owner.
func StaticOf(owner reflect.Type, name string, ptr any, opts ...FieldOption) (*Field, error) {
	owner, err := structType(owner)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("static field of %s has no name: %w", owner, ErrIllegalArgument)
	}

	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("static %s.%s: %T is not a non-nil pointer: %w", owner, name, ptr, ErrIllegalArgument)
	}

	typ := rv.Type().Elem()
	f := &Field{
		owner:  owner,
		name:   name,
		typ:    typ,
		sort:   primitive.FromReflectType(typ),
		static: true,
		addr:   rv.UnsafePointer(),
	}

	return f.apply(opts), nil
}

func structType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, fmt.Errorf("nil owner: %w", ErrIllegalArgument)
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("owner %s is not a struct: %w", t, ErrIllegalArgument)
	}

	return t, nil
}

func (f *Field) apply(opts []FieldOption) *Field {
	f.scope = loader.System
	for _, opt := range opts {
		opt(f)
	}

	if f.scope == nil {
		f.scope = loader.System
	}

	return f
}

func (f *Field) Owner() reflect.Type      { return f.owner }
func (f *Field) Name() string             { return f.name }
func (f *Field) Type() reflect.Type       { return f.typ }
func (f *Field) Sort() primitive.SortEnum { return f.sort }
func (f *Field) Static() bool             { return f.static }
func (f *Field) Scope() *loader.Scope     { return f.scope }

// Offset is the byte offset of the field within its owner. It is zero for
// static fields.
func (f *Field) Offset() uintptr { return f.offset }

func (f *Field) String() string {
	kind := "field"
	if f.static {
		kind = "static"
	}

	return fmt.Sprintf("%s %s.%s %s", kind, f.owner, f.name, f.typ)
}
