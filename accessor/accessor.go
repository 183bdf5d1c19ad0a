package accessor

import (
	"fastreflect/internal/emit"
)

// Accessor reads and writes one field. obj is a non-nil pointer to the owner
// for instance fields and is ignored for static fields.
//
// Numeric conversions follow Go conversion rules, except from floating point
// to integers: NaN converts to 0, values beyond the int32 range (the int64
// range for GetInt64 and int64 fields) saturate, and int8 and int16 keep the
// low bits of the saturated int32.
type Accessor interface {
	// Field returns the descriptor the accessor was created for.
	Field() *Field
	// Name returns the generated unit name.
	Name() string

	Get(obj any) (any, error)
	GetInt8(obj any) (int8, error)
	GetInt16(obj any) (int16, error)
	GetInt32(obj any) (int32, error)
	GetInt64(obj any) (int64, error)
	GetFloat32(obj any) (float32, error)
	GetFloat64(obj any) (float64, error)
	GetBool(obj any) (bool, error)
	GetChar(obj any) (uint16, error)

	Set(obj any, v any) error
	SetInt8(obj any, v int8) error
	SetInt16(obj any, v int16) error
	SetInt32(obj any, v int32) error
	SetInt64(obj any, v int64) error
	SetFloat32(obj any, v float32) error
	SetFloat64(obj any, v float64) error
	SetBool(obj any, v bool) error
	SetChar(obj any, v uint16) error
}

// unit adapts a linked object to Accessor.
type unit struct {
	name  string
	field *Field
	t     *emit.Table
}

func newUnit(obj *emit.Object) *unit {
	return &unit{
		name:  obj.Class,
		field: obj.Ref.(*Field),
		t:     obj.Table,
	}
}

func (u *unit) Field() *Field { return u.field }
func (u *unit) Name() string  { return u.name }

func (u *unit) Get(obj any) (any, error)            { return u.t.Get(obj) }
func (u *unit) GetInt8(obj any) (int8, error)       { return u.t.GetInt8(obj) }
func (u *unit) GetInt16(obj any) (int16, error)     { return u.t.GetInt16(obj) }
func (u *unit) GetInt32(obj any) (int32, error)     { return u.t.GetInt32(obj) }
func (u *unit) GetInt64(obj any) (int64, error)     { return u.t.GetInt64(obj) }
func (u *unit) GetFloat32(obj any) (float32, error) { return u.t.GetFloat32(obj) }
func (u *unit) GetFloat64(obj any) (float64, error) { return u.t.GetFloat64(obj) }
func (u *unit) GetBool(obj any) (bool, error)       { return u.t.GetBool(obj) }
func (u *unit) GetChar(obj any) (uint16, error)     { return u.t.GetChar(obj) }

func (u *unit) Set(obj any, v any) error            { return u.t.Set(obj, v) }
func (u *unit) SetInt8(obj any, v int8) error       { return u.t.SetInt8(obj, v) }
func (u *unit) SetInt16(obj any, v int16) error     { return u.t.SetInt16(obj, v) }
func (u *unit) SetInt32(obj any, v int32) error     { return u.t.SetInt32(obj, v) }
func (u *unit) SetInt64(obj any, v int64) error     { return u.t.SetInt64(obj, v) }
func (u *unit) SetFloat32(obj any, v float32) error { return u.t.SetFloat32(obj, v) }
func (u *unit) SetFloat64(obj any, v float64) error { return u.t.SetFloat64(obj, v) }
func (u *unit) SetBool(obj any, v bool) error       { return u.t.SetBool(obj, v) }
func (u *unit) SetChar(obj any, v uint16) error     { return u.t.SetChar(obj, v) }

func (u *unit) String() string {
	return u.name + " for " + u.field.String()
}
