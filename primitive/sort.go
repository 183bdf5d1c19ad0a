package primitive

import (
	"reflect"
	"strconv"
)

//go:generate go tool stringer -type=SortEnum -output=sort_string.go

// SortEnum is the storage class of a field as seen by generated accessors.
type SortEnum int

const (
	_ SortEnum = iota // skip zero value, use it as a default (invalid) value for SortEnum

	SortObject
	SortBool
	SortChar
	SortInt8
	SortInt16
	SortInt32
	SortInt64
	SortFloat32
	SortFloat64

	// SortTotal is a constant that represents the total number of sorts defined
	SortTotal = int(iota)
)

// Sorts lists every valid sort in access order: the generic object sort first,
// then the numeric sorts by rank, then bool and char.
var Sorts = []SortEnum{
	SortObject,
	SortInt8, SortInt16, SortInt32, SortInt64, SortFloat32, SortFloat64,
	SortBool, SortChar,
}

func (s SortEnum) IsValid() bool {
	return s > 0 && int(s) < SortTotal
}

func (s SortEnum) IsPrimitive() bool {
	return s.IsValid() && s != SortObject
}

func (s SortEnum) IsNumber() bool {
	switch s {
	default:
		return false
	case SortInt8, SortInt16, SortInt32, SortInt64, SortFloat32, SortFloat64:
		return true
	}
}

func (s SortEnum) IsInteger() bool {
	switch s {
	default:
		return false
	case SortInt8, SortInt16, SortInt32, SortInt64:
		return true
	}
}

func (s SortEnum) IsFloat() bool {
	switch s {
	default:
		return false
	case SortFloat32, SortFloat64:
		return true
	}
}

// Rank orders numeric sorts: int8 < int16 < int32 < int64 < float32 < float64.
// Non-numeric sorts have rank 0.
func (s SortEnum) Rank() int {
	if !s.IsNumber() {
		return 0
	}

	return int(s-SortInt8) + 1
}

func (s SortEnum) Bits() int {
	switch s {
	default:
		panic("only primitive sorts has meaningful bits amount, but requested for: " + s.String())
	case SortBool, SortInt8:
		return 8
	case SortChar, SortInt16:
		return 16
	case SortInt32, SortFloat32:
		return 32
	case SortInt64, SortFloat64:
		return 64
	}
}

// GoType returns the builtin Go type name used to hold values of the sort.
func (s SortEnum) GoType() string {
	switch s {
	default:
		return "any"
	case SortBool:
		return "bool"
	case SortChar:
		return "uint16"
	case SortInt8:
		return "int8"
	case SortInt16:
		return "int16"
	case SortInt32:
		return "int32"
	case SortInt64:
		return "int64"
	case SortFloat32:
		return "float32"
	case SortFloat64:
		return "float64"
	}
}

// ReflectType returns the builtin type of GoType, or nil for SortObject and
// invalid sorts.
func (s SortEnum) ReflectType() reflect.Type {
	switch s {
	default:
		return nil
	case SortBool:
		return reflect.TypeFor[bool]()
	case SortChar:
		return reflect.TypeFor[uint16]()
	case SortInt8:
		return reflect.TypeFor[int8]()
	case SortInt16:
		return reflect.TypeFor[int16]()
	case SortInt32:
		return reflect.TypeFor[int32]()
	case SortInt64:
		return reflect.TypeFor[int64]()
	case SortFloat32:
		return reflect.TypeFor[float32]()
	case SortFloat64:
		return reflect.TypeFor[float64]()
	}
}

// FromReflectType classifies rtype by its kind, so named types share the sort
// of their underlying primitive. Every non-primitive kind is SortObject.
func FromReflectType(rtype reflect.Type) SortEnum {
	if rtype == nil {
		return 0
	}

	switch rtype.Kind() {
	default:
		return SortObject
	case reflect.Bool:
		return SortBool
	case reflect.Uint16:
		return SortChar
	case reflect.Int8:
		return SortInt8
	case reflect.Int16:
		return SortInt16
	case reflect.Int32:
		return SortInt32
	case reflect.Int64:
		return SortInt64
	case reflect.Int:
		if strconv.IntSize == 64 {
			return SortInt64
		}
		return SortInt32
	case reflect.Float32:
		return SortFloat32
	case reflect.Float64:
		return SortFloat64
	}
}

// Of classifies the dynamic type of v. A nil interface is SortObject.
func Of(v any) SortEnum {
	if v == nil {
		return SortObject
	}

	return FromReflectType(reflect.TypeOf(v))
}
