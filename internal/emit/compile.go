package emit

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"unsafe"

	"fastreflect/primitive"
)

type number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

type exact interface {
	~bool | ~uint16
}

// Table holds the bound entry points of a unit. Entries of the same unit
// share one locator and never allocate on success, except Get on reference
// and named primitive fields.
type Table struct {
	Get        func(obj any) (any, error)
	GetInt8    func(obj any) (int8, error)
	GetInt16   func(obj any) (int16, error)
	GetInt32   func(obj any) (int32, error)
	GetInt64   func(obj any) (int64, error)
	GetFloat32 func(obj any) (float32, error)
	GetFloat64 func(obj any) (float64, error)
	GetBool    func(obj any) (bool, error)
	GetChar    func(obj any) (uint16, error)

	Set        func(obj any, v any) error
	SetInt8    func(obj any, v int8) error
	SetInt16   func(obj any, v int16) error
	SetInt32   func(obj any, v int32) error
	SetInt64   func(obj any, v int64) error
	SetFloat32 func(obj any, v float32) error
	SetFloat64 func(obj any, v float64) error
	SetBool    func(obj any, v bool) error
	SetChar    func(obj any, v uint16) error
}

// Object is an instance of a linked unit.
type Object struct {
	Class string
	Table *Table
	Ref   any // constructor argument
}

func (t *Table) missing() []string {
	entries := []struct {
		name  string
		unset bool
	}{
		{"Get", t.Get == nil},
		{"GetInt8", t.GetInt8 == nil},
		{"GetInt16", t.GetInt16 == nil},
		{"GetInt32", t.GetInt32 == nil},
		{"GetInt64", t.GetInt64 == nil},
		{"GetFloat32", t.GetFloat32 == nil},
		{"GetFloat64", t.GetFloat64 == nil},
		{"GetBool", t.GetBool == nil},
		{"GetChar", t.GetChar == nil},
		{"Set", t.Set == nil},
		{"SetInt8", t.SetInt8 == nil},
		{"SetInt16", t.SetInt16 == nil},
		{"SetInt32", t.SetInt32 == nil},
		{"SetInt64", t.SetInt64 == nil},
		{"SetFloat32", t.SetFloat32 == nil},
		{"SetFloat64", t.SetFloat64 == nil},
		{"SetBool", t.SetBool == nil},
		{"SetChar", t.SetChar == nil},
	}

	var names []string
	for _, e := range entries {
		if e.unset {
			names = append(names, e.name)
		}
	}

	return names
}

func compile(p *Program) (*Table, error) {
	loc := p.locator()
	t := &Table{}

	for i := range p.Methods {
		m := &p.Methods[i]

		var err error
		switch m.Kind {
		case KindGetter:
			switch m.Access {
			case primitive.SortObject:
				t.Get, err = compileObjectGetter(p, m, loc)
			case primitive.SortInt8:
				t.GetInt8, err = compileNumberGetter[int8](p, m, loc)
			case primitive.SortInt16:
				t.GetInt16, err = compileNumberGetter[int16](p, m, loc)
			case primitive.SortInt32:
				t.GetInt32, err = compileNumberGetter[int32](p, m, loc)
			case primitive.SortInt64:
				t.GetInt64, err = compileNumberGetter[int64](p, m, loc)
			case primitive.SortFloat32:
				t.GetFloat32, err = compileNumberGetter[float32](p, m, loc)
			case primitive.SortFloat64:
				t.GetFloat64, err = compileNumberGetter[float64](p, m, loc)
			case primitive.SortBool:
				t.GetBool, err = compileExactGetter[bool](p, m, loc)
			case primitive.SortChar:
				t.GetChar, err = compileExactGetter[uint16](p, m, loc)
			}
		case KindSetter:
			switch m.Access {
			case primitive.SortObject:
				t.Set, err = compileObjectSetter(p, m, loc)
			case primitive.SortInt8:
				t.SetInt8, err = compileNumberSetter[int8](p, m, loc)
			case primitive.SortInt16:
				t.SetInt16, err = compileNumberSetter[int16](p, m, loc)
			case primitive.SortInt32:
				t.SetInt32, err = compileNumberSetter[int32](p, m, loc)
			case primitive.SortInt64:
				t.SetInt64, err = compileNumberSetter[int64](p, m, loc)
			case primitive.SortFloat32:
				t.SetFloat32, err = compileNumberSetter[float32](p, m, loc)
			case primitive.SortFloat64:
				t.SetFloat64, err = compileNumberSetter[float64](p, m, loc)
			case primitive.SortBool:
				t.SetBool, err = compileExactSetter[bool](p, m, loc)
			case primitive.SortChar:
				t.SetChar, err = compileExactSetter[uint16](p, m, loc)
			}
		}

		if err != nil {
			return nil, err
		}
	}

	if missing := t.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing entries %v: %w", p.Name, missing, ErrVerify)
	}

	return t, nil
}

// locator resolves the address of the field for a receiver.
type locator func(obj any) (unsafe.Pointer, error)

// eface is the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func unpack(obj any) eface {
	return *(*eface)(unsafe.Pointer(&obj))
}

// locator checks receivers by comparing type words, which avoids reflect on
// every call. Only *Owner receivers are accepted.
func (p *Program) locator() locator {
	if p.Static {
		addr := p.Addr
		return func(any) (unsafe.Pointer, error) {
			return addr, nil
		}
	}

	want := reflect.PointerTo(p.Owner)
	typ := unpack(reflect.Zero(want).Interface()).typ
	offset := p.Offset

	return func(obj any) (unsafe.Pointer, error) {
		e := unpack(obj)
		if e.typ != typ {
			if e.typ == nil {
				return nil, ErrNilReceiver
			}
			return nil, fmt.Errorf("receiver %T, want %s: %w", obj, want, ErrIllegalArgument)
		}

		if e.data == nil {
			return nil, ErrNilReceiver
		}

		return unsafe.Add(e.data, offset), nil
	}
}

// shape is a decoded method: either a throw or a load/store with at most one
// conversion step in between.
type shape struct {
	throw bool
	step  *Instr
}

func decode(p *Program, m *Method) (shape, error) {
	code := m.Code

	// instructions past the first return or throw never run
	if end := slices.IndexFunc(code, func(in Instr) bool {
		return in.Op == OpReturn || in.Op == OpThrow
	}); end >= 0 {
		code = code[:end+1]
	}

	if len(code) == 1 && code[0].Op == OpThrow {
		return shape{throw: true}, nil
	}

	bad := fmt.Errorf("%s.%s: unsupported instruction sequence %v: %w", p.Name, m.Name, code, ErrVerify)

	i := 0
	switch m.Kind {
	case KindGetter:
		switch {
		case hasPrefix(code, OpLoadReceiver, OpCheckReceiver, OpGetField):
			i = 3
		case hasPrefix(code, OpGetStatic):
			i = 1
		default:
			return shape{}, bad
		}
	case KindSetter:
		if hasPrefix(code, OpLoadReceiver, OpCheckReceiver) {
			i = 2
		}
		if !hasPrefix(code[i:], OpLoadValue) {
			return shape{}, bad
		}
		i++
	}

	var s shape
	if i < len(code) {
		switch code[i].Op {
		case OpConvert, OpBox, OpUnbox, OpCheckCast:
			s.step = &code[i]
			i++
		}
	}

	var tail []OpEnum
	switch {
	case m.Kind == KindGetter:
		tail = []OpEnum{OpReturn}
	case p.Static:
		tail = []OpEnum{OpPutStatic, OpReturn}
	default:
		tail = []OpEnum{OpPutField, OpReturn}
	}

	if len(code)-i != len(tail) || !hasPrefix(code[i:], tail...) {
		return shape{}, bad
	}

	return s, nil
}

func hasPrefix(code []Instr, ops ...OpEnum) bool {
	if len(code) < len(ops) {
		return false
	}

	for i, op := range ops {
		if code[i].Op != op {
			return false
		}
	}

	return true
}

func (p *Program) illegal(m *Method) error {
	return &EntryError{Unit: p.Name, Method: m.Name, Err: ErrIllegalArgument}
}

func (p *Program) rejectValue(m *Method) func(v any) error {
	unit, method, ft := p.Name, m.Name, p.FieldType

	return func(v any) error {
		return &EntryError{
			Unit:   unit,
			Method: method,
			Err:    fmt.Errorf("cannot store %T into %s: %w", v, ft, ErrIllegalArgument),
		}
	}
}

func stepError(p *Program, m *Method, step *Instr) error {
	return fmt.Errorf("%s.%s: unexpected %s: %w", p.Name, m.Name, step, ErrVerify)
}

// getters

func compileNumberGetter[T number](p *Program, m *Method, loc locator) (func(any) (T, error), error) {
	s, err := decode(p, m)
	if err != nil {
		return nil, err
	}

	switch {
	case s.throw:
		e := p.illegal(m)
		return func(any) (T, error) { return 0, e }, nil
	case s.step == nil:
		return load[T](loc), nil
	case s.step.Op == OpConvert:
		if f := convertLoad[T](s.step.From, loc); f != nil {
			return f, nil
		}
	}

	return nil, stepError(p, m, s.step)
}

func compileExactGetter[T exact](p *Program, m *Method, loc locator) (func(any) (T, error), error) {
	s, err := decode(p, m)
	if err != nil {
		return nil, err
	}

	switch {
	case s.throw:
		e := p.illegal(m)
		return func(any) (T, error) {
			var zero T
			return zero, e
		}, nil
	case s.step == nil:
		return load[T](loc), nil
	}

	return nil, stepError(p, m, s.step)
}

func compileObjectGetter(p *Program, m *Method, loc locator) (func(any) (any, error), error) {
	s, err := decode(p, m)
	if err != nil {
		return nil, err
	}

	switch {
	case s.throw:
		e := p.illegal(m)
		return func(any) (any, error) { return nil, e }, nil
	case s.step == nil:
		return loadReflect(p.FieldType, loc), nil
	case s.step.Op == OpBox:
		// named primitive types must box into their own type
		if p.FieldType != s.step.From.ReflectType() {
			return loadReflect(p.FieldType, loc), nil
		}
		if f := boxLoad(s.step.From, loc); f != nil {
			return f, nil
		}
	}

	return nil, stepError(p, m, s.step)
}

func load[T any](loc locator) func(any) (T, error) {
	return func(obj any) (T, error) {
		ptr, err := loc(obj)
		if err != nil {
			var zero T
			return zero, err
		}

		return *(*T)(ptr), nil
	}
}

func loadAs[F, T number](loc locator) func(any) (T, error) {
	return func(obj any) (T, error) {
		ptr, err := loc(obj)
		if err != nil {
			return 0, err
		}

		return convert[F, T](*(*F)(ptr)), nil
	}
}

func convertLoad[T number](from primitive.SortEnum, loc locator) func(any) (T, error) {
	switch from {
	case primitive.SortInt8:
		return loadAs[int8, T](loc)
	case primitive.SortInt16:
		return loadAs[int16, T](loc)
	case primitive.SortInt32:
		return loadAs[int32, T](loc)
	case primitive.SortInt64:
		return loadAs[int64, T](loc)
	case primitive.SortFloat32:
		return loadAs[float32, T](loc)
	case primitive.SortFloat64:
		return loadAs[float64, T](loc)
	default:
		return nil
	}
}

func boxAs[F any](loc locator) func(any) (any, error) {
	return func(obj any) (any, error) {
		ptr, err := loc(obj)
		if err != nil {
			return nil, err
		}

		return *(*F)(ptr), nil
	}
}

func boxLoad(from primitive.SortEnum, loc locator) func(any) (any, error) {
	switch from {
	case primitive.SortInt8:
		return boxAs[int8](loc)
	case primitive.SortInt16:
		return boxAs[int16](loc)
	case primitive.SortInt32:
		return boxAs[int32](loc)
	case primitive.SortInt64:
		return boxAs[int64](loc)
	case primitive.SortFloat32:
		return boxAs[float32](loc)
	case primitive.SortFloat64:
		return boxAs[float64](loc)
	case primitive.SortBool:
		return boxAs[bool](loc)
	case primitive.SortChar:
		return boxAs[uint16](loc)
	default:
		return nil
	}
}

func loadReflect(ft reflect.Type, loc locator) func(any) (any, error) {
	return func(obj any) (any, error) {
		ptr, err := loc(obj)
		if err != nil {
			return nil, err
		}

		return reflect.NewAt(ft, ptr).Elem().Interface(), nil
	}
}

// setters

func compileNumberSetter[T number](p *Program, m *Method, loc locator) (func(any, T) error, error) {
	s, err := decode(p, m)
	if err != nil {
		return nil, err
	}

	switch {
	case s.throw:
		e := p.illegal(m)
		return func(any, T) error { return e }, nil
	case s.step == nil:
		return store[T](loc), nil
	case s.step.Op == OpConvert:
		if f := convertStore[T](s.step.To, loc); f != nil {
			return f, nil
		}
	}

	return nil, stepError(p, m, s.step)
}

func compileExactSetter[T exact](p *Program, m *Method, loc locator) (func(any, T) error, error) {
	s, err := decode(p, m)
	if err != nil {
		return nil, err
	}

	switch {
	case s.throw:
		e := p.illegal(m)
		return func(any, T) error { return e }, nil
	case s.step == nil:
		return store[T](loc), nil
	}

	return nil, stepError(p, m, s.step)
}

func compileObjectSetter(p *Program, m *Method, loc locator) (func(any, any) error, error) {
	s, err := decode(p, m)
	if err != nil {
		return nil, err
	}

	reject := p.rejectValue(m)

	switch {
	case s.throw:
		e := p.illegal(m)
		return func(any, any) error { return e }, nil
	case s.step == nil, s.step.Op == OpCheckCast:
		return storeReflect(p.FieldType, loc, reject), nil
	case s.step.Op == OpUnbox:
		switch s.step.To {
		case primitive.SortInt8:
			return unboxStore(loc, unboxNumber[int8], reject), nil
		case primitive.SortInt16:
			return unboxStore(loc, unboxNumber[int16], reject), nil
		case primitive.SortInt32:
			return unboxStore(loc, unboxNumber[int32], reject), nil
		case primitive.SortInt64:
			return unboxStore(loc, unboxNumber[int64], reject), nil
		case primitive.SortFloat32:
			return unboxStore(loc, unboxNumber[float32], reject), nil
		case primitive.SortFloat64:
			return unboxStore(loc, unboxNumber[float64], reject), nil
		case primitive.SortBool:
			return unboxStore(loc, unboxExact[bool], reject), nil
		case primitive.SortChar:
			return unboxStore(loc, unboxExact[uint16], reject), nil
		}
	}

	return nil, stepError(p, m, s.step)
}

func store[T any](loc locator) func(any, T) error {
	return func(obj any, v T) error {
		ptr, err := loc(obj)
		if err != nil {
			return err
		}

		*(*T)(ptr) = v

		return nil
	}
}

func storeAs[T, F number](loc locator) func(any, T) error {
	return func(obj any, v T) error {
		ptr, err := loc(obj)
		if err != nil {
			return err
		}

		*(*F)(ptr) = convert[T, F](v)

		return nil
	}
}

func convertStore[T number](to primitive.SortEnum, loc locator) func(any, T) error {
	switch to {
	case primitive.SortInt8:
		return storeAs[T, int8](loc)
	case primitive.SortInt16:
		return storeAs[T, int16](loc)
	case primitive.SortInt32:
		return storeAs[T, int32](loc)
	case primitive.SortInt64:
		return storeAs[T, int64](loc)
	case primitive.SortFloat32:
		return storeAs[T, float32](loc)
	case primitive.SortFloat64:
		return storeAs[T, float64](loc)
	default:
		return nil
	}
}

// unboxStore checks the receiver before the value, matching the order the
// instructions load them in.
func unboxStore[F any](loc locator, unbox func(any) (F, bool), reject func(any) error) func(any, any) error {
	return func(obj any, v any) error {
		ptr, err := loc(obj)
		if err != nil {
			return err
		}

		x, ok := unbox(v)
		if !ok {
			return reject(v)
		}

		*(*F)(ptr) = x

		return nil
	}
}

// unboxNumber accepts any value of a numeric sort, named types included, and
// converts it to F.
func unboxNumber[F number](v any) (F, bool) {
	switch x := v.(type) {
	case int8:
		return F(x), true
	case int16:
		return F(x), true
	case int32:
		return F(x), true
	case int64:
		return F(x), true
	case int:
		return F(x), true
	case float32:
		return convert[float32, F](x), true
	case float64:
		return convert[float64, F](x), true
	}

	if !primitive.Of(v).IsNumber() {
		return 0, false
	}

	rv := reflect.ValueOf(v)
	if rv.CanInt() {
		return F(rv.Int()), true
	}

	return convert[float64, F](rv.Float()), true
}

// convert is T(v) with float to integer conversions defined for every input:
// NaN becomes 0, values outside the int32 range (int64 for 64-bit targets)
// saturate, and 8 and 16-bit targets truncate the saturated int32.
func convert[F, T number](v F) T {
	if isFloat[F]() && !isFloat[T]() {
		return floatToInt[T](float64(v))
	}

	return T(v)
}

func isFloat[T number]() bool {
	half := 0.5
	return T(half) != 0
}

func floatToInt[T number](f float64) T {
	if f != f {
		return 0
	}

	var zero T
	if unsafe.Sizeof(zero) == 8 {
		lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
		switch {
		case f >= 0x1p63:
			return T(hi)
		case f < -0x1p63:
			return T(lo)
		default:
			return T(int64(f))
		}
	}

	var i int32
	switch {
	case f >= 0x1p31:
		i = math.MaxInt32
	case f < -0x1p31:
		i = math.MinInt32
	default:
		i = int32(f)
	}

	return T(i)
}

// unboxExact accepts only values of the same kind as F.
func unboxExact[F exact](v any) (F, bool) {
	if x, ok := v.(F); ok {
		return x, true
	}

	var zero F
	rt := reflect.TypeOf(zero)

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != rt.Kind() {
		return zero, false
	}

	return rv.Convert(rt).Interface().(F), true
}

func storeReflect(ft reflect.Type, loc locator, reject func(any) error) func(any, any) error {
	nillable := isNillable(ft)

	return func(obj any, v any) error {
		ptr, err := loc(obj)
		if err != nil {
			return err
		}

		dst := reflect.NewAt(ft, ptr).Elem()
		if v == nil {
			if !nillable {
				return reject(v)
			}

			dst.SetZero()

			return nil
		}

		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(ft) {
			return reject(v)
		}

		dst.Set(rv)

		return nil
	}
}

func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
