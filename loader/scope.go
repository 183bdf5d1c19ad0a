package loader

import (
	"reflect"
	"sync"
)

// Scope is a host environment that owns a set of types. Generated classes
// resolve the types they use through the scope of their context.
type Scope struct {
	name string
	open bool

	mu    sync.RWMutex
	types map[string]reflect.Type
}

// System is the process-wide scope. It resolves every type and is never
// collected, so registries hold its context strongly.
var System = newScope("system", true)

// NewScope returns a closed scope that resolves only predeclared types,
// unnamed types built from resolvable types, and the declared types.
func NewScope(name string, types ...reflect.Type) *Scope {
	s := newScope(name, false)
	s.Declare(types...)

	return s
}

func newScope(name string, open bool) *Scope {
	return &Scope{
		name:  name,
		open:  open,
		types: make(map[string]reflect.Type),
	}
}

func (s *Scope) Name() string {
	return s.name
}

func (s *Scope) String() string {
	return "scope(" + s.name + ")"
}

// Declare makes types resolvable in s. Pointer types declare their element.
func (s *Scope) Declare(types ...reflect.Type) {
	if s.open {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range types {
		for t != nil && t.Kind() == reflect.Pointer && t.Name() == "" {
			t = t.Elem()
		}
		if t == nil {
			continue
		}

		s.types[TypeName(t)] = t
	}
}

// Resolve reports whether t is visible in s.
func (s *Scope) Resolve(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if s.open {
		return true
	}

	if t.Name() != "" && t.PkgPath() != "" {
		got, ok := s.lookup(TypeName(t))
		return ok && got == t
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return s.Resolve(t.Elem())
	case reflect.Map:
		return s.Resolve(t.Key()) && s.Resolve(t.Elem())
	default:
		return true
	}
}

func (s *Scope) lookup(name string) (reflect.Type, bool) {
	if s.open {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.types[name]

	return t, ok
}

// TypeName returns the fully qualified name of t, or its literal form for
// unnamed and predeclared types.
func TypeName(t reflect.Type) string {
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}
