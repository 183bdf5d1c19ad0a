package loader

import (
	"reflect"
)

// Constructor instantiates a linked class.
type Constructor func(args ...any) (any, error)

// Code is an unlinked unit handed to Registry.Define.
type Code interface {
	// Requires lists the types the code needs to resolve through its scope.
	Requires() []reflect.Type
	// Link verifies the code and binds it into a constructor. It runs under
	// the per-name lock of ctx and must not call back into the registry.
	Link(ctx *Context) (Constructor, error)
}

// Class is a materialized unit. It keeps its context and scope reachable.
type Class struct {
	name  string
	ctx   *Context
	scope *Scope
	ctor  Constructor
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) Context() *Context {
	return c.ctx
}

func (c *Class) Scope() *Scope {
	return c.scope
}

// New runs the class constructor.
func (c *Class) New(args ...any) (any, error) {
	return c.ctor(args...)
}
