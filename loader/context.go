package loader

import (
	"fmt"
	"slices"
	"sync"
	"weak"

	"github.com/rs/zerolog"
)

// Context defines classes on behalf of one scope. It links back to the scope
// weakly so that the registry, which owns contexts, never pins a scope. The
// context of System holds it strongly instead.
type Context struct {
	parent    weak.Pointer[Scope]
	pinned    *Scope
	scopeName string
	log       zerolog.Logger

	lmu   sync.Mutex
	locks map[string]*nameLock

	mu    sync.RWMutex
	names map[string]struct{}
}

// nameLock serializes definitions of one name. refs counts holders and
// waiters; the lock leaves the context when it drops to zero.
type nameLock struct {
	sync.Mutex
	refs int
}

func newContext(parent *Scope, log zerolog.Logger) *Context {
	return &Context{
		parent:    weak.Make(parent),
		scopeName: parent.Name(),
		log:       log,
		locks:     make(map[string]*nameLock),
		names:     make(map[string]struct{}),
	}
}

// newPinnedContext is newContext for a scope that lives as long as the
// process.
func newPinnedContext(parent *Scope, log zerolog.Logger) *Context {
	return &Context{
		pinned:    parent,
		scopeName: parent.Name(),
		log:       log,
		locks:     make(map[string]*nameLock),
		names:     make(map[string]struct{}),
	}
}

// Parent returns the scope of the context, or nil once it has been collected.
func (c *Context) Parent() *Scope {
	if c.pinned != nil {
		return c.pinned
	}

	return c.parent.Value()
}

// Logger returns the logger of the registry that owns c.
func (c *Context) Logger() zerolog.Logger {
	return c.log
}

// Resolve is the forward resolution probe: it reports whether name was
// defined by c or names a type declared in the parent scope.
func (c *Context) Resolve(name string) bool {
	c.mu.RLock()
	_, ok := c.names[name]
	c.mu.RUnlock()

	if ok {
		return true
	}

	if parent := c.Parent(); parent != nil {
		_, ok = parent.lookup(name)
	}

	return ok
}

// Names returns the defined names in sorted order.
func (c *Context) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.names))
	for name := range c.names {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// lock acquires the lock of name, creating it on first use.
func (c *Context) lock(name string) *nameLock {
	c.lmu.Lock()
	l, ok := c.locks[name]
	if !ok {
		l = &nameLock{}
		c.locks[name] = l
	}
	l.refs++
	c.lmu.Unlock()

	l.Lock()

	return l
}

// unlock releases l and drops it once nobody holds or waits for it.
func (c *Context) unlock(name string, l *nameLock) {
	l.Unlock()

	c.lmu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, name)
	}
	c.lmu.Unlock()
}

func (c *Context) define(scope *Scope, name string, code Code) (*Class, error) {
	l := c.lock(name)
	defer c.unlock(name, l)

	if c.Resolve(name) {
		return nil, fmt.Errorf("%s in %s: %w", name, scope, ErrDuplicateDefinition)
	}

	for _, t := range code.Requires() {
		if !scope.Resolve(t) {
			return nil, fmt.Errorf("%s in %s: %s: %w", name, scope, t, ErrUnresolvedType)
		}
	}

	ctor, err := code.Link(c)
	if err != nil {
		return nil, fmt.Errorf("link %s: %w", name, err)
	}

	c.mu.Lock()
	c.names[name] = struct{}{}
	c.mu.Unlock()

	return &Class{
		name:  name,
		ctx:   c,
		scope: scope,
		ctor:  ctor,
	}, nil
}
