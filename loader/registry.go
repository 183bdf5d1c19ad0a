package loader

import (
	"fmt"
	"runtime"
	"sync"
	"weak"

	"github.com/rs/zerolog"

	"fastreflect/internal/logging"
)

// Registry maps scopes to their contexts without keeping scopes alive.
// System never goes away and is not weakly referenceable when statically
// allocated, so its context lives outside the map.
type Registry struct {
	mu       sync.Mutex
	contexts map[weak.Pointer[Scope]]*Context
	system   *Context
	log      zerolog.Logger
}

type Option func(*Registry)

func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// Default is the process-wide registry used by the accessor generator.
var Default = NewRegistry()

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		contexts: make(map[weak.Pointer[Scope]]*Context),
		log:      logging.Logger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.system = newPinnedContext(System, r.log)

	return r
}

// Define materializes code as name within the context of scope.
//
// Definitions of the same name in the same scope are serialized; the first
// wins and every later one fails with ErrDuplicateDefinition. Link failures
// leave the name undefined.
//
// A defined name stays recorded for the life of its scope. The System
// context therefore keeps one entry per name it ever defined; per-name locks
// are released once no definition of the name is in flight.
func (r *Registry) Define(scope *Scope, name string, code Code) (*Class, error) {
	if scope == nil {
		return nil, ErrNilScope
	}

	if name == "" || code == nil {
		return nil, fmt.Errorf("%q in %s: %w", name, scope, ErrInvalidDefinition)
	}

	ctx := r.contextFor(scope)

	class, err := ctx.define(scope, name, code)
	if err != nil {
		r.log.Debug().Err(err).Str("scope", scope.Name()).Str("name", name).Msg("loader.define.failed")
		return nil, err
	}

	r.log.Debug().Str("scope", scope.Name()).Str("name", name).Msg("loader.define")

	return class, nil
}

// Defined reports whether name is known to the context of scope. It does not
// create a context.
func (r *Registry) Defined(scope *Scope, name string) bool {
	if scope == nil {
		return false
	}

	if scope == System {
		return r.system.Resolve(name)
	}

	r.mu.Lock()
	ctx, ok := r.contexts[weak.Make(scope)]
	r.mu.Unlock()

	return ok && ctx.Resolve(name)
}

// Contexts returns the number of live contexts of collectable scopes. The
// System context is not counted.
func (r *Registry) Contexts() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.contexts)
}

func (r *Registry) contextFor(scope *Scope) *Context {
	if scope == System {
		return r.system
	}

	key := weak.Make(scope)

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx, ok := r.contexts[key]; ok {
		return ctx
	}

	ctx := newContext(scope, r.log)
	r.contexts[key] = ctx
	runtime.AddCleanup(scope, r.evict, key)

	r.log.Debug().Str("scope", scope.Name()).Msg("loader.context.created")

	return ctx
}

func (r *Registry) evict(key weak.Pointer[Scope]) {
	r.mu.Lock()
	ctx, ok := r.contexts[key]
	delete(r.contexts, key)
	r.mu.Unlock()

	if ok {
		r.log.Debug().Str("scope", ctx.scopeName).Int("names", len(ctx.Names())).Msg("loader.context.evicted")
	}
}
