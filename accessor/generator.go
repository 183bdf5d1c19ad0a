package accessor

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"fastreflect/internal/emit"
	"fastreflect/internal/logging"
	"fastreflect/loader"
	"fastreflect/primitive"
)

const DefaultNamePrefix = "FieldAccessor"

// ids numbers generated units across all generators so names never repeat
// within a process.
var ids atomic.Uint64

// Generator creates accessors and defines them in a registry.
type Generator struct {
	registry *loader.Registry
	prefix   string
	log      zerolog.Logger
}

type Option func(*Generator)

func WithRegistry(r *loader.Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithNamePrefix replaces DefaultNamePrefix in generated unit names.
func WithNamePrefix(prefix string) Option {
	return func(g *Generator) {
		g.prefix = prefix
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		registry: loader.Default,
		prefix:   DefaultNamePrefix,
		log:      logging.Logger(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.registry == nil {
		g.registry = loader.Default
	}

	if g.prefix == "" {
		g.prefix = DefaultNamePrefix
	}

	return g
}

var defaultGenerator = NewGenerator()

// Create generates an accessor for f with the default generator.
func Create(f *Field) (Accessor, error) {
	return defaultGenerator.Create(f)
}

// Create generates, defines and instantiates a new unit for f. Every call
// produces a unit with a fresh name; nothing is cached by field.
func (g *Generator) Create(f *Field) (Accessor, error) {
	if f == nil {
		return nil, ErrNilField
	}

	name := fmt.Sprintf("%s_%d_%s_%s", g.prefix, ids.Add(1)-1, ownerName(f), f.name)

	acc, err := g.create(name, f)
	if err != nil {
		g.log.Warn().Err(err).Str("field", f.String()).Str("unit", name).Msg("accessor.create.failed")
		return nil, &ConstructionError{Name: name, Err: err}
	}

	g.log.Debug().Str("field", f.String()).Str("unit", name).Str("scope", f.scope.Name()).Msg("accessor.create")

	return acc, nil
}

func (g *Generator) create(name string, f *Field) (Accessor, error) {
	class, err := g.registry.Define(f.scope, name, program(name, f))
	if err != nil {
		return nil, err
	}

	inst, err := class.New(f)
	if err != nil {
		return nil, err
	}

	obj, ok := inst.(*emit.Object)
	if !ok {
		return nil, fmt.Errorf("%s instantiated %T: %w", name, inst, emit.ErrVerify)
	}

	return newUnit(obj), nil
}

// Listing renders the program Create would generate for f, without defining
// it.
func Listing(f *Field) (string, error) {
	if f == nil {
		return "", ErrNilField
	}

	return emit.Listing(draft(f))
}

// ExportYAML describes the program Create would generate for f as a YAML
// manifest.
func ExportYAML(f *Field) ([]byte, error) {
	if f == nil {
		return nil, ErrNilField
	}

	return emit.ExportYAML(draft(f))
}

// ExportJSON is ExportYAML with JSON output.
func ExportJSON(f *Field) ([]byte, error) {
	if f == nil {
		return nil, ErrNilField
	}

	return emit.ExportJSON(draft(f))
}

// draft is the program of f under an unnumbered name.
func draft(f *Field) *emit.Program {
	return program(DefaultNamePrefix+"_"+ownerName(f)+"_"+f.name, f)
}

func ownerName(f *Field) string {
	if n := f.owner.Name(); n != "" {
		return n
	}

	return "struct"
}

// program emits the full unit for f: one getter and one setter per sort.
// Entries the field cannot serve throw.
func program(name string, f *Field) *emit.Program {
	var p *emit.Program
	if f.static {
		p = emit.NewStatic(name, f.owner, f.name, f.typ, f.addr)
	} else {
		p = emit.NewInstance(name, f.owner, f.name, f.typ, f.offset)
	}

	for _, access := range primitive.Sorts {
		getter(p.Getter(access), f, access)
	}

	for _, access := range primitive.Sorts {
		setter(p.Setter(access), f, access)
	}

	return p
}

func getter(b *emit.MethodBuilder, f *Field, access primitive.SortEnum) {
	if !primitive.IsAccessible(f.sort, access) {
		b.Throw()
		return
	}

	if f.static {
		b.GetStatic()
	} else {
		b.LoadReceiver().CheckReceiver().GetField()
	}

	switch {
	case access == primitive.SortObject && f.sort.IsPrimitive():
		b.Box(f.sort)
	case access != f.sort:
		b.Convert(f.sort, access)
	}

	b.Return()
}

func setter(b *emit.MethodBuilder, f *Field, access primitive.SortEnum) {
	if !primitive.IsAccessible(f.sort, access) {
		b.Throw()
		return
	}

	if !f.static {
		b.LoadReceiver().CheckReceiver()
	}

	b.LoadValue()

	switch {
	case access == primitive.SortObject && f.sort.IsPrimitive():
		b.Unbox(f.sort)
	case access == primitive.SortObject:
		b.CheckCast()
	case access != f.sort:
		b.Convert(access, f.sort)
	}

	if f.static {
		b.PutStatic()
	} else {
		b.PutField()
	}

	b.Return()
}
