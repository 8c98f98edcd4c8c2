package fixture

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Resolver supplies pre-built implementations to a construction. The engine
// asks it before falling back to constructors.
//
// Builder is the variant that never has implementations; Cache is the
// registry-backed one.
type Resolver interface {
	// HasCustomImpl reports whether t should be taken from LookupImpl
	// instead of being constructed, even when t is concrete.
	HasCustomImpl(t reflect.Type) bool
	// LookupImpl returns a pre-built value assignable to t.
	LookupImpl(t reflect.Type) (reflect.Value, bool)
}

// Factory is anything that can build a value of a runtime type.
// Both *Builder and *Cache implement it.
type Factory interface {
	CreateType(t reflect.Type) (reflect.Value, error)
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger resolution steps are traced to at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithMaxDepth aborts construction with ErrDepthExceeded once nesting goes
// deeper than n. Zero, the default, means unbounded: a self-referential type
// without a placeholder or implementation on its cycle then recurses until
// the stack is exhausted.
func WithMaxDepth(n int) Option {
	return func(b *Builder) { b.maxDepth = n }
}

// Builder constructs placeholder-filled instances of arbitrary types.
//
//	b := fixture.New()
//	user, err := fixture.Create[*app.User](b)
//
// Configure it fully before the first Create: it has no internal locking.
type Builder struct {
	interests    []reflect.Type
	ctors        map[reflect.Type][]Constructor
	placeholders *PlaceholderMap
	logger       *slog.Logger
	maxDepth     int
}

// New creates a Builder with the default placeholders and no interests.
func New(opts ...Option) *Builder {
	b := &Builder{
		ctors:        make(map[reflect.Type][]Constructor),
		placeholders: DefaultPlaceholders(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// clone copies configuration so a Cache never shares slices with its parent.
func (b *Builder) clone() *Builder {
	c := &Builder{
		interests:    append([]reflect.Type(nil), b.interests...),
		ctors:        make(map[reflect.Type][]Constructor, len(b.ctors)),
		placeholders: b.placeholders,
		logger:       b.logger,
		maxDepth:     b.maxDepth,
	}
	for t, cs := range b.ctors {
		c.ctors[t] = append([]Constructor(nil), cs...)
	}
	return c
}

// ── Configuration ─────────────────────────────────────────────────────────────

// AddType registers t into the interest set. When an interface type has no
// registered implementation, the first interest assignable to it is built.
func (b *Builder) AddType(t reflect.Type) *Builder {
	b.interests = append(b.interests, t)
	return b
}

// AddClass is the generic form of AddType.
//
//	fixture.AddClass[*store.FileStore](b)
func AddClass[T any](b *Builder) *Builder {
	return b.AddType(reflect.TypeFor[T]())
}

// Interests returns a copy of the interest set in registration order.
func (b *Builder) Interests() []reflect.Type {
	return append([]reflect.Type(nil), b.interests...)
}

// Constructor registers fn, a `func(P...) T` or `func(P...) (T, error)`, as
// a constructor for T. Constructors for the same T are tried in registration
// order, ahead of the implicit one; only the first is ever used. When T is an
// interface, an implementation registered with Using still wins over fn.
//
// It panics if fn does not have one of those shapes.
func (b *Builder) Constructor(fn any) *Builder {
	c, err := newFuncConstructor(fn)
	if err != nil {
		panic(err)
	}
	b.ctors[c.Type] = append(b.ctors[c.Type], c)
	return b
}

// Using returns a Cache that starts from a copy of this builder's
// configuration and resolves types from objs first.
func (b *Builder) Using(objs ...any) *Cache {
	return newCache(b.clone()).Using(objs...)
}

// ── Resolver (default variant) ────────────────────────────────────────────────

// HasCustomImpl always reports false: a bare Builder has no implementations.
func (b *Builder) HasCustomImpl(reflect.Type) bool { return false }

// LookupImpl never finds anything on a bare Builder.
func (b *Builder) LookupImpl(reflect.Type) (reflect.Value, bool) { return reflect.Value{}, false }

// ── Construction ──────────────────────────────────────────────────────────────

// CreateType builds a value of t.
func (b *Builder) CreateType(t reflect.Type) (reflect.Value, error) {
	return b.internalCreate(t, b, 0)
}

// BestConstructor returns the first constructor for t: registered functions
// in registration order, then the implicit one. No other preference applies.
func (b *Builder) BestConstructor(t reflect.Type) (Constructor, error) {
	if cs := b.ctors[t]; len(cs) > 0 {
		return cs[0], nil
	}
	if c, ok := implicitConstructor(t); ok {
		return c, nil
	}
	return Constructor{}, noConstructor(t)
}

// CreateInstance resolves every parameter of ctor and invokes it.
func (b *Builder) CreateInstance(ctor Constructor) (reflect.Value, error) {
	return b.createInstance(ctor, b, 0)
}

func (b *Builder) internalCreate(t reflect.Type, r Resolver, depth int) (reflect.Value, error) {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return reflect.Value{}, depthExceeded(t, depth, b.maxDepth)
	}

	if t.Kind() == reflect.Interface || r.HasCustomImpl(t) {
		return b.getImpl(t, r, depth)
	}

	ctor, err := b.BestConstructor(t)
	if err != nil {
		return reflect.Value{}, err
	}
	b.logger.Debug("fixture: constructing", "type", t.String(), "constructor", ctor.String(), "depth", depth)
	return b.createInstance(ctor, r, depth)
}

func (b *Builder) createInstance(ctor Constructor, r Resolver, depth int) (reflect.Value, error) {
	args := make([]reflect.Value, len(ctor.Params))
	for i, p := range ctor.Params {
		if v, ok := b.placeholders.Lookup(p); ok {
			args[i] = v
			continue
		}
		v, err := b.internalCreate(p, r, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}
	return ctor.invoke(args, b.placeholders)
}

// getImpl satisfies an interface or overridden type: a registered
// implementation first, then a constructor registered for t itself, then the
// first assignable interest.
func (b *Builder) getImpl(t reflect.Type, r Resolver, depth int) (reflect.Value, error) {
	if v, ok := r.LookupImpl(t); ok {
		b.logger.Debug("fixture: using registered implementation", "type", t.String(), "impl", v.Type().String())
		return as(v, t), nil
	}

	if cs := b.ctors[t]; t.Kind() == reflect.Interface && len(cs) > 0 {
		b.logger.Debug("fixture: constructing", "type", t.String(), "constructor", cs[0].String(), "depth", depth)
		v, err := b.createInstance(cs[0], r, depth)
		if err != nil {
			return reflect.Value{}, err
		}
		return as(v, t), nil
	}

	for _, candidate := range b.interests {
		if candidate == t || !candidate.AssignableTo(t) {
			continue
		}
		b.logger.Debug("fixture: building interest", "type", t.String(), "candidate", candidate.String())
		v, err := b.internalCreate(candidate, r, depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		return as(v, t), nil
	}
	return reflect.Value{}, unresolvable(t)
}

// as returns v held in a value of exactly type t.
func as(v reflect.Value, t reflect.Type) reflect.Value {
	if v.Type() == t {
		return v
	}
	out := reflect.New(t).Elem()
	out.Set(v)
	return out
}

// ── Generic entry points ──────────────────────────────────────────────────────

// Create builds a T with f. On failure it returns the zero T and the first
// error met at any depth.
//
//	order, err := fixture.Create[billing.Order](b.Using(fixedClock))
func Create[T any](f Factory) (T, error) {
	var zero T
	v, err := f.CreateType(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	out, _ := v.Interface().(T) // nil interface values stay the zero T
	return out, nil
}

// MustCreate is like Create but panics on error. Intended for tests.
func MustCreate[T any](f Factory) T {
	v, err := Create[T](f)
	if err != nil {
		panic(fmt.Sprintf("fixture: MustCreate[%s]: %v", reflect.TypeFor[T](), err))
	}
	return v
}
