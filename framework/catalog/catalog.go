package catalog

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	fxerrors "github.com/km-arc/go-fixture/framework/errors"
	"github.com/km-arc/go-fixture/framework/fixture"
)

// ── Entry types ───────────────────────────────────────────────────────────────

// entry is one named fixture: either a type to build or a pre-built instance.
type entry struct {
	typ      reflect.Type
	instance any
	built    bool // instance is set
	shared   bool // keep the first build
}

// Extender rewrites a freshly built fixture before it is returned.
type Extender func(fixture any) any

// ErrNotFound matches the errors returned for unregistered fixtures and tags.
var ErrNotFound = fxerrors.New(fxerrors.ErrCodeNotFound, "not found")

// ── Catalog ───────────────────────────────────────────────────────────────────

// Catalog is a named registry of fixtures built by a shared fixture.Builder.
//
// It supports:
//   - Bind / Register / Shared / Instance / Alias
//   - Make / Resolve (generic)
//   - Tags (group several fixtures under one name)
//   - Extend (decorate built fixtures)
//   - Contextual overrides (when building X, use these implementations)
//   - Resolved callbacks
type Catalog struct {
	mu sync.RWMutex

	builder *fixture.Builder

	// name → entry
	entries map[string]*entry

	// alias → name (canonical key)
	aliases map[string]string

	// name → extenders
	extenders map[string][]Extender

	// tag → []name
	tags map[string][]string

	// name → implementations used only when building that fixture
	contextual map[string][]any

	// name → cache built from builder + contextual, invalidated on change
	caches map[string]*fixture.Cache

	// resolved callbacks: []func(name, fixture)
	afterResolving []func(string, any)
}

// New creates an empty catalog whose fixtures are built by b.
func New(b *fixture.Builder) *Catalog {
	if b == nil {
		b = fixture.New()
	}
	return &Catalog{
		builder:    b,
		entries:    make(map[string]*entry),
		aliases:    make(map[string]string),
		extenders:  make(map[string][]Extender),
		tags:       make(map[string][]string),
		contextual: make(map[string][]any),
		caches:     make(map[string]*fixture.Cache),
	}
}

// Builder returns the builder fixtures are made with. Constructors and
// interests added to it reach fixtures that have not been made yet; register
// them before the first Make.
func (c *Catalog) Builder() *fixture.Builder { return c.builder }

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a fixture built fresh on every Make.
//
//	c.Bind("user", reflect.TypeFor[*app.User]())
func (c *Catalog) Bind(name string, t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.canonical(name)] = &entry{typ: t}
}

// Register is the generic form of Bind.
//
//	catalog.Register[*app.User](c, "user")
func Register[T any](c *Catalog, name string) {
	c.Bind(name, reflect.TypeFor[T]())
}

// Shared registers a fixture built on the first Make and returned as the
// same value afterwards. Extenders run on that first build only.
//
//	c.Shared("clock", reflect.TypeFor[*app.FixedClock]())
func (c *Catalog) Shared(name string, t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.canonical(name)] = &entry{typ: t, shared: true}
}

// RegisterShared is the generic form of Shared.
func RegisterShared[T any](c *Catalog, name string) {
	c.Shared(name, reflect.TypeFor[T]())
}

// Instance registers a pre-built value, returned as is by Make. Extenders
// already registered for name are applied to it once, here.
//
//	c.Instance("admin", &app.User{Name: "root"})
func (c *Catalog) Instance(name string, instance any) {
	c.mu.RLock()
	key := c.canonical(name)
	exts := c.extenders[key]
	c.mu.RUnlock()

	for _, ext := range exts {
		instance = ext(instance)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{typ: reflect.TypeOf(instance), instance: instance, built: true}
}

// Alias registers an alternative name for a fixture.
//
//	c.Alias("user", "customer")
func (c *Catalog) Alias(name, alias string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == alias {
		panic(fmt.Sprintf("catalog: [%s] is aliased to itself", name))
	}
	c.aliases[alias] = c.canonical(name)
}

// ── Contextual overrides ──────────────────────────────────────────────────────

// When starts a contextual override chain for one fixture.
//
//	c.When("order").Give(fixedClock{}, &memStore{})
func (c *Catalog) When(name string) *ContextualBuilder {
	return &ContextualBuilder{catalog: c, name: name}
}

// give appends implementations for name and drops its cached Cache.
func (c *Catalog) give(name string, objs []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	c.contextual[key] = append(c.contextual[key], objs...)
	delete(c.caches, key)
}

// cacheFor returns the fixture.Cache used to build name.
func (c *Catalog) cacheFor(key string) *fixture.Cache {
	c.mu.RLock()
	cache, ok := c.caches[key]
	c.mu.RUnlock()
	if ok {
		return cache
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cache, ok := c.caches[key]; ok {
		return cache
	}
	cache = c.builder.Using(c.contextual[key]...)
	c.caches[key] = cache
	return cache
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates every fixture built for name. A fixture that already
// holds a value (an Instance, or a Shared one that was made) is decorated
// once, immediately; Make never runs extenders on it again.
//
//	c.Extend("user", func(v any) any {
//	    u := v.(*app.User)
//	    u.Email = "dummy@example.com"
//	    return u
//	})
func (c *Catalog) Extend(name string, fn Extender) {
	c.mu.Lock()
	key := c.canonical(name)
	c.extenders[key] = append(c.extenders[key], fn)
	e, ok := c.entries[key]
	if !ok || !e.built {
		c.mu.Unlock()
		return
	}
	current := e.instance
	c.mu.Unlock()

	extended := fn(current)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[key] == e {
		e.instance = extended
	}
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates several fixtures under a named group.
//
//	c.Tag([]string{"user", "order"}, "checkout")
func (c *Catalog) Tag(names []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], names...)
}

// Tags returns every tag name, sorted.
func (c *Catalog) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.tags))
	for t := range c.tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Tagged builds every fixture registered under a tag, keyed by name.
// The first failure aborts and is returned.
func (c *Catalog) Tagged(tag string) (map[string]any, error) {
	c.mu.RLock()
	names, ok := c.tags[tag]
	c.mu.RUnlock()
	if !ok {
		return nil, fxerrors.NewWithContext(fxerrors.ErrCodeNotFound,
			"unknown tag "+tag, map[string]any{"tag": tag})
	}

	result := make(map[string]any, len(names))
	for _, name := range names {
		v, err := c.Make(name)
		if err != nil {
			return nil, err
		}
		result[name] = v
	}
	return result, nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make builds the fixture registered as name. Instances, and Shared
// fixtures after their first build, are returned as held.
//
//	u, err := c.Make("user")
func (c *Catalog) Make(name string) (any, error) {
	c.mu.RLock()
	key := c.canonical(name)
	e, ok := c.entries[key]
	exts := c.extenders[key]
	var (
		built bool
		held  any
	)
	if ok {
		built, held = e.built, e.instance
	}
	c.mu.RUnlock()

	if !ok {
		return nil, fxerrors.NewWithContext(fxerrors.ErrCodeNotFound,
			"unknown fixture "+name, map[string]any{"name": name})
	}

	if built {
		c.fireAfterResolving(key, held)
		return held, nil
	}

	v, err := c.cacheFor(key).CreateType(e.typ)
	if err != nil {
		return nil, err
	}
	instance := v.Interface()
	for _, ext := range exts {
		instance = ext(instance)
	}

	if e.shared {
		instance = c.keep(key, e, instance)
	}

	c.fireAfterResolving(key, instance)
	return instance, nil
}

// keep stores the first build of a shared fixture. When two Makes race, the
// one that stores first wins and the other returns its value.
func (c *Catalog) keep(key string, e *entry, instance any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.built {
		return e.instance
	}
	e.instance = instance
	e.built = true
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if name (or an alias of it) is registered.
func (c *Catalog) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[c.canonical(name)]
	return ok
}

// TypeOf returns the type registered under name.
func (c *Catalog) TypeOf(name string) (reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[c.canonical(name)]
	if !ok {
		return nil, false
	}
	return e.typ, true
}

// Forget removes a fixture and everything attached to it.
func (c *Catalog) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(name)
	delete(c.entries, key)
	delete(c.extenders, key)
	delete(c.contextual, key)
	delete(c.caches, key)
}

// Names returns every registered fixture name, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// canonical resolves an alias to its canonical key (must hold mu).
func (c *Catalog) canonical(name string) string {
	if target, ok := c.aliases[name]; ok {
		return target
	}
	return name
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after every successful Make.
func (c *Catalog) AfterResolving(cb func(name string, fixture any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

func (c *Catalog) fireAfterResolving(name string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(name, instance)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	u, err := catalog.Resolve[*app.User](c, "user")
func Resolve[T any](c *Catalog, name string) (T, error) {
	var zero T
	instance, err := c.Make(name)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fxerrors.NewWithContext(fxerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("fixture [%s] is %T, not %s", name, instance, reflect.TypeFor[T]()),
			map[string]any{"name": name})
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Catalog, name string) T {
	v, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("catalog: MustResolve[%s]: %v", reflect.TypeFor[T](), err))
	}
	return v
}
