package fixture

import (
	"reflect"
)

// Cache is a Builder backed by an ordered registry of pre-built
// implementations. A registered value satisfies every type it is assignable
// to, and takes priority over constructors even for concrete types.
//
//	c := b.Using(fakeClock, &memStore{})
//	svc, err := fixture.Create[*billing.Service](c)
type Cache struct {
	base  *Builder
	impls []reflect.Value
}

func newCache(base *Builder) *Cache {
	return &Cache{base: base}
}

// Using appends objs to the registry and returns c. Nil entries are ignored.
func (c *Cache) Using(objs ...any) *Cache {
	for _, o := range objs {
		if o == nil {
			continue
		}
		c.impls = append(c.impls, reflect.ValueOf(o))
	}
	return c
}

// AddType registers t into the interest set.
func (c *Cache) AddType(t reflect.Type) *Cache {
	c.base.AddType(t)
	return c
}

// Constructor registers a constructor function; see Builder.Constructor.
func (c *Cache) Constructor(fn any) *Cache {
	c.base.Constructor(fn)
	return c
}

// Implementations returns the registered values in registration order.
func (c *Cache) Implementations() []any {
	out := make([]any, len(c.impls))
	for i, v := range c.impls {
		out[i] = v.Interface()
	}
	return out
}

// HasCustomImpl reports whether some registered value is assignable to t.
func (c *Cache) HasCustomImpl(t reflect.Type) bool {
	_, ok := c.LookupImpl(t)
	return ok
}

// LookupImpl returns the first registered value assignable to t.
func (c *Cache) LookupImpl(t reflect.Type) (reflect.Value, bool) {
	for _, v := range c.impls {
		if v.Type().AssignableTo(t) {
			return v, true
		}
	}
	return reflect.Value{}, false
}

// CreateType builds a value of t, consulting the registry first.
func (c *Cache) CreateType(t reflect.Type) (reflect.Value, error) {
	return c.base.internalCreate(t, c, 0)
}

// BestConstructor returns the first constructor for t.
func (c *Cache) BestConstructor(t reflect.Type) (Constructor, error) {
	return c.base.BestConstructor(t)
}

// CreateInstance resolves every parameter of ctor against the registry and
// invokes it.
func (c *Cache) CreateInstance(ctor Constructor) (reflect.Value, error) {
	return c.base.createInstance(ctor, c, 0)
}
