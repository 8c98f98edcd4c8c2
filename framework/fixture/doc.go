// Package fixture builds "good enough" instances of arbitrary types for tests.
//
// Primitive-like values get fixed placeholders and everything else is built
// recursively, so a test can ask for a fully populated object graph without
// writing it out by hand. The values mean nothing; they only have to exist.
//
// # Creating values
//
//	b := fixture.New()
//	user, err := fixture.Create[*app.User](b)
//	// user.Name == "dummy", user.Age == 1, user.Tags == []string{}
//
// # Placeholders
//
// Every constructor parameter whose type exactly matches a placeholder
// descriptor gets the fixed value below; nothing else is consulted for it.
//
//	int, int8 … int64, uint … uint64    1
//	float32, float64                   1.0
//	bool                               false
//	string                             "dummy"
//	any                                nil (absent)
//	[]T, [N]T                          empty slice, zero array
//	map[K]struct{}, map[K]V            empty set, empty map
//	iter.Seq[V], iter.Seq2[K, V]       empty sequence
//
// Defined types such as `type Color int` do not match exactly. They are built
// like any other type, and unless something is registered for them they end
// up with the enum marker: the kind placeholder converted to the type
// (Color(1)). Go records no list of a type's constants, so no declared
// constant is ever picked; register one with Using when a test needs it.
//
// # Constructors
//
// A type's constructors are the functions registered for it with
// Builder.Constructor, in registration order, followed by the implicit one:
//
//   - a struct whose fields are all exported: a literal over those fields
//   - a pointer *T: the address of a freshly built T
//   - a placeholder-describable or defined basic/container type: its placeholder
//
// Only the first constructor is ever used. A type with none (a struct with
// unexported fields, a channel, a func) fails with ErrNoConstructor.
//
//	b := fixture.New().Constructor(billing.NewInvoice)
//
// # Interfaces and implementations
//
// A bare Builder builds an interface type only from a constructor registered
// for that interface or, failing that, from the first type added with
// AddClass that is assignable to it; otherwise it fails with
// ErrUnresolvableAbstractType. Using upgrades it to a Cache holding
// pre-built implementations; the first one assignable to a requested type is
// returned as is. That applies to concrete types too, so a registered value
// always wins over constructing one.
//
//	c := b.Using(fakeClock{}, &memStore{})
//	svc, err := fixture.Create[*billing.Service](c)
//
// # Errors
//
// The first failure at any depth aborts the whole Create. Errors returned by
// a constructor function come back unchanged; the engine's own failures
// match ErrUnresolvableAbstractType, ErrNoConstructor or ErrDepthExceeded
// under errors.Is.
//
// # Recursion
//
// Recursion is unbounded by default. A self-referential type with nothing to
// cut the cycle recurses until the stack runs out; WithMaxDepth turns that
// into ErrDepthExceeded.
package fixture
