// Package catalog keeps named fixtures on top of the fixture engine, so test
// suites and the fixture server can ask for "user" or "paid-invoice" instead
// of spelling out types and overrides at every call site.
//
// # Lifecycle
//
//  1. Create: c := catalog.New(fixture.New())
//  2. Register: catalog.Load(c, &BillingFixtures{}, &UserFixtures{})
//  3. Build: v, err := c.Make("invoice")
//
// Registration is guarded by a lock, but fixtures should be registered before
// concurrent Make calls start: overrides given later only apply to builds
// that start afterwards.
//
// # Fixtures
//
//	// Built on every Make
//	catalog.Register[*billing.Invoice](c, "invoice")
//	c.Bind("invoice", reflect.TypeFor[*billing.Invoice]())
//
//	// Built on the first Make, the same value afterwards
//	catalog.RegisterShared[*app.FixedClock](c, "clock")
//
//	// Pre-built value
//	c.Instance("admin", &app.User{Name: "root"})
//
//	// Alias
//	c.Alias("user", "customer")
//
// # Resolving
//
//	raw, err := c.Make("invoice")
//	inv, err := catalog.Resolve[*billing.Invoice](c, "invoice")
//
// # Contextual overrides
//
// Implementations given for one fixture are only used while building it;
// they feed a fixture.Cache derived from the catalog's builder.
//
//	c.When("invoice").Give(billing.StatusPaid, fixedClock{})
//
// # Tags
//
//	c.Tag([]string{"user", "invoice"}, "checkout")
//	all, err := c.Tagged("checkout") // map[string]any
//
// # Extend
//
// Extenders run on every fresh build. A held value (an Instance, or a Shared
// fixture once made) is extended once and then returned as is.
//
//	c.Extend("user", func(v any) any {
//	    u := v.(*app.User)
//	    u.Email = "dummy@example.com"
//	    return u
//	})
package catalog
