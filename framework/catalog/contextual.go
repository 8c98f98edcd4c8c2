package catalog

// ContextualBuilder implements the fluent contextual override API.
//
//	c.When("order").Give(fixedClock{}, &memStore{})
type ContextualBuilder struct {
	catalog *Catalog
	name    string
}

// Give registers implementations used only while building this fixture.
// They are consulted ahead of the catalog builder's constructors, in order,
// first assignable wins.
func (b *ContextualBuilder) Give(implementations ...any) *ContextualBuilder {
	b.catalog.give(b.name, implementations)
	return b
}

// GiveValue is Give for a single value, for call sites that read better
// with one.
//
//	c.When("invoice").GiveValue(billing.StatusPaid)
func (b *ContextualBuilder) GiveValue(value any) *ContextualBuilder {
	return b.Give(value)
}
