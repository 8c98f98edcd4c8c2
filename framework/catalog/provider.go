package catalog

// ── Provider interface ────────────────────────────────────────────────────────

// Provider registers a package's fixtures into a catalog. Test-support
// packages export one so suites and the fixture server share definitions.
//
//	type BillingFixtures struct{ catalog.BaseProvider }
//
//	func (BillingFixtures) Register(c *catalog.Catalog) {
//	    catalog.Register[*billing.Invoice](c, "invoice")
//	    c.When("invoice").Give(billing.StatusPaid)
//	}
type Provider interface {
	// Register binds fixtures into the catalog.
	Register(c *Catalog)

	// Boot is called after every provider passed to Load has registered,
	// so it may rely on other providers' fixtures (tags spanning packages).
	Boot(c *Catalog)
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
//
//	type MyFixtures struct{ catalog.BaseProvider }
//	func (MyFixtures) Register(c *catalog.Catalog) { ... }
type BaseProvider struct{}

func (BaseProvider) Boot(*Catalog) {}

// ── Load ──────────────────────────────────────────────────────────────────────

// Load registers every provider, then boots them in the same order.
// A provider passed twice is only loaded once.
func Load(c *Catalog, providers ...Provider) {
	seen := make(map[Provider]bool, len(providers))
	loaded := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if seen[p] {
			continue
		}
		seen[p] = true
		p.Register(c)
		loaded = append(loaded, p)
	}
	for _, p := range loaded {
		p.Boot(c)
	}
}
