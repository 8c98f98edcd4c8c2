package providers

import (
	"math/big"
	"net/url"
	"time"

	"github.com/km-arc/go-fixture/framework/catalog"
)

// Epoch is the instant every fixture time.Time is set to.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ── StdlibProvider ────────────────────────────────────────────────────────────

// StdlibProvider teaches the builder the standard library types that hide
// their state in unexported fields and so have no implicit constructor.
//
// Constructors registered:
//   - time.Time       → Epoch
//   - *time.Location  → time.UTC
//   - *url.Userinfo   → url.User("dummy")
//   - *big.Int        → 1
//   - *big.Float      → 1.0
//
// Fixtures bound:
//   - "time" → time.Time
//   - "url"  → *url.URL
type StdlibProvider struct {
	catalog.BaseProvider
}

func (p *StdlibProvider) Register(c *catalog.Catalog) {
	c.Builder().
		Constructor(func() time.Time { return Epoch }).
		Constructor(func() *time.Location { return time.UTC }).
		Constructor(func(name string) *url.Userinfo { return url.User(name) }).
		Constructor(func(n int64) *big.Int { return big.NewInt(n) }).
		Constructor(func(f float64) *big.Float { return big.NewFloat(f) })

	catalog.Register[time.Time](c, "time")
	catalog.Register[*url.URL](c, "url")
}

// ── Defaults ──────────────────────────────────────────────────────────────────

// Defaults returns the providers every application loads before its own.
func Defaults() []catalog.Provider {
	return []catalog.Provider{&StdlibProvider{}}
}
