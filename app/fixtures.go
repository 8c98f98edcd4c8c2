// Package app holds the demo domain served by the fixtured binary: a small
// shop with users, addresses and orders.
package app

import (
	"fmt"
	"time"

	"github.com/km-arc/go-fixture/framework/catalog"
	"github.com/km-arc/go-fixture/framework/providers"
)

// ── Domain ────────────────────────────────────────────────────────────────────

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusShipped Status = "shipped"
)

type Address struct {
	Street  string `json:"street" yaml:"street"`
	City    string `json:"city" yaml:"city"`
	Zip     string `json:"zip" yaml:"zip"`
	Country string `json:"country" yaml:"country"`
}

type User struct {
	ID      int                 `json:"id" yaml:"id"`
	Name    string              `json:"name" yaml:"name"`
	Email   string              `json:"email" yaml:"email"`
	Admin   bool                `json:"admin" yaml:"admin"`
	Home    Address             `json:"home" yaml:"home"`
	Roles   map[string]struct{} `json:"roles" yaml:"roles"`
	Profile map[string]string   `json:"profile" yaml:"profile"`
}

type LineItem struct {
	SKU      string  `json:"sku" yaml:"sku"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Price    float64 `json:"price" yaml:"price"`
}

// Clock is satisfied by anything that can tell the time.
type Clock interface {
	Now() time.Time
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

type Order struct {
	Number   string     `json:"number" yaml:"number"`
	Customer *User      `json:"customer" yaml:"customer"`
	Items    []LineItem `json:"items" yaml:"items"`
	Status   Status     `json:"status" yaml:"status"`
	PlacedAt time.Time  `json:"placedAt" yaml:"placedAt"`
}

// NewOrder stamps a pending order with the clock's time.
func NewOrder(number string, customer *User, clock Clock) *Order {
	return &Order{
		Number:   number,
		Customer: customer,
		Status:   StatusPending,
		PlacedAt: clock.Now(),
	}
}

// Total sums the order's line items.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.Price
	}
	return total
}

// String is used in log lines.
func (o *Order) String() string {
	return fmt.Sprintf("order %s (%s)", o.Number, o.Status)
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

// ShopFixtures registers the shop's fixtures:
//
//	user      *User (alias "customer")
//	admin     *User with Admin set
//	address   Address
//	order     *Order via NewOrder, clocked at providers.Epoch
//	paid      like order, with StatusPaid
//
// and tags them "checkout" (user, order) and "all".
type ShopFixtures struct {
	catalog.BaseProvider
}

func (ShopFixtures) Register(c *catalog.Catalog) {
	c.Builder().Constructor(NewOrder)

	catalog.Register[*User](c, "user")
	catalog.Register[*User](c, "admin")
	catalog.Register[Address](c, "address")
	catalog.Register[*Order](c, "order")
	catalog.Register[*Order](c, "paid")

	c.Alias("user", "customer")

	c.Extend("admin", func(v any) any {
		u := v.(*User)
		u.Admin = true
		return u
	})

	epoch := FixedClock{At: providers.Epoch}
	c.When("order").Give(epoch)
	c.When("paid").Give(epoch)
	c.Extend("paid", func(v any) any {
		o := v.(*Order)
		o.Status = StatusPaid
		return o
	})
}

func (ShopFixtures) Boot(c *catalog.Catalog) {
	c.Tag([]string{"user", "order"}, "checkout")
	c.Tag(c.Names(), "all")
}
