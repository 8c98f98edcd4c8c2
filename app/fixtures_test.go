package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-fixture/app"
	"github.com/km-arc/go-fixture/framework/catalog"
	"github.com/km-arc/go-fixture/framework/providers"
)

func shop(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New(nil)
	catalog.Load(c, append(providers.Defaults(), app.ShopFixtures{})...)
	return c
}

func TestUser(t *testing.T) {
	c := shop(t)

	u, err := catalog.Resolve[*app.User](c, "customer")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, "dummy", u.Name)
	assert.False(t, u.Admin)
	assert.Equal(t, app.Address{Street: "dummy", City: "dummy", Zip: "dummy", Country: "dummy"}, u.Home)
	assert.Empty(t, u.Roles)
	assert.NotNil(t, u.Profile)
}

func TestAdmin(t *testing.T) {
	u := catalog.MustResolve[*app.User](shop(t), "admin")
	assert.True(t, u.Admin)
}

func TestOrder(t *testing.T) {
	c := shop(t)

	o, err := catalog.Resolve[*app.Order](c, "order")
	require.NoError(t, err)
	assert.Equal(t, "dummy", o.Number)
	assert.Equal(t, app.StatusPending, o.Status)
	assert.True(t, providers.Epoch.Equal(o.PlacedAt))
	require.NotNil(t, o.Customer)
	assert.Zero(t, o.Total())
	assert.Equal(t, "order dummy (pending)", o.String())

	paid := catalog.MustResolve[*app.Order](c, "paid")
	assert.Equal(t, app.StatusPaid, paid.Status)
}

func TestOrder_Total(t *testing.T) {
	o := &app.Order{Items: []app.LineItem{{Quantity: 2, Price: 1.5}, {Quantity: 1, Price: 3}}}
	assert.Equal(t, 6.0, o.Total())
}

func TestTags(t *testing.T) {
	c := shop(t)
	assert.Equal(t, []string{"all", "checkout"}, c.Tags())

	checkout, err := c.Tagged("checkout")
	require.NoError(t, err)
	assert.Len(t, checkout, 2)

	all, err := c.Tagged("all")
	require.NoError(t, err)
	assert.Len(t, all, len(c.Names()))
}
