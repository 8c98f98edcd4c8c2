package fixture_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-fixture/framework/fixture"
)

type clock interface {
	Now() int
}

type fixedClock struct {
	T int
}

func (c fixedClock) Now() int { return c.T }

type otherClock struct{}

func (otherClock) Now() int { return -1 }

type scheduler struct {
	Clock clock
	Name  string
}

// ── Using ─────────────────────────────────────────────────────────────────────

func TestUsing_SatisfiesInterfaceField(t *testing.T) {
	c := fixture.New().Using(fixedClock{T: 7})

	got, err := fixture.Create[scheduler](c)
	require.NoError(t, err)
	assert.Equal(t, fixedClock{T: 7}, got.Clock)
	assert.Equal(t, "dummy", got.Name)
}

func TestUsing_FirstMatchWins(t *testing.T) {
	a := fixedClock{T: 1}
	c := fixture.New().Using(a, otherClock{})

	got := fixture.MustCreate[clock](c)
	assert.Equal(t, a, got)

	c = fixture.New().Using(otherClock{}, a)
	got = fixture.MustCreate[clock](c)
	assert.Equal(t, otherClock{}, got)
}

func TestUsing_DuplicatesAllowed(t *testing.T) {
	c := fixture.New().Using(fixedClock{T: 1}, fixedClock{T: 2})
	assert.Len(t, c.Implementations(), 2)
	assert.Equal(t, fixedClock{T: 1}, fixture.MustCreate[clock](c))
}

func TestUsing_RegistryIsReturnedAsIs(t *testing.T) {
	home := &address{Street: "Main"}
	c := fixture.New().Using(home)

	got := fixture.MustCreate[*address](c)
	assert.Same(t, home, got)
}

func TestUsing_ConcreteTypeBypassesConstructor(t *testing.T) {
	called := false
	b := fixture.New().Constructor(func() (address, error) {
		called = true
		return address{}, errBoom
	})
	c := b.Using(address{Street: "Main", Zip: 9})

	got, err := fixture.Create[person](c)
	require.NoError(t, err)
	assert.False(t, called, "constructor should not run when an implementation is registered")
	assert.Equal(t, address{Street: "Main", Zip: 9}, got.Home)
	require.NotNil(t, got.Work)
	assert.Equal(t, address{Street: "Main", Zip: 9}, *got.Work)
}

func TestUsing_OverridesEnumMarker(t *testing.T) {
	got := fixture.MustCreate[palette](fixture.New().Using(color(3)))
	assert.Equal(t, color(3), got.C)
	assert.Equal(t, level("dummy"), got.L)
}

func TestUsing_PlaceholderTypesAreNotOverridden(t *testing.T) {
	c := fixture.New().Using("custom")

	got := fixture.MustCreate[address](c)
	assert.Equal(t, "dummy", got.Street, "placeholders are consulted before implementations")
	assert.Equal(t, "custom", fixture.MustCreate[string](c))
}

func TestUsing_NilIgnored(t *testing.T) {
	c := fixture.New().Using(nil, fixedClock{})
	assert.Len(t, c.Implementations(), 1)
}

func TestUsing_FallsBackToInterests(t *testing.T) {
	b := fixture.AddClass[fixedClock](fixture.New())
	c := b.Using(address{})

	got := fixture.MustCreate[clock](c)
	assert.Equal(t, fixedClock{T: 1}, got)
}

func TestUsing_StillFailsWithoutMatch(t *testing.T) {
	c := fixture.New().Using(address{})

	_, err := fixture.Create[scheduler](c)
	require.ErrorIs(t, err, fixture.ErrUnresolvableAbstractType)
}

// ── Builder vs Cache ──────────────────────────────────────────────────────────

func TestBuilderUsing_ReturnsNewCache(t *testing.T) {
	b := fixture.New()
	c1 := b.Using(fixedClock{T: 1})
	c2 := b.Using(fixedClock{T: 2})

	assert.NotSame(t, c1, c2)
	assert.Equal(t, fixedClock{T: 1}, fixture.MustCreate[clock](c1))
	assert.Equal(t, fixedClock{T: 2}, fixture.MustCreate[clock](c2))
}

func TestCacheUsing_MutatesInPlace(t *testing.T) {
	c := fixture.New().Using()
	same := c.Using(fixedClock{T: 5})

	assert.Same(t, c, same)
	assert.Equal(t, fixedClock{T: 5}, fixture.MustCreate[clock](c))
}

func TestBuilderUsing_CopiesInterests(t *testing.T) {
	b := fixture.AddClass[fixedClock](fixture.New())
	c := b.Using()
	b.AddType(reflect.TypeFor[otherClock]())

	assert.Len(t, b.Interests(), 2)
	assert.Equal(t, fixedClock{T: 1}, fixture.MustCreate[clock](c))

	c.AddType(reflect.TypeFor[address]())
	assert.Len(t, b.Interests(), 2, "cache interests must not leak into the builder")
}

// ── HasCustomImpl ─────────────────────────────────────────────────────────────

func TestHasCustomImpl(t *testing.T) {
	b := fixture.New()
	c := b.Using(fixedClock{}, &address{})

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"interface implemented", reflect.TypeFor[clock](), true},
		{"exact concrete", reflect.TypeFor[fixedClock](), true},
		{"pointer registered", reflect.TypeFor[*address](), true},
		{"value of registered pointer", reflect.TypeFor[address](), false},
		{"unrelated", reflect.TypeFor[person](), false},
		{"empty interface", reflect.TypeFor[any](), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.HasCustomImpl(tt.typ))
			assert.False(t, b.HasCustomImpl(tt.typ), "a bare builder never has custom implementations")
		})
	}
}

func TestCache_CreateInstanceUsesRegistry(t *testing.T) {
	c := fixture.New().Using(fixedClock{T: 4})
	ctor, err := c.BestConstructor(reflect.TypeFor[scheduler]())
	require.NoError(t, err)

	v, err := c.CreateInstance(ctor)
	require.NoError(t, err)
	assert.Equal(t, fixedClock{T: 4}, v.Interface().(scheduler).Clock)
}

func TestCache_Constructor(t *testing.T) {
	c := fixture.New().Using().Constructor(func(cl clock) *widget {
		return &widget{Count: cl.Now()}
	}).Using(fixedClock{T: 42})

	assert.Equal(t, 42, fixture.MustCreate[*widget](c).Count)
}
