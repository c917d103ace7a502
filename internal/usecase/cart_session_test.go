package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/valebmss/pos-local1/internal/entity"
)

func TestCartSessionCreate(t *testing.T) {
	carts := newFakeCartStore()
	uc := NewCartSession(newFakeInventory(), carts)

	cart, err := uc.Create(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.True(t, cart.IsEmpty())

	stored, err := carts.Get(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, stored.ID)
}

func TestCartSessionAddLineResolvesProduct(t *testing.T) {
	inv := newFakeInventory(&domain.InventoryRecord{
		ProductID:   "pA",
		Nombre:      "Cafe",
		PrecioVenta: decimal.NewFromInt(1000),
		Stock:       5,
	})
	carts := newFakeCartStore(domain.NewCart("c1"))
	uc := NewCartSession(inv, carts)

	cart, err := uc.AddLine(context.Background(), "c1", "pA")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Cafe", cart.Lines[0].ProductName)
	assert.True(t, cart.Lines[0].UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	cart, err = uc.AddLine(context.Background(), "c1", "pA")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestCartSessionAddLineUnknownProduct(t *testing.T) {
	carts := newFakeCartStore(domain.NewCart("c1"))
	uc := NewCartSession(newFakeInventory(), carts)

	_, err := uc.AddLine(context.Background(), "c1", "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartSessionUnknownCart(t *testing.T) {
	uc := NewCartSession(newFakeInventory(), newFakeCartStore())

	_, err := uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = uc.AddLine(context.Background(), "nope", "pA")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartSessionSetQuantityAndRemove(t *testing.T) {
	inv := newFakeInventory(&domain.InventoryRecord{
		ProductID:   "pA",
		Nombre:      "Cafe",
		PrecioVenta: decimal.NewFromInt(1000),
		Stock:       5,
	})
	carts := newFakeCartStore(domain.NewCart("c1"))
	uc := NewCartSession(inv, carts)

	_, err := uc.AddLine(context.Background(), "c1", "pA")
	require.NoError(t, err)

	cart, err := uc.SetQuantity(context.Background(), "c1", "pA", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Lines[0].Quantity)

	_, err = uc.SetQuantity(context.Background(), "c1", "pA", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.SetQuantity(context.Background(), "c1", "ghost", 2)
	assert.ErrorIs(t, err, domain.ErrLineNotFound)

	cart, err = uc.RemoveLine(context.Background(), "c1", "pA")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// Removing an absent line is a no-op, not an error.
	cart, err = uc.RemoveLine(context.Background(), "c1", "pA")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
