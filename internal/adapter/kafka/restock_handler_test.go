package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

type memInventory struct {
	stock map[string]int
}

func (m *memInventory) Get(_ context.Context, id string) (*domain.InventoryRecord, error) {
	s, ok := m.stock[id]
	if !ok {
		return nil, usecase.ErrProductNotFound
	}
	return &domain.InventoryRecord{ProductID: id, Stock: s}, nil
}

func (m *memInventory) Scan(_ context.Context) ([]domain.InventoryRecord, error) { return nil, nil }

func (m *memInventory) DecrementStock(_ context.Context, id string, qty int) error {
	m.stock[id] -= qty
	return nil
}

func (m *memInventory) AddStock(_ context.Context, id string, qty int) error {
	if _, ok := m.stock[id]; !ok {
		return usecase.ErrProductNotFound
	}
	m.stock[id] += qty
	return nil
}

type memCache struct {
	invalidated int
}

func (m *memCache) GetProducts(context.Context) ([]domain.InventoryRecord, bool, error) {
	return nil, false, nil
}
func (m *memCache) SetProducts(context.Context, []domain.InventoryRecord) error { return nil }
func (m *memCache) Invalidate(context.Context) error {
	m.invalidated++
	return nil
}

func TestRestockAddsStockAndInvalidatesCache(t *testing.T) {
	inv := &memInventory{stock: map[string]int{"pA": 2}}
	cache := &memCache{}
	h := NewRestockHandler(inv, cache)

	err := h.Handle(context.Background(), usecase.RestockMsg{ProductID: "pA", Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, inv.stock["pA"])
	assert.Equal(t, 1, cache.invalidated)
}

func TestRestockDropsInvalidPayloads(t *testing.T) {
	inv := &memInventory{stock: map[string]int{"pA": 2}}
	h := NewRestockHandler(inv, nil)

	require.NoError(t, h.Handle(context.Background(), usecase.RestockMsg{ProductID: "", Quantity: 5}))
	require.NoError(t, h.Handle(context.Background(), usecase.RestockMsg{ProductID: "pA", Quantity: 0}))
	require.NoError(t, h.Handle(context.Background(), usecase.RestockMsg{ProductID: "pA", Quantity: -3}))
	assert.Equal(t, 2, inv.stock["pA"])
}

func TestRestockUnknownProductIsRetryable(t *testing.T) {
	inv := &memInventory{stock: map[string]int{}}
	h := NewRestockHandler(inv, nil)

	err := h.Handle(context.Background(), usecase.RestockMsg{ProductID: "ghost", Quantity: 5})
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
}
