package usecase

import (
	"context"
	"errors"
	"sync"

	domain "github.com/valebmss/pos-local1/internal/entity"
)

type fakeInventory struct {
	mu       sync.Mutex
	records  map[string]*domain.InventoryRecord
	decCalls []string
	failWith error
}

func newFakeInventory(records ...*domain.InventoryRecord) *fakeInventory {
	m := make(map[string]*domain.InventoryRecord, len(records))
	for _, r := range records {
		m[r.ProductID] = r
	}
	return &fakeInventory{records: m}
}

func (f *fakeInventory) Get(_ context.Context, productID string) (*domain.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeInventory) Scan(_ context.Context) ([]domain.InventoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.InventoryRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeInventory) DecrementStock(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decCalls = append(f.decCalls, productID)
	if f.failWith != nil {
		return f.failWith
	}
	r, ok := f.records[productID]
	if !ok {
		return ErrProductNotFound
	}
	if r.Stock < qty {
		return ErrInsufficientStock
	}
	r.Stock -= qty
	return nil
}

func (f *fakeInventory) AddStock(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[productID]
	if !ok {
		return ErrProductNotFound
	}
	r.Stock += qty
	return nil
}

func (f *fakeInventory) stockOf(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[productID].Stock
}

type fakeLedger struct {
	mu       sync.Mutex
	inserted []*domain.SaleRecord
	failWith error
}

func (f *fakeLedger) Insert(_ context.Context, sale *domain.SaleRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.inserted = append(f.inserted, sale)
	return nil
}

func (f *fakeLedger) ListByDate(_ context.Context, fecha string) ([]domain.SaleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.SaleRecord
	for _, s := range f.inserted {
		if s.Fecha == fecha {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeCartStore struct {
	mu      sync.Mutex
	carts   map[string]*domain.Cart
	deleted []string
}

func newFakeCartStore(carts ...*domain.Cart) *fakeCartStore {
	m := make(map[string]*domain.Cart, len(carts))
	for _, c := range carts {
		m[c.ID] = c
	}
	return &fakeCartStore{carts: m}
}

func (f *fakeCartStore) Get(_ context.Context, cartID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartStore) Save(_ context.Context, cart *domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[cart.ID] = cart
	return nil
}

func (f *fakeCartStore) Delete(_ context.Context, cartID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, cartID)
	f.deleted = append(f.deleted, cartID)
	return nil
}

type fakeOutbox struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *fakeOutbox) InsertSaleCompleted(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

type fakePublisher struct {
	mu         sync.Mutex
	completed  []SaleCompletedMsg
	reconciles []ReconcileMsg
}

func (f *fakePublisher) PublishSaleCompleted(_ context.Context, msg SaleCompletedMsg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, msg)
	return nil
}

func (f *fakePublisher) PublishReconcile(_ context.Context, msg ReconcileMsg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconciles = append(f.reconciles, msg)
	return nil
}

type fakeCatalogCache struct {
	mu          sync.Mutex
	products    []domain.InventoryRecord
	populated   bool
	invalidated int
}

func (f *fakeCatalogCache) GetProducts(_ context.Context) ([]domain.InventoryRecord, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.populated {
		return nil, false, nil
	}
	return f.products, true, nil
}

func (f *fakeCatalogCache) SetProducts(_ context.Context, products []domain.InventoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
	f.populated = true
	return nil
}

func (f *fakeCatalogCache) Invalidate(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = nil
	f.populated = false
	f.invalidated++
	return nil
}

var errStoreDown = errors.New("store down")
