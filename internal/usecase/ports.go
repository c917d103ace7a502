package usecase

import (
	"context"
	"errors"

	domain "github.com/valebmss/pos-local1/internal/entity"
)

// Store-contract errors. Adapters translate their native failures into these
// so the use cases can branch with errors.Is.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartNotFound      = errors.New("cart not found")
)

// InventoryStore is the Inventario table. DecrementStock MUST be a single
// conditional operation at the store (decrement only if stock >= qty); the
// no-oversell guarantee rests entirely on that atomicity.
type InventoryStore interface {
	Get(ctx context.Context, productID string) (*domain.InventoryRecord, error)
	Scan(ctx context.Context) ([]domain.InventoryRecord, error)
	DecrementStock(ctx context.Context, productID string, qty int) error
	AddStock(ctx context.Context, productID string, qty int) error
}

// SalesLedger is the Ventas table. Insert-only; sales are never edited here.
type SalesLedger interface {
	Insert(ctx context.Context, sale *domain.SaleRecord) error
	ListByDate(ctx context.Context, fecha string) ([]domain.SaleRecord, error)
}

// CartStore keeps the in-progress cart of one POS session between requests.
type CartStore interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// CatalogCache fronts the inventory scan for the product listing.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.InventoryRecord, bool, error)
	SetProducts(ctx context.Context, products []domain.InventoryRecord) error
	Invalidate(ctx context.Context) error
}

type OutboxRepo interface {
	InsertSaleCompleted(ctx context.Context, payload []byte) error
}

// EventPublisher pushes sale/reconcile events to the broker. Best-effort from
// the use cases: a publish failure never fails a persisted checkout.
type EventPublisher interface {
	PublishSaleCompleted(ctx context.Context, msg SaleCompletedMsg) error
	PublishReconcile(ctx context.Context, msg ReconcileMsg) error
}
