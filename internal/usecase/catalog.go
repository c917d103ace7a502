package usecase

import (
	"context"

	domain "github.com/valebmss/pos-local1/internal/entity"
)

// Catalog serves the product listing through a read-through cache over the
// inventory scan.
type Catalog struct {
	inv   InventoryStore
	cache CatalogCache // optional
}

func NewCatalog(inv InventoryStore, cache CatalogCache) *Catalog {
	return &Catalog{inv: inv, cache: cache}
}

func (uc *Catalog) ListProducts(ctx context.Context) ([]domain.InventoryRecord, error) {
	if uc.cache != nil {
		if products, ok, err := uc.cache.GetProducts(ctx); err == nil && ok {
			return products, nil
		}
	}
	products, err := uc.inv.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		_ = uc.cache.SetProducts(ctx, products)
	}
	return products, nil
}
