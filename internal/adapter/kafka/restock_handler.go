package kafka

import (
	"context"
	"fmt"

	"github.com/valebmss/pos-local1/internal/logging"
	"github.com/valebmss/pos-local1/internal/usecase"
)

// RestockHandler applies supplier delivery events to inventory.
type RestockHandler struct {
	Inv   usecase.InventoryStore
	Cache usecase.CatalogCache // optional
}

func NewRestockHandler(inv usecase.InventoryStore, cache usecase.CatalogCache) *RestockHandler {
	return &RestockHandler{Inv: inv, Cache: cache}
}

func (h *RestockHandler) Handle(ctx context.Context, ev usecase.RestockMsg) error {
	if ev.ProductID == "" || ev.Quantity <= 0 {
		// Poison payload; nothing to retry.
		logging.FromCtx(ctx).Warn("dropping invalid restock event",
			"product_id", ev.ProductID, "quantity", ev.Quantity)
		return nil
	}

	if err := h.Inv.AddStock(ctx, ev.ProductID, ev.Quantity); err != nil {
		return fmt.Errorf("restock %s: %w", ev.ProductID, err)
	}

	// Cache best-effort
	if h.Cache != nil {
		_ = h.Cache.Invalidate(ctx)
	}
	return nil
}
