package queue

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/valebmss/pos-local1/internal/logging"
	"github.com/valebmss/pos-local1/internal/usecase"
)

var reconcileEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pos_reconcile_events_total",
		Help: "Ledger/inventory divergences received for reconciliation",
	},
	[]string{"reason"},
)

// ReconcileHandler drains the inventory.reconcile queue. Each message is a
// sale line whose stock decrement failed after the sale persisted; it is
// logged and counted so operations can act on the divergence.
type ReconcileHandler struct{}

func NewReconcileHandler() *ReconcileHandler { return &ReconcileHandler{} }

// HandleReconcile is intended for queue.JSONHandler[usecase.ReconcileMsg].
func (h *ReconcileHandler) HandleReconcile(ctx context.Context, msg usecase.ReconcileMsg) error {
	reconcileEvents.WithLabelValues(msg.Reason).Inc()
	logging.FromCtx(ctx).Warn("inventory reconcile required",
		"sale_id", msg.SaleID,
		"product_id", msg.ProductID,
		"quantity", msg.Quantity,
		"reason", msg.Reason,
	)
	return nil
}
