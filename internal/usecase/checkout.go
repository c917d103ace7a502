package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	domain "github.com/valebmss/pos-local1/internal/entity"
)

// ErrSalePersistence means the ledger insert failed. The checkout aborts
// there: no inventory is touched unless the sale record exists.
var ErrSalePersistence = errors.New("sale persistence failed")

const (
	ReasonInsufficientStock = "insufficient_stock"
	ReasonStoreError        = "store_error"
)

type CheckoutInput struct {
	CartID, PaymentMethod, CustomerRef string
}

// FailedLine reports one product whose stock could not be decremented after
// the sale was already persisted. Callers must surface these for
// reconciliation even though the checkout itself did not fail.
type FailedLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type CheckoutOutput struct {
	SaleID      string
	Fecha       string
	TotalAmount decimal.Decimal
	FailedLines []FailedLine
}

// Checkout coordinates the sale-transaction write sequence: validate the
// cart, persist the sale record, then apply the per-line stock decrements.
type Checkout struct {
	inv    InventoryStore
	ledger SalesLedger
	carts  CartStore
	out    OutboxRepo     // optional
	pub    EventPublisher // optional
	now    func() time.Time
}

func NewCheckout(inv InventoryStore, ledger SalesLedger, carts CartStore, out OutboxRepo, pub EventPublisher) *Checkout {
	return &Checkout{inv: inv, ledger: ledger, carts: carts, out: out, pub: pub, now: time.Now}
}

func (uc *Checkout) Execute(ctx context.Context, in CheckoutInput) (CheckoutOutput, error) {
	cart, err := uc.carts.Get(ctx, in.CartID)
	if err != nil {
		return CheckoutOutput{}, err
	}

	// Preconditions, in order; each aborts with nothing written.
	method, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return CheckoutOutput{}, err
	}
	if cart.IsEmpty() {
		return CheckoutOutput{}, domain.ErrEmptyCart
	}

	sale := domain.NewSaleRecord(cart, method, in.CustomerRef, uc.now())

	// Ledger first. A crash after this point can leave stock undecremented
	// but never an inventory debit without a sale record.
	if err := uc.ledger.Insert(ctx, sale); err != nil {
		return CheckoutOutput{}, fmt.Errorf("%w: %v", ErrSalePersistence, err)
	}

	// Per-line conditional decrements. Failures are collected, not fatal to
	// sibling lines, and no line is retried here.
	var failed []FailedLine
	for _, line := range sale.Lines {
		err := uc.inv.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err == nil {
			continue
		}
		reason := ReasonStoreError
		if errors.Is(err, ErrInsufficientStock) {
			reason = ReasonInsufficientStock
		}
		failed = append(failed, FailedLine{ProductID: line.ProductID, Quantity: line.Quantity, Reason: reason})
		if uc.pub != nil {
			_ = uc.pub.PublishReconcile(ctx, ReconcileMsg{
				SaleID:    sale.SaleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Reason:    reason,
			})
		}
	}

	// The session is done either way.
	_ = uc.carts.Delete(ctx, cart.ID)

	msg := SaleCompletedMsg{
		SaleID:        sale.SaleID,
		Fecha:         sale.Fecha,
		PaymentMethod: string(sale.PaymentMethod),
		TotalAmount:   sale.TotalAmount.String(),
		LineCount:     len(sale.Lines),
	}
	if uc.out != nil {
		payload, _ := json.Marshal(msg)
		_ = uc.out.InsertSaleCompleted(ctx, payload)
	}
	if uc.pub != nil {
		_ = uc.pub.PublishSaleCompleted(ctx, msg)
	}

	return CheckoutOutput{
		SaleID:      sale.SaleID,
		Fecha:       sale.Fecha,
		TotalAmount: sale.TotalAmount,
		FailedLines: failed,
	}, nil
}
