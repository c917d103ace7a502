package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingPaymentMethod = errors.New("missing payment method")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrEmptyCart            = errors.New("cart is empty")
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentCard     PaymentMethod = "Tarjeta"
	PaymentTransfer PaymentMethod = "Transferencia"
)

// DefaultCustomerRef is recorded when the caller names no customer.
const DefaultCustomerRef = "No especificado"

// FechaLayout is the date key the sales listings filter on.
const FechaLayout = "2006-01-02"

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case "":
		return "", ErrMissingPaymentMethod
	case PaymentCash, PaymentCard, PaymentTransfer:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// SaleLine is the immutable per-product snapshot inside a persisted sale.
type SaleLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitAmount  decimal.Decimal `json:"unit_amount"`
	LineAmount  decimal.Decimal `json:"line_amount"`
}

// SaleRecord is the persisted artifact of a completed checkout. Written once,
// never mutated; later price or inventory changes must not affect it.
type SaleRecord struct {
	SaleID        string          `json:"venta_id"`
	Fecha         string          `json:"fecha"`
	PaymentMethod PaymentMethod   `json:"metodo_pago"`
	CustomerRef   string          `json:"cliente"`
	TotalAmount   decimal.Decimal `json:"monto_total"`
	Lines         []SaleLine      `json:"productos"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewSaleRecord snapshots the cart at checkout time under a fresh random id.
func NewSaleRecord(cart *Cart, method PaymentMethod, customerRef string, now time.Time) *SaleRecord {
	if customerRef == "" {
		customerRef = DefaultCustomerRef
	}
	lines := make([]SaleLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, SaleLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitAmount:  l.UnitPrice,
			LineAmount:  l.LineAmount(),
		})
	}
	return &SaleRecord{
		SaleID:        uuid.NewString(),
		Fecha:         now.Format(FechaLayout),
		PaymentMethod: method,
		CustomerRef:   customerRef,
		TotalAmount:   cart.Total(),
		Lines:         lines,
		CreatedAt:     now,
	}
}
