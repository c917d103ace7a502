package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/logging"
	"github.com/valebmss/pos-local1/internal/usecase"
)

var (
	checkoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_checkouts_total",
			Help: "Checkout attempts by outcome",
		},
		[]string{"result"},
	)

	decrementFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_decrement_failures_total",
			Help: "Inventory decrements that failed after the sale persisted",
		},
	)
)

type CheckoutHandler struct {
	checkout *usecase.Checkout
}

func NewCheckoutHandler(checkout *usecase.Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutReq struct {
	PaymentMethod string `json:"paymentMethod"`
	CustomerRef   string `json:"customerRef"`
}

type checkoutResp struct {
	SaleID      string               `json:"saleId"`
	Fecha       string               `json:"fecha"`
	TotalAmount string               `json:"totalAmount"`
	FailedLines []usecase.FailedLine `json:"failedLines"`
}

// Checkout executes the sale. The response carries BOTH the persisted sale
// and, distinctly, the lines whose stock decrement failed: a 201 with a
// non-empty failedLines list still needs reconciliation.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.checkout.Execute(ctx, usecase.CheckoutInput{
		CartID:        c.Param("id"),
		PaymentMethod: req.PaymentMethod,
		CustomerRef:   req.CustomerRef,
	})

	if err != nil {
		status := http.StatusInternalServerError
		code := "server_error"
		switch {
		case errors.Is(err, usecase.ErrCartNotFound):
			status, code = http.StatusNotFound, "cart_not_found"
		case errors.Is(err, domain.ErrMissingPaymentMethod):
			status, code = http.StatusUnprocessableEntity, "missing_payment_method"
		case errors.Is(err, domain.ErrInvalidPaymentMethod):
			status, code = http.StatusUnprocessableEntity, "invalid_payment_method"
		case errors.Is(err, domain.ErrEmptyCart):
			status, code = http.StatusUnprocessableEntity, "empty_cart"
		case errors.Is(err, usecase.ErrSalePersistence):
			status, code = http.StatusBadGateway, "sale_persistence_failed"
		}
		checkoutsTotal.WithLabelValues("rejected").Inc()
		c.JSON(status, gin.H{"error": code})
		return
	}

	result := "ok"
	if len(out.FailedLines) > 0 {
		result = "ok_with_failures"
		decrementFailures.Add(float64(len(out.FailedLines)))
		logging.From(c).Warn("checkout persisted with decrement failures",
			"sale_id", out.SaleID, "failed", len(out.FailedLines))
	}
	checkoutsTotal.WithLabelValues(result).Inc()

	failed := out.FailedLines
	if failed == nil {
		failed = []usecase.FailedLine{}
	}
	c.JSON(http.StatusCreated, checkoutResp{
		SaleID:      out.SaleID,
		Fecha:       out.Fecha,
		TotalAmount: out.TotalAmount.String(),
		FailedLines: failed,
	})
}
