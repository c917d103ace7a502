package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	domain "github.com/valebmss/pos-local1/internal/entity"
	"github.com/valebmss/pos-local1/internal/usecase"
)

type SalesHandler struct {
	ledger usecase.SalesLedger
}

func NewSalesHandler(ledger usecase.SalesLedger) *SalesHandler {
	return &SalesHandler{ledger: ledger}
}

// ListByDate is a pass-through over the ledger; ?fecha=YYYY-MM-DD.
func (h *SalesHandler) ListByDate(c *gin.Context) {
	fecha := c.Query("fecha")
	if _, err := time.Parse(domain.FechaLayout, fecha); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_fecha"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	sales, err := h.ledger.ListByDate(ctx, fecha)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if sales == nil {
		sales = []domain.SaleRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"ventas": sales})
}
