package queue

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valebmss/pos-local1/internal/usecase"
)

func TestJSONHandlerDecodesReconcileMsg(t *testing.T) {
	var got usecase.ReconcileMsg
	h := JSONHandler[usecase.ReconcileMsg]{
		HandleFunc: func(_ context.Context, msg usecase.ReconcileMsg) error {
			got = msg
			return nil
		},
	}

	body := []byte(`{"saleId":"s1","productId":"pB","quantity":3,"reason":"insufficient_stock"}`)
	err := h.Handle(context.Background(), amqp.Delivery{Body: body})
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SaleID)
	assert.Equal(t, "pB", got.ProductID)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, "insufficient_stock", got.Reason)
}

func TestJSONHandlerRejectsMalformedBody(t *testing.T) {
	h := JSONHandler[usecase.ReconcileMsg]{
		HandleFunc: func(context.Context, usecase.ReconcileMsg) error {
			t.Fatal("handler must not run on malformed payloads")
			return nil
		},
	}
	err := h.Handle(context.Background(), amqp.Delivery{Body: []byte("{broken")})
	assert.Error(t, err)
}
