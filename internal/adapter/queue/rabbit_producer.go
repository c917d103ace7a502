package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/valebmss/pos-local1/internal/usecase"
)

const (
	exchangeName = "sales.events"

	saleCompletedKey   = "sale.completed"
	saleCompletedQueue = "sale.completed.q"

	reconcileKey = "inventory.reconcile"

	// ReconcileQueue is consumed by the reconcile worker.
	ReconcileQueue = "inventory.reconcile.q"
)

// RabbitProducer implements usecase.EventPublisher.
type RabbitProducer struct {
	ch *amqp.Channel
}

// NewRabbitProducer sets up the exchange, queues, and bindings once at startup.
func NewRabbitProducer(ch *amqp.Channel) (*RabbitProducer, error) {
	// 1. declare exchange (topic type, durable)
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	// 2. declare + bind one queue per routing key
	for _, b := range []struct{ queue, key string }{
		{saleCompletedQueue, saleCompletedKey},
		{ReconcileQueue, reconcileKey},
	} {
		q, err := ch.QueueDeclare(
			b.queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("declare queue %s: %w", b.queue, err)
		}
		if err := ch.QueueBind(q.Name, b.key, exchangeName, false, nil); err != nil {
			return nil, fmt.Errorf("bind queue %s: %w", b.queue, err)
		}
	}

	// 3. enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	return &RabbitProducer{ch: ch}, nil
}

// PublishSaleCompleted announces a persisted sale.
func (p *RabbitProducer) PublishSaleCompleted(ctx context.Context, msg usecase.SaleCompletedMsg) error {
	return p.publish(ctx, saleCompletedKey, msg)
}

// PublishReconcile hands one failed inventory decrement to the
// reconciliation queue.
func (p *RabbitProducer) PublishReconcile(ctx context.Context, msg usecase.ReconcileMsg) error {
	return p.publish(ctx, reconcileKey, msg)
}

func (p *RabbitProducer) publish(ctx context.Context, key string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Body:         body,
	}

	if err := p.ch.PublishWithContext(
		ctx,
		exchangeName,
		key,
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	return nil
}

var _ usecase.EventPublisher = (*RabbitProducer)(nil)
