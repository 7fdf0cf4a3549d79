// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/smarttrade/smarttrade/internal/domain"
)

// OrderTopic is the Kafka topic order events are written to.
const OrderTopic = "order-events"

// orderPlacedEvent is the JSON payload for an order.placed event.
type orderPlacedEvent struct {
	EventID   string  `json:"event_id"`
	Type      string  `json:"type"`
	OrderID   string  `json:"order_id"`
	Kind      string  `json:"kind"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	PlacedAt  string  `json:"placed_at"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}

// Publisher writes order events to Kafka. Delivery is fire-and-forget:
// write failures are logged and dropped, never surfaced to the order
// path.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewPublisher creates a Publisher against the given broker address.
func NewPublisher(broker string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        OrderTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
		logger: logger,
	}
}

// OrderPlaced publishes an order.placed event for a persisted order.
func (p *Publisher) OrderPlaced(ctx context.Context, o *domain.Order) {
	msg, err := buildOrderPlacedMessage(o, time.Now().UTC())
	if err != nil {
		p.logger.Warn("order event marshal failed",
			slog.String("order_id", o.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("order event publish failed",
			slog.String("order_id", o.ID),
			slog.String("error", err.Error()),
		)
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// buildOrderPlacedMessage builds the Kafka message for an order, keyed
// by symbol so one symbol's events stay in partition order.
func buildOrderPlacedMessage(o *domain.Order, now time.Time) (kafka.Message, error) {
	event := orderPlacedEvent{
		EventID:   uuid.New().String(),
		Type:      "order.placed",
		OrderID:   o.ID,
		Kind:      string(o.Kind),
		Symbol:    o.Symbol,
		Name:      o.Name,
		PlacedAt:  o.PlacedAt.UTC().Format(time.RFC3339),
		Quantity:  o.Quantity,
		Price:     o.Price,
		Timestamp: now.Format(time.RFC3339),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(o.Symbol),
		Value: value,
	}, nil
}
