package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/wichananm65/fyx-store/internal/logging"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published whenever an order is created or its status moves.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	Customer    string    `json:"customer,omitempty"`
	At          time.Time `json:"at"`
}

// Publisher sends an event to a topic. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

type KafkaPublisher struct {
	w *kafkaGo.Writer
}

// NewKafkaPublisher keeps one writer for the life of the process.
func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{w: &kafkaGo.Writer{
		Addr:         kafkaGo.TCP(brokers...),
		Balancer:     &kafkaGo.LeastBytes{},
		RequiredAcks: kafkaGo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

func (k *KafkaPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return k.w.WriteMessages(ctx, kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

func (k *KafkaPublisher) Close() error {
	return k.w.Close()
}

// LogPublisher writes events to the request logger. It is used when no
// broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	logging.FromContext(ctx).Info("event", slog.String("topic", topic), slog.String("key", key), slog.Any("event", event))
	return nil
}

func (LogPublisher) Close() error { return nil }
