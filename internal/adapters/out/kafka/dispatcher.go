// Package kafka publishes integration events to the external platform bus.
// Events are enveloped as JSON and keyed by event name so all messages of one
// event type land on the same partition.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// envelope is the wire format of a dispatched event.
type envelope struct {
	Event      string `json:"event"`
	Payload    any    `json:"payload"`
	OccurredAt string `json:"occurred_at"`
}

// Dispatcher implements ports.EventDispatcher on top of a kafka writer.
type Dispatcher struct {
	w *kafka.Writer
}

// NewDispatcher creates a dispatcher writing to the given brokers and topic.
func NewDispatcher(brokers []string, topic string) *Dispatcher {
	return &Dispatcher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Dispatch publishes one event. The write is synchronous; callers decide
// whether a failure is fatal for their operation.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, payload any) error {
	value, err := json.Marshal(envelope{
		Event:      event,
		Payload:    payload,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return d.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (d *Dispatcher) Close() error {
	return d.w.Close()
}
