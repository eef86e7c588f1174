package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Board mutation operations carried on published events.
const (
	OpMarkOut    = "mark_out"
	OpMarkReturn = "mark_return"
	OpClear      = "clear"
	OpProvision  = "provision"
	OpRetire     = "retire"
)

// BoardEvent is one committed board mutation, published for external
// consumers (wall displays, chat bots, reporting).
type BoardEvent struct {
	EventID    string    `json:"event_id"`
	EmployeeID string    `json:"employee_id"`
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	Place      string    `json:"place,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher emits board mutation events to Kafka. Messages are keyed by
// employee id so per-employee ordering survives partitioning.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Kafka-backed publisher for the given brokers and
// topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// NewPublisherFromBrokerList parses a comma-separated broker list as it
// appears in configuration.
func NewPublisherFromBrokerList(brokerList, topic string) *Publisher {
	return NewPublisher(strings.Split(brokerList, ","), topic)
}

// Publish writes one event. The caller treats failures as best-effort;
// the board mutation is already committed by the time this runs.
func (p *Publisher) Publish(ctx context.Context, event BoardEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal board event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EmployeeID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish board event: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
