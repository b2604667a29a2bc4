// Package publisher provides audit event sinks.
//
// The Kafka publisher produces asynchronously with fail-open semantics:
// delivery failures are logged and counted, never surfaced to the business
// operation that emitted the event.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"ledger/pkg/platform/audit"
)

// Kafka publishes audit events to a Kafka topic via franz-go.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// KafkaOption configures the Kafka publisher.
type KafkaOption func(*Kafka)

// WithLogger sets a logger for delivery failures.
func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *Kafka) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewKafka connects a producer to the given brokers. The record key is the
// agency id so per-agency ordering is preserved within a partition.
func NewKafka(brokers []string, topic string, opts ...KafkaOption) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}
	p := &Kafka{
		client: client,
		topic:  topic,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Emit produces the event asynchronously. Serialization problems are the only
// errors returned; delivery failures are logged by the produce callback.
func (p *Kafka) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   fmt.Appendf(nil, "%d", event.AgencyID),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("audit event delivery failed",
				"action", event.Action,
				"event_id", event.ID,
				"error", err,
			)
		}
	})
	return nil
}

// Close flushes pending records and releases the client.
func (p *Kafka) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		return err
	}
	p.client.Close()
	return nil
}
