// Package kafka provides the Kafka-backed audit sink. Events are produced as
// JSON to a single topic keyed by event type, so the bot consumer can rely on
// per-type ordering.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"warden/internal/audit"
)

// Sink produces audit events to Kafka.
type Sink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// New connects to the brokers and ensures the topic exists.
func New(ctx context.Context, brokers []string, topic string, logger *slog.Logger) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Sink{client: client, topic: topic, logger: logger}, nil
}

func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	admin := kadm.NewClient(client)
	existing, err := admin.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if existing.Has(topic) {
		return nil
	}
	if _, err := admin.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

// Append produces the event asynchronously. Bot events are fire-and-forget:
// delivery failures are logged, never surfaced to the request.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Type),
		Value: payload,
	}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Error("failed to produce audit event",
				"event_id", event.ID,
				"topic", s.topic,
				"error", err.Error(),
			)
		}
	})
	return nil
}

// Close flushes outstanding produces and releases the client.
func (s *Sink) Close(ctx context.Context) error {
	if err := s.client.Flush(ctx); err != nil {
		s.client.Close()
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	s.client.Close()
	return nil
}
