// Package producers publishes ledger audit events. Publishing is best
// effort: a failed event never fails the save that triggered it.
package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frontoffice-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// RowSavedProducer publishes an event for every row that reaches the remote
// store, keyed by date so one day's events stay ordered within a partition.
type RowSavedProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewRowSavedProducer creates the producer and ensures the topic exists.
func NewRowSavedProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*RowSavedProducer, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for row-saved producer: %w", err)
	}
	defer conn.Close()

	if err := createTopicIfNotExists(conn, cfg.Topic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure topic %s exists: %w", cfg.Topic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Events must not block the save path
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write row-saved events", "topic", cfg.Topic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote row-saved events", "topic", cfg.Topic, "count", len(messages))
			}
		},
	}

	return &RowSavedProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.Topic,
	}, nil
}

// Publish serializes the event and hands it to the async writer.
func (p *RowSavedProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal row-saved event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish row-saved event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish row-saved event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published row-saved event", "topic", p.topic, "key", key)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *RowSavedProducer) Close() error {
	p.logger.Info("Closing row-saved event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
