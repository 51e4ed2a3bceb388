package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/sikkim-flood-portal/internal/config"
	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
)

// Writer produces activity events to a Kafka topic.
// It implements activity.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured activity topic.
// Messages are keyed by session id and hash-partitioned so that the events of
// one session stay ordered.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaActivityTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: cfg.BatchFlushInterval,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes activity events in a single
// WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, events []domain.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d activity events: %w", len(msgs), err)
	}
	w.logger.Debug("published activity batch", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an ActivityEvent into a Kafka message.
func serializeToMessage(event domain.ActivityEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize activity event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.SessionID),
		Value: data,
		Time:  event.At,
		Headers: []kafkago.Header{
			{Key: "activity_type", Value: []byte(event.Type)},
			{Key: "recorded_at", Value: []byte(event.At.Format(time.RFC3339))},
		},
	}, nil
}
