package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// KafkaSink publishes audit records to a topic keyed by event id.
type KafkaSink struct {
	l *slog.Logger
	w *kafka.Writer
}

// NewKafkaSink builds an asynchronous writer for the given brokers.
func NewKafkaSink(l *slog.Logger, brokers []string, topic string) *KafkaSink {
	if l == nil {
		l = slog.Default()
	}
	l = l.WithGroup("kafka").With("topic", topic)
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 kafka.LoggerFunc(func(msg string, args ...any) { l.Debug(fmt.Sprintf(msg, args...)) }),
		ErrorLogger:            kafka.LoggerFunc(func(msg string, args ...any) { l.Error(fmt.Sprintf(msg, args...)) }),
		AllowAutoTopicCreation: true,
	}
	return &KafkaSink{l: l, w: w}
}

func (s *KafkaSink) Write(ctx context.Context, log shared.AuditLog) error {
	b, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	if err := s.w.WriteMessages(ctx, kafka.Message{Key: []byte(log.EventID.String()), Value: b}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() {
	if err := s.w.Close(); err != nil {
		s.l.Error("close kafka writer", slog.Any("error", err))
	}
}
