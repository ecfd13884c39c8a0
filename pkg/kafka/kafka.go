package kafka

import (
	"context"
	"fmt"
	"time"

	"goldenorders/pkg/logger"

	"github.com/segmentio/kafka-go"
)

const (
	_defaultWriteTimeout = 10 * time.Second
	_dialTimeout         = 5 * time.Second
)

// ReaderConfig selects the topic and consumer group of a reader.
type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// NewReader returns a group reader after checking that every broker accepts
// connections. Offsets are committed as messages are read.
func NewReader(ctx context.Context, cfg ReaderConfig, log logger.Logger) (*kafka.Reader, error) {
	if err := Ping(ctx, cfg.Brokers, log); err != nil {
		return nil, err
	}

	readerLog := log.With("topic", cfg.Topic, "group_id", cfg.GroupID)

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
		Logger: kafka.LoggerFunc(func(msg string, args ...any) {
			readerLog.Debugw(fmt.Sprintf(msg, args...))
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			readerLog.Errorw("kafka reader error", "error", fmt.Sprintf(msg, args...))
		}),
	}), nil
}

// NewWriter returns a synchronous writer for topic. Messages with the same key
// land on the same partition.
func NewWriter(ctx context.Context, brokers []string, topic string, log logger.Logger) (*kafka.Writer, error) {
	if err := Ping(ctx, brokers, log); err != nil {
		return nil, err
	}

	writerLog := log.With("topic", topic)

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           _defaultWriteTimeout,
		AllowAutoTopicCreation: true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			writerLog.Errorw("kafka writer error", "error", fmt.Sprintf(msg, args...))
		}),
	}, nil
}

// Ping dials every broker once and fails on the first unreachable one.
func Ping(ctx context.Context, brokers []string, log logger.Logger) error {
	const op = "kafka.Ping"

	if len(brokers) == 0 {
		return fmt.Errorf("%s: no brokers configured", op)
	}

	dialer := &kafka.Dialer{Timeout: _dialTimeout}
	for _, broker := range brokers {
		conn, err := dialer.DialContext(ctx, "tcp", broker)
		if err != nil {
			return fmt.Errorf("%s: connect to %s: %w", op, broker, err)
		}

		if err = conn.Close(); err != nil {
			log.Warnw("failed to close broker connection", "broker", broker, "error", err)
		}
	}
	return nil
}
