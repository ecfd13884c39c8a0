package dlq

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"goldenorders/internal/config"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"

	"github.com/segmentio/kafka-go"
)

const _backoffMultiplier = 2

var _defaultPolicy = RetryPolicy{
	MaxAttempts: 5,
	BaseDelay:   100 * time.Millisecond,
	MaxDelay:    5 * time.Second,
}

// Message is the envelope written to the dead letter topic.
type Message struct {
	Metadata Metadata `json:"metadata"`
	Payload  string   `json:"payload"`
}

type Metadata struct {
	OriginalTopic string `json:"original_topic"`
	Partition     int    `json:"partition"`
	Offset        int64  `json:"offset"`
	RetryCount    int    `json:"retry_count"`
	Permanent     bool   `json:"permanent"`
	Error         string `json:"error"`
	Timestamp     string `json:"timestamp"`
}

// RetryPolicy bounds the exponential backoff used by ProcessWithRetry.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DLQ writes exhausted order drafts to the dead letter topic.
type DLQ struct {
	writer  *kafka.Writer
	log     logger.Logger
	metrics metric.DLQ
	policy  RetryPolicy
}

func NewDLQ(cfg config.DLQ, log logger.Logger, metrics metric.DLQ, opts ...Option) (*DLQ, error) {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Async:                  false,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		ReadTimeout:            cfg.ReadTimeout,
		AllowAutoTopicCreation: true,
		Logger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.LogAttrs(context.Background(), logger.DebugLevel, "dlq writer info",
				logger.String("message", fmt.Sprintf(msg, args...)),
			)
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.LogAttrs(context.Background(), logger.ErrorLevel, "dlq writer error",
				logger.String("error", fmt.Sprintf(msg, args...)),
			)
		}),
	}

	dlq := &DLQ{
		writer:  writer,
		log:     log,
		metrics: metrics,
		policy:  _defaultPolicy,
	}

	for _, opt := range opts {
		opt(dlq)
	}

	if err := dlq.policy.validate(); err != nil {
		return nil, fmt.Errorf("kafka.dlq.NewDLQ: validation: %w", err)
	}

	return dlq, nil
}

func (d *DLQ) Policy() RetryPolicy {
	return d.policy
}

func (d *DLQ) Close() error {
	if err := d.writer.Close(); err != nil {
		return fmt.Errorf("kafka.dlq.Close: %w", err)
	}
	return nil
}

// Send dead-letters originalMsg with the failure that exhausted it.
func (d *DLQ) Send(
	ctx context.Context,
	originalMsg kafka.Message,
	cause error,
	retryCount int,
) error {
	const op = "kafka.dlq.Send"

	value, err := Encode(originalMsg, cause, retryCount, time.Now())
	if err != nil {
		d.log.Errorw("failed to marshal dlq message",
			"op", op,
			"error", err,
			"original_offset", originalMsg.Offset,
			"payload_base64", base64.StdEncoding.EncodeToString(originalMsg.Value),
			"payload_size", len(originalMsg.Value),
		)
		value = []byte(fmt.Sprintf("DLQ_FALLOUT:%d", originalMsg.Offset))
	}

	err = d.writer.WriteMessages(ctx, kafka.Message{
		Key:   originalMsg.Key,
		Value: value,
	})
	if err != nil {
		d.log.Errorw("failed to send message to dlq",
			"op", op,
			"error", err,
			"offset", originalMsg.Offset,
		)
		if d.metrics != nil {
			d.metrics.SendFailed(originalMsg.Topic)
		}
		return fmt.Errorf("%s: send message: %w", op, err)
	}

	if d.metrics != nil {
		d.metrics.Sent(originalMsg.Topic, Reason(cause), retryCount)
	}
	d.log.Infow("message sent to dlq",
		"op", op,
		"topic", d.writer.Topic,
		"offset", originalMsg.Offset,
		"retry_count", retryCount,
	)

	return nil
}

// Reason labels why a draft was dead-lettered.
func Reason(cause error) string {
	if IsPermanent(cause) {
		return "rejected"
	}
	return "retry_limit_exceeded"
}

// Encode wraps msg and the failure that sent it to the dead letter topic.
func Encode(msg kafka.Message, cause error, retryCount int, at time.Time) ([]byte, error) {
	value, err := json.Marshal(Message{
		Metadata: Metadata{
			OriginalTopic: msg.Topic,
			Partition:     msg.Partition,
			Offset:        msg.Offset,
			RetryCount:    retryCount,
			Permanent:     IsPermanent(cause),
			Error:         cause.Error(),
			Timestamp:     at.UTC().Format(time.RFC3339),
		},
		Payload: string(msg.Value),
	})
	if err != nil {
		return nil, fmt.Errorf("kafka.dlq.Encode: %w", err)
	}
	return value, nil
}

func Decode(value []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(value, &msg); err != nil {
		return Message{}, fmt.Errorf("kafka.dlq.Decode: %w", err)
	}
	return msg, nil
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// ProcessWithRetry runs handler until it succeeds, returns a permanent error
// or the policy's attempts run out. The last error is returned; sending the
// message to the dead letter topic is left to the caller.
func ProcessWithRetry(
	ctx context.Context,
	msg kafka.Message,
	handler func(context.Context, kafka.Message) error,
	policy RetryPolicy,
	log logger.Logger,
) (int, error) {
	const op = "kafka.dlq.ProcessWithRetry"

	var err error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempt - 1, fmt.Errorf("%s: context: %w", op, ctxErr)
		}

		if attempt > 1 {
			delay := policy.Delay(attempt)

			log.LogAttrs(ctx, logger.InfoLevel, "retrying message processing",
				logger.String("operation", op),
				logger.Int("attempt", attempt),
				logger.String("retry_after", delay.String()),
			)

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return attempt - 1, fmt.Errorf("%s: context done: %w", op, ctx.Err())
			}
		}

		err = handler(ctx, msg)
		if err == nil {
			return attempt, nil
		}

		log.LogAttrs(ctx, logger.ErrorLevel, "message processing failed",
			logger.String("operation", op),
			logger.Int64("offset", msg.Offset),
			logger.Int("attempt", attempt),
			logger.Bool("permanent", IsPermanent(err)),
			logger.Err(err),
		)

		if IsPermanent(err) {
			return attempt, err
		}
	}

	return policy.MaxAttempts, err
}
