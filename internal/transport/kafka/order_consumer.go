package kafkat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/kafka/dlq"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=order_consumer.go -destination=mock/kafka.go -package=mock_kafkat

const _source = "kafka"

type (
	MessageReader interface {
		ReadMessage(ctx context.Context) (kafka.Message, error)
		Close() error
	}

	DeadLetters interface {
		Send(ctx context.Context, msg kafka.Message, err error, retryCount int) error
	}

	OrderService interface {
		SaveOrder(ctx context.Context, order *entity.Order, source string) (*entity.Order, error)
		GetOrder(ctx context.Context, id string) (*entity.Order, error)
	}
)

// OrderConsumer saves order drafts published on the intake topic.
type OrderConsumer struct {
	reader MessageReader
	dlq    DeadLetters
	policy dlq.RetryPolicy
	svc    OrderService
	metric metric.Kafka
	log    logger.Logger
}

func NewOrderConsumer(
	reader MessageReader,
	deadLetters DeadLetters,
	policy dlq.RetryPolicy,
	svc OrderService,
	metric metric.Kafka,
	log logger.Logger,
) *OrderConsumer {
	return &OrderConsumer{
		reader: reader,
		dlq:    deadLetters,
		policy: policy,
		svc:    svc,
		metric: metric,
		log:    log,
	}
}

func (c *OrderConsumer) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return c.run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		c.log.Infow("shutting down consumer")
		return c.reader.Close()
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("transport.kafka.order_consumer.Start: %w", err)
	}
	return nil
}

// run reads until ctx ends. Consecutive read failures back off following the
// retry policy.
func (c *OrderConsumer) run(ctx context.Context) error {
	failures := 0
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			failures++
			delay := c.policy.Delay(failures + 1)
			c.log.LogAttrs(ctx, logger.ErrorLevel, "kafka read failed",
				logger.Int("failures", failures),
				logger.Duration("backoff", delay),
				logger.Err(err),
			)
			if !sleep(ctx, delay) {
				return nil
			}
			continue
		}
		failures = 0

		c.metric.MessageProcessed(msg.Topic, msg.Partition)
		if msg.HighWaterMark > 0 {
			c.metric.ConsumerGroupLag(msg.Topic, msg.Partition, msg.HighWaterMark-msg.Offset-1)
		}
		c.processMessage(ctx, msg)
	}
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *OrderConsumer) processMessage(ctx context.Context, msg kafka.Message) {
	log := c.log.Ctx(ctx)
	log.LogAttrs(ctx, logger.DebugLevel, "processing kafka message",
		logger.String("topic", msg.Topic),
		logger.Int("partition", msg.Partition),
		logger.Int64("offset", msg.Offset),
	)

	attempts, err := dlq.ProcessWithRetry(ctx, msg, c.handleMessage, c.policy, c.log)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		return
	}

	reason := dlq.Reason(err)
	c.metric.MessageFailed(msg.Topic, reason)

	if dlqErr := c.dlq.Send(ctx, msg, err, attempts); dlqErr != nil {
		sum := sha256.Sum256(msg.Value)
		log.LogAttrs(ctx, logger.ErrorLevel, "critical: failed to send to DLQ",
			logger.Int64("offset", msg.Offset),
			logger.String("payload_hash", hex.EncodeToString(sum[:])),
			logger.Any("original_error", err),
			logger.Any("dlq_error", dlqErr),
		)
		return
	}

	log.LogAttrs(ctx, logger.WarnLevel, "message sent to DLQ",
		logger.Int64("offset", msg.Offset),
		logger.Int("attempts", attempts),
		logger.String("reason", reason),
	)
}

func (c *OrderConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	const op = "transport.kafka.order_consumer.handleMessage"

	order, err := decodeOrder(msg.Value)
	if err != nil {
		return dlq.Permanent(fmt.Errorf("%s: %w", op, err))
	}

	saved, err := c.svc.SaveOrder(ctx, order, _source)
	switch {
	case errors.Is(err, entity.ErrStoredLocally):
		c.log.LogAttrs(ctx, logger.WarnLevel, "order kept in pending store",
			logger.String("op", op),
			logger.Int64("offset", msg.Offset),
			logger.Err(err),
		)
		return nil
	case errors.Is(err, entity.ErrInvalidData), errors.Is(err, entity.ErrConflictingData):
		return dlq.Permanent(fmt.Errorf("%s: save order: %w", op, err))
	case err != nil:
		return fmt.Errorf("%s: save order: %w", op, err)
	}

	c.log.LogAttrs(ctx, logger.InfoLevel, "order saved from kafka",
		logger.String("order_id", saved.ID),
		logger.String("created_by", saved.CreatedBy),
		logger.Int64("offset", msg.Offset),
	)

	return nil
}

// decodeOrder parses a draft. Drafts must name the account they belong to.
func decodeOrder(value []byte) (*entity.Order, error) {
	var order entity.Order
	if err := json.Unmarshal(value, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w: %w", entity.ErrInvalidData, err)
	}
	if order.CreatedBy == "" {
		return nil, fmt.Errorf("order without created_by: %w", entity.ErrInvalidData)
	}
	return &order, nil
}
