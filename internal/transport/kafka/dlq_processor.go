package kafkat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/kafka/dlq"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"

	"github.com/segmentio/kafka-go"
)

const (
	_defaultDLQPollInterval   = time.Second
	_defaultDLQProcessTimeout = 30 * time.Second
	_defaultDLQHandleTimeout  = 2 * time.Second
	_dlqSendAttempts          = 3
)

type outcome string

const (
	outcomeSaved         outcome = "saved"
	outcomeExists        outcome = "already_exists"
	outcomeBudgetSpent   outcome = "retry_budget_spent"
	outcomePermanent     outcome = "permanent"
	outcomeMalformed     outcome = "malformed"
	outcomeRequeued      outcome = "requeued"
	outcomeRequeueFailed outcome = "requeue_failed"
)

// DLQProcessor gives dead-lettered drafts another chance once their failure
// may have cleared.
type DLQProcessor struct {
	dlqReader  MessageReader
	dlq        DeadLetters
	svc        OrderService
	maxRetries int
	metrics    metric.DLQ
	log        logger.Logger
	sendDelay  time.Duration
}

func NewDLQProcessor(
	reader MessageReader,
	deadLetters DeadLetters,
	svc OrderService,
	maxRetries int,
	metrics metric.DLQ,
	log logger.Logger,
) *DLQProcessor {
	return &DLQProcessor{
		dlqReader:  reader,
		dlq:        deadLetters,
		svc:        svc,
		maxRetries: maxRetries,
		metrics:    metrics,
		log:        log,
		sendDelay:  100 * time.Millisecond,
	}
}

func (p *DLQProcessor) Start(ctx context.Context) error {
	defer func() {
		if err := p.dlqReader.Close(); err != nil {
			p.log.Warnw("close dlq reader", "error", err)
		}
	}()

	ticker := time.NewTicker(_defaultDLQPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Infow("dlq processor shutting down")
			return nil
		case <-ticker.C:
			p.processBatch(ctx)
		}
	}
}

func (p *DLQProcessor) processBatch(ctx context.Context) {
	processCtx, cancel := context.WithTimeout(ctx, _defaultDLQProcessTimeout)
	defer cancel()

	msg, err := p.dlqReader.ReadMessage(processCtx)
	if err != nil {
		if processCtx.Err() != nil {
			return
		}
		p.log.Errorw("read dlq message", "error", err)
		return
	}

	p.metrics.Reprocessed(string(p.reprocess(processCtx, msg)))
}

func (p *DLQProcessor) reprocess(ctx context.Context, msg kafka.Message) outcome {
	log := p.log.Ctx(ctx)

	envelope, err := dlq.Decode(msg.Value)
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "unmarshal dlq message",
			logger.Int64("offset", msg.Offset),
			logger.Err(err),
		)
		return outcomeMalformed
	}

	retryCount := envelope.Metadata.RetryCount
	if envelope.Metadata.Permanent {
		log.LogAttrs(ctx, logger.WarnLevel, "dropping rejected dlq message",
			logger.Int64("offset", msg.Offset),
			logger.String("error", envelope.Metadata.Error),
		)
		return outcomePermanent
	}
	if retryCount >= p.maxRetries {
		log.LogAttrs(ctx, logger.WarnLevel, "skipping dlq message after max retries",
			logger.Int64("offset", msg.Offset),
			logger.Int("retry_count", retryCount),
		)
		return outcomeBudgetSpent
	}

	order, err := decodeOrder([]byte(envelope.Payload))
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "unmarshal dlq payload",
			logger.Int64("offset", msg.Offset),
			logger.Err(err),
		)
		return outcomeMalformed
	}

	if order.ID != "" {
		if _, err = p.svc.GetOrder(ctx, order.ID); err == nil {
			log.LogAttrs(ctx, logger.InfoLevel, "order already exists, skipping",
				logger.String("order_id", order.ID),
				logger.Int64("offset", msg.Offset),
			)
			return outcomeExists
		}
	}

	handleCtx, handleCancel := context.WithTimeout(ctx, _defaultDLQHandleTimeout)
	defer handleCancel()

	saved, err := p.svc.SaveOrder(handleCtx, order, _source)
	if err == nil || errors.Is(err, entity.ErrStoredLocally) {
		id := order.ID
		if saved != nil {
			id = saved.ID
		}
		log.LogAttrs(ctx, logger.InfoLevel, "dlq message processed successfully",
			logger.String("order_id", id),
			logger.Int64("offset", msg.Offset),
		)
		return outcomeSaved
	}

	log.LogAttrs(ctx, logger.ErrorLevel, "retry dlq message",
		logger.Int64("offset", msg.Offset),
		logger.Int("retry_count", retryCount),
		logger.Err(err),
	)

	if errors.Is(err, entity.ErrInvalidData) || errors.Is(err, entity.ErrConflictingData) {
		err = dlq.Permanent(err)
	}

	if err = p.requeue(ctx, msg, envelope, err, retryCount+1); err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "failed to send to DLQ after retries",
			logger.Int64("offset", msg.Offset),
			logger.Int("retry_count", retryCount+1),
			logger.Err(err),
		)
		return outcomeRequeueFailed
	}
	return outcomeRequeued
}

// requeue writes the original payload back with a bumped retry count.
func (p *DLQProcessor) requeue(
	ctx context.Context,
	msg kafka.Message,
	envelope dlq.Message,
	cause error,
	retryCount int,
) error {
	original := kafka.Message{
		Topic:     envelope.Metadata.OriginalTopic,
		Partition: envelope.Metadata.Partition,
		Offset:    envelope.Metadata.Offset,
		Key:       msg.Key,
		Value:     []byte(envelope.Payload),
	}

	var err error
	for i := range _dlqSendAttempts {
		if err = p.dlq.Send(ctx, original, cause, retryCount); err == nil {
			return nil
		}

		p.log.Warnw("failed to send to DLQ, retrying",
			"retry", i+1,
			"error", err)

		select {
		case <-time.After(p.sendDelay * time.Duration(i+1)):
		case <-ctx.Done():
			return fmt.Errorf("transport.kafka.dlq_processor.requeue: %w", ctx.Err())
		}
	}
	return fmt.Errorf("transport.kafka.dlq_processor.requeue: %w", err)
}
