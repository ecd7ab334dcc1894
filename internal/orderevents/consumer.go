package orderevents

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/affiliate-ledger/internal/config"
	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/metrics"
)

const (
	pollTimeout   = 250 * time.Millisecond
	retryInterval = time.Second
	maxBackoff    = 30 * time.Second
)

//go:generate mockgen -source=consumer.go -destination=mock_consumer.go -package=orderevents
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Handler interface {
	Handle(ctx context.Context, e Event) error
}

func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers(),
		GroupID:  cfg.KafkaGroupID,
		Topic:    cfg.KafkaTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
}

type Consumer struct {
	reader        Reader
	handler       Handler
	dedup         Dedup
	decoder       Decoder
	workerPool    WorkerPoolI
	batchSize     int
	retryInterval time.Duration
}

func NewConsumer(cfg *config.Config, reader Reader, handler Handler, dedup Dedup) *Consumer {
	batchSize := cfg.KafkaBatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Consumer{
		reader:        reader,
		handler:       handler,
		dedup:         dedup,
		decoder:       Decoder{LuhnOrderIDs: cfg.OrderIDLuhn},
		workerPool:    NewWorkerPool(cfg.EventWorkers),
		batchSize:     batchSize,
		retryInterval: retryInterval,
	}
}

// Run consumes until ctx is cancelled. Offsets are committed only after the
// whole batch has been applied.
func (c *Consumer) Run(ctx context.Context) error {
	zap.L().Info("Order event consumer started")
	defer c.workerPool.Close()

	for {
		batch, err := c.poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				zap.L().Info("Context canceled, stopping order event consumer")
				return nil
			}
			zap.L().Error("Failed to fetch order events", zap.Error(err))
			if err := sleep(ctx, c.retryInterval); err != nil {
				return nil
			}
			continue
		}
		if len(batch) == 0 {
			continue
		}

		if err := c.processWithRetry(ctx, batch); err != nil {
			return nil
		}
		if err := c.reader.CommitMessages(ctx, batch...); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			zap.L().Error("Failed to commit order events", zap.Int("count", len(batch)), zap.Error(err))
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// poll blocks for the first message, then drains whatever else is ready up
// to the batch size.
func (c *Consumer) poll(ctx context.Context) ([]kafka.Message, error) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	batch := []kafka.Message{msg}
	for len(batch) < c.batchSize {
		readCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		msg, err := c.reader.FetchMessage(readCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				break
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Warn("Stopped filling order event batch", zap.Error(err))
			break
		}
		batch = append(batch, msg)
	}
	return batch, nil
}

// processWithRetry reapplies a batch until it succeeds. Events already applied
// are skipped through the dedup cache and the idempotent ledger.
func (c *Consumer) processWithRetry(ctx context.Context, batch []kafka.Message) error {
	for attempt := 1; ; attempt++ {
		err := c.processBatch(ctx, batch)
		if err == nil {
			return nil
		}
		backoff := c.retryInterval * time.Duration(attempt)
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		zap.L().Warn("Order event batch failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("retryAfter", backoff),
			zap.Error(err),
		)
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
	}
}

func (c *Consumer) processBatch(ctx context.Context, batch []kafka.Message) error {
	var g errgroup.Group
	for _, group := range groupByOrder(c.decoder, batch) {
		group := group
		g.Go(func() error {
			done, err := c.workerPool.Submit(ctx, func() error {
				return c.handleGroup(ctx, group)
			})
			if err != nil {
				return err
			}
			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// handleGroup applies the events of one order in offset order and stops at
// the first transient failure.
func (c *Consumer) handleGroup(ctx context.Context, events []Event) error {
	for _, e := range events {
		if err := c.handleEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (c *Consumer) handleEvent(ctx context.Context, e Event) error {
	seen, err := c.dedup.Seen(ctx, e.EventID)
	if err != nil {
		zap.L().Warn("Dedup lookup failed, applying event anyway", zap.String("event_id", e.EventID), zap.Error(err))
	}
	if seen {
		metrics.OrderEvents.WithLabelValues(e.Type, metrics.OutcomeNoop).Inc()
		return nil
	}

	err = c.handler.Handle(ctx, e)
	switch {
	case err == nil:
		metrics.OrderEvents.WithLabelValues(e.Type, metrics.OutcomeOK).Inc()
	case isPermanent(err):
		metrics.OrderEvents.WithLabelValues(e.Type, metrics.OutcomeRejected).Inc()
		zap.L().Warn("Order event rejected",
			zap.String("event_id", e.EventID),
			zap.String("type", e.Type),
			zap.String("order_id", e.OrderID),
			zap.Error(err),
		)
	default:
		metrics.OrderEvents.WithLabelValues(e.Type, metrics.OutcomeError).Inc()
		return err
	}

	if err := c.dedup.Mark(ctx, e.EventID); err != nil {
		zap.L().Warn("Failed to mark event as processed", zap.String("event_id", e.EventID), zap.Error(err))
	}
	return nil
}

// groupByOrder decodes the batch and groups events by order id keeping the
// relative order of each order's events. Undecodable messages are dropped.
func groupByOrder(decoder Decoder, batch []kafka.Message) [][]Event {
	index := make(map[string]int)
	var groups [][]Event
	for _, msg := range batch {
		e, err := decoder.Decode(msg.Value)
		if err != nil {
			metrics.OrderEvents.WithLabelValues("unknown", metrics.OutcomeRejected).Inc()
			zap.L().Warn("Dropping undecodable order event",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}
		i, ok := index[e.OrderID]
		if !ok {
			i = len(groups)
			index[e.OrderID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}

// isPermanent reports errors that redelivery cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInactive) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrInsufficientReversal)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
