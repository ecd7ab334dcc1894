// Package retry re-runs units of work that lost an optimistic concurrency race.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/metrics"
)

const (
	DefaultAttempts = 5
	DefaultInterval = 10 * time.Millisecond
)

type Policy struct {
	Attempts int
	Interval time.Duration
}

func NewPolicy(attempts int) Policy {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return Policy{Attempts: attempts, Interval: DefaultInterval}
}

// OnConflict calls fn until it returns something other than
// domain.ErrConcurrencyConflict or the attempts run out. Waits grow linearly.
func (p Policy) OnConflict(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		metrics.LedgerConflicts.WithLabelValues(operation).Inc()
		zap.L().Warn("ledger conflict, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Interval * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, err)
}
