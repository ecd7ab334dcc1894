package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

func TestPolicy_OnConflict(t *testing.T) {
	tests := []struct {
		name          string
		failures      int
		err           error
		expectedCalls int
		expectedErr   error
	}{
		{name: "succeeds first time", expectedCalls: 1},
		{name: "succeeds after conflicts", failures: 2, err: domain.ErrConcurrencyConflict, expectedCalls: 3},
		{name: "gives up", failures: 10, err: domain.ErrConcurrencyConflict, expectedCalls: 3, expectedErr: domain.ErrConcurrencyConflict},
		{name: "other errors are not retried", failures: 10, err: domain.ErrValidation, expectedCalls: 1, expectedErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{Attempts: 3, Interval: time.Millisecond}
			calls := 0
			err := p.OnConflict(context.Background(), "test", func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			assert.Equal(t, tt.expectedCalls, calls)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicy_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{Attempts: 5, Interval: time.Hour}
	calls := 0
	err := p.OnConflict(ctx, "test", func(context.Context) error {
		calls++
		cancel()
		return domain.ErrConcurrencyConflict
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, calls)
}

func TestNewPolicy(t *testing.T) {
	assert.Equal(t, DefaultAttempts, NewPolicy(0).Attempts)
	assert.Equal(t, 3, NewPolicy(3).Attempts)
}
