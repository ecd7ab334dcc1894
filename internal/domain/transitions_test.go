package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommission_Transitions(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		status      string
		apply       func(Commission) (Commission, error)
		wantStatus  string
		expectedErr error
	}{
		{"approve pending", CommissionStatusPending, func(c Commission) (Commission, error) { return c.Approve(now) }, CommissionStatusApproved, nil},
		{"approve approved", CommissionStatusApproved, func(c Commission) (Commission, error) { return c.Approve(now) }, CommissionStatusApproved, ErrInvalidState},
		{"approve cancelled", CommissionStatusCancelled, func(c Commission) (Commission, error) { return c.Approve(now) }, CommissionStatusCancelled, ErrInvalidState},
		{"cancel pending", CommissionStatusPending, func(c Commission) (Commission, error) { return c.Cancel(now) }, CommissionStatusCancelled, nil},
		{"cancel approved", CommissionStatusApproved, func(c Commission) (Commission, error) { return c.Cancel(now) }, CommissionStatusCancelled, nil},
		{"cancel cancelled", CommissionStatusCancelled, func(c Commission) (Commission, error) { return c.Cancel(now) }, CommissionStatusCancelled, ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := Commission{ID: 7, Status: tt.status}
			got, err := tt.apply(orig)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, now, got.UpdatedAt)
			}
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.status, orig.Status)
		})
	}
}

func TestAffiliate_CreditAndReverse(t *testing.T) {
	now := time.Now()
	a := Affiliate{
		ID:               1,
		Level:            1,
		DeliveredOrders:  9,
		TotalEarnings:    decimal.RequireFromString("100.00"),
		AvailableBalance: decimal.RequireFromString("40.00"),
	}
	level := func(delivered int) int {
		if delivered >= 10 {
			return 2
		}
		return 1
	}

	credited := a.CreditApproved(decimal.RequireFromString("80.00"), level, now)
	assert.Equal(t, 10, credited.DeliveredOrders)
	assert.Equal(t, 2, credited.Level)
	assert.True(t, credited.TotalEarnings.Equal(decimal.RequireFromString("180.00")))
	assert.True(t, credited.AvailableBalance.Equal(decimal.RequireFromString("120.00")))

	reversed, err := credited.ReverseApproved(decimal.RequireFromString("80.00"), now)
	require.NoError(t, err)
	assert.True(t, reversed.AvailableBalance.Equal(a.AvailableBalance))
	assert.True(t, reversed.TotalEarnings.Equal(a.TotalEarnings))
	assert.Equal(t, 10, reversed.DeliveredOrders)

	_, err = a.ReverseApproved(decimal.RequireFromString("80.00"), now)
	assert.True(t, errors.Is(err, ErrInsufficientReversal))
}

func TestAffiliate_ReserveReleaseSettle(t *testing.T) {
	now := time.Now()
	a := Affiliate{AvailableBalance: decimal.RequireFromString("200.00")}

	_, err := a.Reserve(decimal.RequireFromString("250.00"), now)
	assert.ErrorIs(t, err, ErrValidation)

	reserved, err := a.Reserve(decimal.RequireFromString("150.00"), now)
	require.NoError(t, err)
	assert.Equal(t, "50.00", reserved.AvailableBalance.StringFixed(2))

	released := reserved.Release(decimal.RequireFromString("150.00"), now)
	assert.True(t, released.AvailableBalance.Equal(a.AvailableBalance))

	settled := reserved.Settle(decimal.RequireFromString("150.00"), now)
	assert.Equal(t, "50.00", settled.AvailableBalance.StringFixed(2))
	assert.Equal(t, "150.00", settled.TotalWithdrawn.StringFixed(2))
}

func TestWithdrawal_Transitions(t *testing.T) {
	now := time.Now()
	pending := Withdrawal{ID: 3, Status: WithdrawalStatusPending}

	_, err := pending.Complete("admin", now)
	assert.ErrorIs(t, err, ErrInvalidState)

	approved, err := pending.Approve("admin", now)
	require.NoError(t, err)
	assert.Equal(t, WithdrawalStatusApproved, approved.Status)
	require.NotNil(t, approved.ProcessedBy)
	assert.Equal(t, "admin", *approved.ProcessedBy)
	assert.True(t, approved.Reserved())

	_, err = approved.Approve("admin", now)
	assert.ErrorIs(t, err, ErrInvalidState)

	completed, err := approved.Complete("ops", now)
	require.NoError(t, err)
	assert.Equal(t, WithdrawalStatusCompleted, completed.Status)
	assert.False(t, completed.Reserved())

	_, err = completed.Reject("ops", "late", now)
	assert.ErrorIs(t, err, ErrInvalidState)

	rejected, err := approved.Reject("ops", "fraud check", now)
	require.NoError(t, err)
	assert.Equal(t, WithdrawalStatusRejected, rejected.Status)
	assert.Equal(t, "fraud check", rejected.Notes)

	_, err = rejected.Reject("ops", "again", now)
	assert.ErrorIs(t, err, ErrInvalidState)
}
