package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Approve moves a pending commission to approved.
func (c Commission) Approve(now time.Time) (Commission, error) {
	if c.Status != CommissionStatusPending {
		return c, fmt.Errorf("%w: commission %d is %s", ErrInvalidState, c.ID, c.Status)
	}
	c.Status = CommissionStatusApproved
	c.UpdatedAt = now
	return c, nil
}

// Cancel moves a pending or approved commission to cancelled.
func (c Commission) Cancel(now time.Time) (Commission, error) {
	if c.Status != CommissionStatusPending && c.Status != CommissionStatusApproved {
		return c, fmt.Errorf("%w: commission %d is %s", ErrInvalidState, c.ID, c.Status)
	}
	c.Status = CommissionStatusCancelled
	c.UpdatedAt = now
	return c, nil
}

// CountOrder registers a newly attributed order.
func (a Affiliate) CountOrder(now time.Time) Affiliate {
	a.TotalOrders++
	a.UpdatedAt = now
	return a
}

// CreditApproved books an approved commission: earnings and balance grow by
// amount, the order counts as delivered and the level is recomputed by level.
func (a Affiliate) CreditApproved(amount decimal.Decimal, level func(delivered int) int, now time.Time) Affiliate {
	a.TotalEarnings = a.TotalEarnings.Add(amount)
	a.AvailableBalance = a.AvailableBalance.Add(amount)
	a.DeliveredOrders++
	if level != nil {
		a.Level = level(a.DeliveredOrders)
	}
	a.UpdatedAt = now
	return a
}

// ReverseApproved undoes CreditApproved's monetary effect. Delivered orders
// and level are kept.
func (a Affiliate) ReverseApproved(amount decimal.Decimal, now time.Time) (Affiliate, error) {
	if a.AvailableBalance.LessThan(amount) {
		return a, fmt.Errorf("%w: balance %s, amount %s", ErrInsufficientReversal, a.AvailableBalance, amount)
	}
	a.TotalEarnings = a.TotalEarnings.Sub(amount)
	a.AvailableBalance = a.AvailableBalance.Sub(amount)
	a.UpdatedAt = now
	return a, nil
}

// Reserve takes amount out of the available balance for a new withdrawal.
func (a Affiliate) Reserve(amount decimal.Decimal, now time.Time) (Affiliate, error) {
	if amount.GreaterThan(a.AvailableBalance) {
		return a, fmt.Errorf("%w: amount %s exceeds available balance %s", ErrValidation, amount, a.AvailableBalance)
	}
	a.AvailableBalance = a.AvailableBalance.Sub(amount)
	a.UpdatedAt = now
	return a, nil
}

// Release returns a reserved amount to the available balance.
func (a Affiliate) Release(amount decimal.Decimal, now time.Time) Affiliate {
	a.AvailableBalance = a.AvailableBalance.Add(amount)
	a.UpdatedAt = now
	return a
}

// Settle turns a reservation into a permanent deduction.
func (a Affiliate) Settle(amount decimal.Decimal, now time.Time) Affiliate {
	a.TotalWithdrawn = a.TotalWithdrawn.Add(amount)
	a.UpdatedAt = now
	return a
}

func (w Withdrawal) Approve(processedBy string, now time.Time) (Withdrawal, error) {
	if w.Status != WithdrawalStatusPending {
		return w, fmt.Errorf("%w: withdrawal %d is %s", ErrInvalidState, w.ID, w.Status)
	}
	return w.processed(WithdrawalStatusApproved, processedBy, now), nil
}

func (w Withdrawal) Reject(processedBy, notes string, now time.Time) (Withdrawal, error) {
	if w.Status != WithdrawalStatusPending && w.Status != WithdrawalStatusApproved {
		return w, fmt.Errorf("%w: withdrawal %d is %s", ErrInvalidState, w.ID, w.Status)
	}
	w = w.processed(WithdrawalStatusRejected, processedBy, now)
	w.Notes = notes
	return w, nil
}

func (w Withdrawal) Complete(processedBy string, now time.Time) (Withdrawal, error) {
	if w.Status != WithdrawalStatusApproved {
		return w, fmt.Errorf("%w: withdrawal %d is %s", ErrInvalidState, w.ID, w.Status)
	}
	return w.processed(WithdrawalStatusCompleted, processedBy, now), nil
}

func (w Withdrawal) processed(status, processedBy string, now time.Time) Withdrawal {
	w.Status = status
	w.ProcessedAt = &now
	w.ProcessedBy = &processedBy
	return w
}

// Reserved reports whether the withdrawal amount is still held back from
// the available balance.
func (w Withdrawal) Reserved() bool {
	return w.Status == WithdrawalStatusPending || w.Status == WithdrawalStatusApproved
}
