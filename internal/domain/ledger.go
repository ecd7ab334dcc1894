package domain

import "github.com/shopspring/decimal"

type LedgerReport struct {
	AffiliateID              int64
	ExpectedEarnings         decimal.Decimal
	ExpectedWithdrawn        decimal.Decimal
	ExpectedAvailableBalance decimal.Decimal
	ActualEarnings           decimal.Decimal
	ActualWithdrawn          decimal.Decimal
	ActualAvailableBalance   decimal.Decimal
	Drift                    decimal.Decimal
	Consistent               bool
}

// CheckLedger recomputes the affiliate counters from stored commissions and
// withdrawals and compares them with what the affiliate row holds.
//
//	available = sum(approved commissions) - withdrawn - sum(pending+approved withdrawals)
func CheckLedger(a Affiliate, commissions []Commission, withdrawals []Withdrawal) LedgerReport {
	earned := decimal.Zero
	for _, c := range commissions {
		if c.AffiliateID == a.ID && c.Status == CommissionStatusApproved {
			earned = earned.Add(c.CommissionAmount)
		}
	}
	withdrawn, reserved := decimal.Zero, decimal.Zero
	for _, w := range withdrawals {
		if w.AffiliateID != a.ID {
			continue
		}
		switch {
		case w.Status == WithdrawalStatusCompleted:
			withdrawn = withdrawn.Add(w.Amount)
		case w.Reserved():
			reserved = reserved.Add(w.Amount)
		}
	}
	expected := earned.Sub(withdrawn).Sub(reserved)
	drift := a.AvailableBalance.Sub(expected)

	return LedgerReport{
		AffiliateID:              a.ID,
		ExpectedEarnings:         earned,
		ExpectedWithdrawn:        withdrawn,
		ExpectedAvailableBalance: expected,
		ActualEarnings:           a.TotalEarnings,
		ActualWithdrawn:          a.TotalWithdrawn,
		ActualAvailableBalance:   a.AvailableBalance,
		Drift:                    drift,
		Consistent: drift.IsZero() &&
			earned.Equal(a.TotalEarnings) &&
			withdrawn.Equal(a.TotalWithdrawn) &&
			!a.AvailableBalance.IsNegative(),
	}
}
