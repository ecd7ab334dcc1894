package withdrawalservice

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/repo/memrepo"
	"github.com/GlebRadaev/affiliate-ledger/internal/retry"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/settingsservice"
)

type LedgerSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memrepo.Store
	ledger      *ledgerservice.Service
	withdrawals *Service
	affiliate   domain.Affiliate
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memrepo.New()
	settings := settingsservice.New(s.store.Settings)
	policy := retry.Policy{Attempts: 3, Interval: time.Millisecond}

	s.ledger = ledgerservice.New(s.store.Affiliates, s.store.Commissions, s.store.Withdrawals, settings, s.store, policy)
	s.withdrawals = New(s.store.Affiliates, s.store.Withdrawals, settings, s.store, policy)
	s.affiliate = s.store.Affiliates.Put(domain.Affiliate{
		UserID:    7,
		PromoCode: "SUMMER24",
		Status:    domain.AffiliateStatusActive,
		Level:     1,
	})
}

// earn records and approves a commission worth 5% of subtotal.
func (s *LedgerSuite) earn(orderID string, subtotal int64) *domain.Commission {
	c, err := s.ledger.RecordCommission(s.ctx, s.affiliate.ID, orderID, decimal.NewFromInt(subtotal))
	s.Require().NoError(err)
	c, err = s.ledger.ApproveCommission(s.ctx, c.ID)
	s.Require().NoError(err)
	return c
}

func (s *LedgerSuite) balance() decimal.Decimal {
	a, err := s.store.Affiliates.GetByID(s.ctx, s.affiliate.ID)
	s.Require().NoError(err)
	return a.AvailableBalance
}

func (s *LedgerSuite) assertConsistent() {
	report, err := s.ledger.Audit(s.ctx, s.affiliate.ID)
	s.Require().NoError(err)
	s.True(report.Consistent, "drift %s", report.Drift)
}

func (s *LedgerSuite) TestBalanceCheckedOnRequest() {
	s.earn("79927398713", 4000)
	s.Equal("200.00", s.balance().StringFixed(2))

	_, err := s.withdrawals.Create(s.ctx, s.affiliate.ID, decimal.NewFromInt(250), "paypal", "a@b.c")
	s.ErrorIs(err, domain.ErrValidation)
	s.Equal("200.00", s.balance().StringFixed(2))

	w, err := s.withdrawals.Create(s.ctx, s.affiliate.ID, decimal.NewFromInt(150), "paypal", "a@b.c")
	s.Require().NoError(err)
	s.Equal(domain.WithdrawalStatusPending, w.Status)
	s.Equal("50.00", s.balance().StringFixed(2))
	s.assertConsistent()
}

func (s *LedgerSuite) TestRefundAfterWithdrawal() {
	s.Require().NoError(s.store.Settings.Save(s.ctx, &domain.AffiliateSettings{
		Enabled:             true,
		MinWithdrawalAmount: decimal.NewFromInt(10),
		CookieExpiryDays:    30,
		CommissionLevels: map[int]domain.CommissionLevel{
			1: {Percentage: decimal.NewFromInt(8), Enabled: true},
		},
	}))
	c := s.earn("79927398713", 1000)
	s.Equal("80.00", c.CommissionAmount.StringFixed(2))

	w, err := s.withdrawals.Create(s.ctx, s.affiliate.ID, decimal.NewFromInt(50), "paypal", "a@b.c")
	s.Require().NoError(err)

	_, err = s.ledger.CancelByOrder(s.ctx, "79927398713")
	s.ErrorIs(err, domain.ErrInsufficientReversal)
	s.Equal("30.00", s.balance().StringFixed(2))
	s.assertConsistent()

	_, err = s.withdrawals.Reject(s.ctx, w.ID, "admin", "refunded order")
	s.Require().NoError(err)
	_, err = s.ledger.CancelByOrder(s.ctx, "79927398713")
	s.Require().NoError(err)
	s.True(s.balance().IsZero())
	s.assertConsistent()
}

func (s *LedgerSuite) TestLifecycleArithmetic() {
	s.earn("79927398713", 6000)
	before := s.balance()

	rejected, err := s.withdrawals.Create(s.ctx, s.affiliate.ID, decimal.NewFromInt(100), "paypal", "a@b.c")
	s.Require().NoError(err)
	_, err = s.withdrawals.Approve(s.ctx, rejected.ID, "admin")
	s.Require().NoError(err)
	_, err = s.withdrawals.Reject(s.ctx, rejected.ID, "admin", "")
	s.Require().NoError(err)
	s.True(before.Equal(s.balance()))

	paid, err := s.withdrawals.Create(s.ctx, s.affiliate.ID, decimal.NewFromInt(120), "paypal", "a@b.c")
	s.Require().NoError(err)
	_, err = s.withdrawals.Approve(s.ctx, paid.ID, "admin")
	s.Require().NoError(err)
	_, err = s.withdrawals.Complete(s.ctx, paid.ID, "admin")
	s.Require().NoError(err)

	a, err := s.store.Affiliates.GetByID(s.ctx, s.affiliate.ID)
	s.Require().NoError(err)
	s.Equal("180.00", a.AvailableBalance.StringFixed(2))
	s.Equal("120.00", a.TotalWithdrawn.StringFixed(2))

	_, err = s.withdrawals.Reject(s.ctx, paid.ID, "admin", "")
	s.ErrorIs(err, domain.ErrInvalidState)

	list, err := s.withdrawals.List(s.ctx, s.affiliate.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(paid.ID, list[0].ID)
	s.assertConsistent()
}

func (s *LedgerSuite) TestRandomOperationsKeepInvariant() {
	rnd := rand.New(rand.NewSource(7))
	var (
		commissions []int64
		requests    []int64
	)
	for i := 0; i < 300; i++ {
		switch rnd.Intn(7) {
		case 0:
			c, err := s.ledger.RecordCommission(s.ctx, s.affiliate.ID, decimal.NewFromInt(int64(i)).String(), decimal.New(rnd.Int63n(300000), -2))
			s.Require().NoError(err)
			commissions = append(commissions, c.ID)
		case 1:
			if len(commissions) > 0 {
				_, err := s.ledger.ApproveCommission(s.ctx, commissions[rnd.Intn(len(commissions))])
				s.Require().NoError(err)
			}
		case 2:
			if len(commissions) > 0 {
				_, err := s.ledger.CancelCommission(s.ctx, commissions[rnd.Intn(len(commissions))])
				if err != nil {
					s.Require().ErrorIs(err, domain.ErrInsufficientReversal)
				}
			}
		case 3:
			w, err := s.withdrawals.Create(s.ctx, s.affiliate.ID, decimal.New(5000+rnd.Int63n(10000), -2), "paypal", "")
			if err != nil {
				s.Require().ErrorIs(err, domain.ErrValidation)
				continue
			}
			requests = append(requests, w.ID)
		case 4, 5, 6:
			if len(requests) == 0 {
				continue
			}
			id := requests[rnd.Intn(len(requests))]
			var err error
			switch rnd.Intn(3) {
			case 0:
				_, err = s.withdrawals.Approve(s.ctx, id, "admin")
			case 1:
				_, err = s.withdrawals.Reject(s.ctx, id, "admin", "")
			default:
				_, err = s.withdrawals.Complete(s.ctx, id, "admin")
			}
			if err != nil {
				s.Require().ErrorIs(err, domain.ErrInvalidState)
			}
		}
		s.False(s.balance().IsNegative())
		s.assertConsistent()
	}
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func TestCreate_RejectsSubCentAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{name: "below minimum by a fraction of a cent", amount: "49.995"},
		{name: "above minimum with sub-cent digits", amount: "50.004"},
		{name: "below minimum", amount: "49.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memrepo.New()
			service := New(store.Affiliates, store.Withdrawals, settingsservice.New(store.Settings), store, retry.NewPolicy(0))
			a := store.Affiliates.Put(domain.Affiliate{
				Status:           domain.AffiliateStatusActive,
				Level:            1,
				TotalEarnings:    decimal.NewFromInt(100),
				AvailableBalance: decimal.NewFromInt(100),
			})

			w, err := service.Create(context.Background(), a.ID, decimal.RequireFromString(tt.amount), "paypal", "")
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, w)

			stored, err := store.Affiliates.GetByID(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Equal(t, "100.00", stored.AvailableBalance.StringFixed(2))
			list, err := store.Withdrawals.ListByAffiliate(context.Background(), a.ID)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCreate_ExactCentsAtMinimum(t *testing.T) {
	store := memrepo.New()
	service := New(store.Affiliates, store.Withdrawals, settingsservice.New(store.Settings), store, retry.NewPolicy(0))
	a := store.Affiliates.Put(domain.Affiliate{
		Status:           domain.AffiliateStatusActive,
		Level:            1,
		TotalEarnings:    decimal.NewFromInt(100),
		AvailableBalance: decimal.NewFromInt(100),
	})

	w, err := service.Create(context.Background(), a.ID, decimal.RequireFromString("50.00"), "paypal", "")
	require.NoError(t, err)
	assert.Equal(t, "50.00", w.Amount.StringFixed(2))

	stored, err := store.Affiliates.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", stored.AvailableBalance.StringFixed(2))
}
