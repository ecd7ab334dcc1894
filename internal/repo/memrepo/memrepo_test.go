package memrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

func TestStore_BeginRollsBack(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := s.Affiliates.Put(domain.Affiliate{PromoCode: "ROLL", Status: domain.AffiliateStatusActive})

	err := s.Begin(ctx, func(ctx context.Context) error {
		stored, err := s.Affiliates.GetByID(ctx, a.ID)
		require.NoError(t, err)
		stored.AvailableBalance = decimal.NewFromInt(100)
		require.NoError(t, s.Affiliates.UpdateCounters(ctx, stored))
		return errors.New("abort")
	})
	assert.EqualError(t, err, "abort")

	stored, err := s.Affiliates.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, stored.AvailableBalance.IsZero())
	assert.Equal(t, int64(1), stored.Version)
}

func TestAffiliates_UpdateCounters(t *testing.T) {
	ctx := context.Background()
	s := New()
	coupon := "CPN"
	a := s.Affiliates.Put(domain.Affiliate{PromoCode: "VER", CouponID: &coupon})

	stale := a
	a.DeliveredOrders = 1
	require.NoError(t, s.Affiliates.UpdateCounters(ctx, &a))
	assert.Equal(t, int64(2), a.Version)

	stale.DeliveredOrders = 5
	assert.ErrorIs(t, s.Affiliates.UpdateCounters(ctx, &stale), domain.ErrConcurrencyConflict)

	s.InjectConflicts(1)
	assert.ErrorIs(t, s.Affiliates.UpdateCounters(ctx, &a), domain.ErrConcurrencyConflict)
	assert.NoError(t, s.Affiliates.UpdateCounters(ctx, &a))

	stored, _ := s.Affiliates.GetByID(ctx, a.ID)
	assert.Equal(t, 1, stored.DeliveredOrders)
	require.NotNil(t, stored.CouponID)
	assert.Equal(t, "CPN", *stored.CouponID)
}

func TestCommissions_InsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()

	first, created, err := s.Commissions.Insert(ctx, &domain.Commission{AffiliateID: 1, OrderID: "18", Status: domain.CommissionStatusPending, CreatedAt: now})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := s.Commissions.Insert(ctx, &domain.Commission{AffiliateID: 1, OrderID: "18", Status: domain.CommissionStatusApproved, CreatedAt: now})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)
}

func TestAffiliates_CreateRejectsDuplicatePromoCode(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Affiliates.Create(ctx, &domain.Affiliate{UserID: 1, PromoCode: "DUP"})
	require.NoError(t, err)
	_, err = s.Affiliates.Create(ctx, &domain.Affiliate{UserID: 2, PromoCode: "dup"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	found, err := s.Affiliates.GetByPromoCode(ctx, "Dup")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.UserID)
}

func TestAffiliates_UpdateCouponRejectsTakenCoupon(t *testing.T) {
	ctx := context.Background()
	s := New()
	coupon := "CPN-1"
	owner := s.Affiliates.Put(domain.Affiliate{PromoCode: "OWNER", CouponID: &coupon})
	other := s.Affiliates.Put(domain.Affiliate{PromoCode: "OTHER"})

	_, err := s.Affiliates.UpdateCoupon(ctx, other.ID, &coupon, time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)

	again, err := s.Affiliates.UpdateCoupon(ctx, owner.ID, &coupon, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "CPN-1", *again.CouponID)

	cleared, err := s.Affiliates.UpdateCoupon(ctx, owner.ID, nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, cleared.CouponID)
	_, err = s.Affiliates.UpdateCoupon(ctx, other.ID, &coupon, time.Now())
	assert.NoError(t, err)
}
