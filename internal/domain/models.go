package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AffiliateStatusActive    = "active"
	AffiliateStatusInactive  = "inactive"
	AffiliateStatusSuspended = "suspended"
)

const (
	CommissionStatusPending   = "pending"
	CommissionStatusApproved  = "approved"
	CommissionStatusCancelled = "cancelled"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusCompleted = "completed"
)

type Affiliate struct {
	ID               int64           `db:"id"`
	UserID           int64           `db:"user_id"`
	PromoCode        string          `db:"promo_code"`
	Status           string          `db:"status"`
	Level            int             `db:"level"`
	TotalOrders      int             `db:"total_orders"`
	DeliveredOrders  int             `db:"delivered_orders"`
	TotalEarnings    decimal.Decimal `db:"total_earnings"`
	TotalWithdrawn   decimal.Decimal `db:"total_withdrawn"`
	AvailableBalance decimal.Decimal `db:"available_balance"`
	CouponID         *string         `db:"coupon_id"`
	Version          int64           `db:"version"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (a Affiliate) IsActive() bool {
	return a.Status == AffiliateStatusActive
}

// AffiliateRef is what promo code resolution hands to checkout.
type AffiliateRef struct {
	ID        int64
	PromoCode string
}

type Commission struct {
	ID                       int64           `db:"id"`
	AffiliateID              int64           `db:"affiliate_id"`
	OrderID                  string          `db:"order_id"`
	Level                    int             `db:"level"`
	OrderCommissionableTotal decimal.Decimal `db:"order_commissionable_total"`
	CommissionPercentage     decimal.Decimal `db:"commission_percentage"`
	CommissionAmount         decimal.Decimal `db:"commission_amount"`
	Status                   string          `db:"status"`
	CreatedAt                time.Time       `db:"created_at"`
	UpdatedAt                time.Time       `db:"updated_at"`
}

type Withdrawal struct {
	ID             int64           `db:"id"`
	AffiliateID    int64           `db:"affiliate_id"`
	Amount         decimal.Decimal `db:"amount"`
	Status         string          `db:"status"`
	PaymentMethod  string          `db:"payment_method"`
	PaymentDetails string          `db:"payment_details"`
	RequestedAt    time.Time       `db:"requested_at"`
	ProcessedAt    *time.Time      `db:"processed_at"`
	ProcessedBy    *string         `db:"processed_by"`
	Notes          string          `db:"notes"`
}

// AttributionToken is time-boxed evidence that a visitor arrived through
// an affiliate's promo code. It is never mutated, only replaced.
type AttributionToken struct {
	ID          string
	PromoCode   string
	AffiliateID int64
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// ValidAt reports whether the token can still be used at now.
func (t AttributionToken) ValidAt(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}

type Progress struct {
	NextLevel        *int
	RequiredSales    int
	ProgressFraction float64
}

type AffiliateProgress struct {
	AffiliateID     int64
	CurrentLevel    int
	DeliveredOrders int
	Progress
}
