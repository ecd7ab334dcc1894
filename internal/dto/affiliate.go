package dto

import (
	"time"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type EnrollRequestDTO struct {
	PromoCode string `json:"promo_code" example:"SPRING24"`
}

type StatusRequestDTO struct {
	Status string `json:"status" example:"suspended" enums:"active,inactive,suspended"`
}

type CouponRequestDTO struct {
	CouponID *string `json:"coupon_id" example:"SUMMER-10"`
}

type AffiliateResponseDTO struct {
	ID               int64           `json:"id" example:"12"`
	UserID           int64           `json:"user_id" example:"1001"`
	PromoCode        string          `json:"promo_code" example:"SPRING24"`
	Status           string          `json:"status" example:"active"`
	Level            int             `json:"level" example:"2"`
	TotalOrders      int             `json:"total_orders" example:"14"`
	DeliveredOrders  int             `json:"delivered_orders" example:"11"`
	TotalEarnings    decimal.Decimal `json:"total_earnings" swaggertype:"string" example:"430.50"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn" swaggertype:"string" example:"200"`
	AvailableBalance decimal.Decimal `json:"available_balance" swaggertype:"string" example:"230.50"`
	CouponID         *string         `json:"coupon_id,omitempty" example:"SUMMER-10"`
	CreatedAt        time.Time       `json:"created_at" example:"2024-01-10T12:00:00Z"`
}

func NewAffiliateResponse(a *domain.Affiliate) AffiliateResponseDTO {
	return AffiliateResponseDTO{
		ID:               a.ID,
		UserID:           a.UserID,
		PromoCode:        a.PromoCode,
		Status:           a.Status,
		Level:            a.Level,
		TotalOrders:      a.TotalOrders,
		DeliveredOrders:  a.DeliveredOrders,
		TotalEarnings:    a.TotalEarnings,
		TotalWithdrawn:   a.TotalWithdrawn,
		AvailableBalance: a.AvailableBalance,
		CouponID:         a.CouponID,
		CreatedAt:        a.CreatedAt,
	}
}

type ProgressResponseDTO struct {
	AffiliateID      int64   `json:"affiliate_id" example:"12"`
	CurrentLevel     int     `json:"current_level" example:"1"`
	DeliveredOrders  int     `json:"delivered_orders" example:"5"`
	NextLevel        *int    `json:"next_level" example:"2"`
	RequiredSales    int     `json:"required_sales" example:"10"`
	ProgressFraction float64 `json:"progress" example:"0.5"`
}

func NewProgressResponse(p *domain.AffiliateProgress) ProgressResponseDTO {
	return ProgressResponseDTO{
		AffiliateID:      p.AffiliateID,
		CurrentLevel:     p.CurrentLevel,
		DeliveredOrders:  p.DeliveredOrders,
		NextLevel:        p.NextLevel,
		RequiredSales:    p.RequiredSales,
		ProgressFraction: p.ProgressFraction,
	}
}

type DashboardResponseDTO struct {
	Affiliate AffiliateResponseDTO `json:"affiliate"`
	Progress  ProgressResponseDTO  `json:"progress"`
}

type LedgerReportResponseDTO struct {
	AffiliateID              int64           `json:"affiliate_id" example:"12"`
	ExpectedEarnings         decimal.Decimal `json:"expected_earnings" swaggertype:"string" example:"430.50"`
	ExpectedWithdrawn        decimal.Decimal `json:"expected_withdrawn" swaggertype:"string" example:"200"`
	ExpectedAvailableBalance decimal.Decimal `json:"expected_available_balance" swaggertype:"string" example:"230.50"`
	ActualEarnings           decimal.Decimal `json:"actual_earnings" swaggertype:"string" example:"430.50"`
	ActualWithdrawn          decimal.Decimal `json:"actual_withdrawn" swaggertype:"string" example:"200"`
	ActualAvailableBalance   decimal.Decimal `json:"actual_available_balance" swaggertype:"string" example:"230.50"`
	Drift                    decimal.Decimal `json:"drift" swaggertype:"string" example:"0"`
	Consistent               bool            `json:"consistent" example:"true"`
}

func NewLedgerReportResponse(r *domain.LedgerReport) LedgerReportResponseDTO {
	return LedgerReportResponseDTO{
		AffiliateID:              r.AffiliateID,
		ExpectedEarnings:         r.ExpectedEarnings,
		ExpectedWithdrawn:        r.ExpectedWithdrawn,
		ExpectedAvailableBalance: r.ExpectedAvailableBalance,
		ActualEarnings:           r.ActualEarnings,
		ActualWithdrawn:          r.ActualWithdrawn,
		ActualAvailableBalance:   r.ActualAvailableBalance,
		Drift:                    r.Drift,
		Consistent:               r.Consistent,
	}
}
