package dto

import (
	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CommissionLevelDTO struct {
	Percentage              decimal.Decimal  `json:"percentage" swaggertype:"string" example:"5"`
	Enabled                 bool             `json:"enabled" example:"true"`
	RequiredDeliveredOrders int              `json:"required_delivered_orders" example:"0"`
	Cap                     *decimal.Decimal `json:"cap,omitempty" swaggertype:"string" example:"100"`
}

type SettingsDTO struct {
	Enabled             bool                       `json:"enabled" example:"true"`
	MinWithdrawalAmount decimal.Decimal            `json:"min_withdrawal_amount" swaggertype:"string" example:"50"`
	CookieExpiryDays    int                        `json:"cookie_expiry_days" example:"30"`
	CommissionLevels    map[int]CommissionLevelDTO `json:"commission_levels"`
	InvalidReason       string                     `json:"invalid_reason,omitempty" readonly:"true" example:""`
}

func NewSettingsDTO(s *domain.AffiliateSettings) SettingsDTO {
	levels := make(map[int]CommissionLevelDTO, len(s.CommissionLevels))
	for level, cfg := range s.CommissionLevels {
		levels[level] = CommissionLevelDTO(cfg)
	}
	return SettingsDTO{
		Enabled:             s.Enabled,
		MinWithdrawalAmount: s.MinWithdrawalAmount,
		CookieExpiryDays:    s.CookieExpiryDays,
		CommissionLevels:    levels,
	}
}

func (d SettingsDTO) ToDomain() *domain.AffiliateSettings {
	levels := make(map[int]domain.CommissionLevel, len(d.CommissionLevels))
	for level, cfg := range d.CommissionLevels {
		levels[level] = domain.CommissionLevel(cfg)
	}
	return &domain.AffiliateSettings{
		Enabled:             d.Enabled,
		MinWithdrawalAmount: d.MinWithdrawalAmount,
		CookieExpiryDays:    d.CookieExpiryDays,
		CommissionLevels:    levels,
	}
}
