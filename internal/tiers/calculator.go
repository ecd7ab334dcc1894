package tiers

import (
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/money"
)

// ComputeCommission returns the commission owed on a commissionable subtotal
// (after coupon discount, before shipping and tax) at the given level.
func ComputeCommission(subtotal decimal.Decimal, level int, settings *domain.AffiliateSettings) decimal.Decimal {
	if settings == nil || !subtotal.IsPositive() {
		return decimal.Zero
	}
	cfg, ok := settings.CommissionLevels[level]
	if !ok || !cfg.Enabled {
		return decimal.Zero
	}
	amount := money.Percent(subtotal, cfg.Percentage)
	if cfg.Cap != nil && amount.GreaterThan(*cfg.Cap) {
		amount = money.Round(*cfg.Cap)
	}
	return amount
}

// Percentage returns the rate applied at level, zero when the level is
// unknown or disabled.
func Percentage(level int, settings *domain.AffiliateSettings) decimal.Decimal {
	if settings == nil {
		return decimal.Zero
	}
	cfg, ok := settings.CommissionLevels[level]
	if !ok || !cfg.Enabled {
		return decimal.Zero
	}
	return cfg.Percentage
}
