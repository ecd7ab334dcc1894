package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

type CommissionLevel struct {
	Percentage              decimal.Decimal  `json:"percentage"`
	Enabled                 bool             `json:"enabled"`
	RequiredDeliveredOrders int              `json:"required_delivered_orders"`
	Cap                     *decimal.Decimal `json:"cap,omitempty"`
}

type AffiliateSettings struct {
	Enabled             bool                    `json:"enabled"`
	MinWithdrawalAmount decimal.Decimal         `json:"min_withdrawal_amount"`
	CookieExpiryDays    int                     `json:"cookie_expiry_days"`
	CommissionLevels    map[int]CommissionLevel `json:"commission_levels"`
}

// DefaultSettings is what the program runs with until an operator saves
// its own configuration.
func DefaultSettings() AffiliateSettings {
	return AffiliateSettings{
		Enabled:             true,
		MinWithdrawalAmount: decimal.NewFromInt(50),
		CookieExpiryDays:    30,
		CommissionLevels: map[int]CommissionLevel{
			1: {Percentage: decimal.NewFromInt(5), Enabled: true, RequiredDeliveredOrders: 0},
			2: {Percentage: decimal.NewFromInt(8), Enabled: true, RequiredDeliveredOrders: 10},
			3: {Percentage: decimal.NewFromInt(10), Enabled: true, RequiredDeliveredOrders: 25},
			4: {Percentage: decimal.NewFromInt(12), Enabled: true, RequiredDeliveredOrders: 50},
			5: {Percentage: decimal.NewFromInt(15), Enabled: true, RequiredDeliveredOrders: 100},
		},
	}
}

// Levels returns the configured level numbers in ascending order.
func (s AffiliateSettings) Levels() []int {
	levels := make([]int, 0, len(s.CommissionLevels))
	for level := range s.CommissionLevels {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// Validate checks the whole configuration. Any violation makes the program
// unusable, so a single error wrapping ErrConfiguration is returned.
func (s AffiliateSettings) Validate() error {
	if s.MinWithdrawalAmount.IsNegative() {
		return fmt.Errorf("%w: min withdrawal amount is negative", ErrConfiguration)
	}
	if s.CookieExpiryDays <= 0 {
		return fmt.Errorf("%w: cookie expiry days must be positive", ErrConfiguration)
	}
	hundred := decimal.NewFromInt(100)
	prevThreshold := 0
	for _, level := range s.Levels() {
		cfg := s.CommissionLevels[level]
		if level < MinLevel || level > MaxLevel {
			return fmt.Errorf("%w: level %d out of range", ErrConfiguration, level)
		}
		if cfg.Percentage.IsNegative() || cfg.Percentage.GreaterThan(hundred) {
			return fmt.Errorf("%w: level %d percentage %s out of [0,100]", ErrConfiguration, level, cfg.Percentage)
		}
		if cfg.RequiredDeliveredOrders < 0 {
			return fmt.Errorf("%w: level %d threshold is negative", ErrConfiguration, level)
		}
		if cfg.RequiredDeliveredOrders < prevThreshold {
			return fmt.Errorf("%w: level %d threshold %d is below previous level", ErrConfiguration, level, cfg.RequiredDeliveredOrders)
		}
		if cfg.Cap != nil && cfg.Cap.IsNegative() {
			return fmt.Errorf("%w: level %d cap is negative", ErrConfiguration, level)
		}
		prevThreshold = cfg.RequiredDeliveredOrders
	}
	return nil
}
