// Package tiers maps delivered-order counts to commission levels and
// computes commission amounts for a level.
package tiers

import (
	"sort"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

type tier struct {
	level    int
	required int
}

// enabledTiers returns enabled levels ordered by threshold, ties by level.
func enabledTiers(settings *domain.AffiliateSettings) []tier {
	if settings == nil {
		return nil
	}
	tiers := make([]tier, 0, len(settings.CommissionLevels))
	for level, cfg := range settings.CommissionLevels {
		if !cfg.Enabled {
			continue
		}
		tiers = append(tiers, tier{level: level, required: cfg.RequiredDeliveredOrders})
	}
	sort.Slice(tiers, func(i, j int) bool {
		if tiers[i].required != tiers[j].required {
			return tiers[i].required < tiers[j].required
		}
		return tiers[i].level < tiers[j].level
	})
	return tiers
}

// CalculateLevel returns the highest enabled level whose threshold is met,
// or level 1 when none is.
func CalculateLevel(deliveredOrders int, settings *domain.AffiliateSettings) int {
	result := domain.MinLevel
	for _, t := range enabledTiers(settings) {
		if deliveredOrders >= t.required && t.level > result {
			result = t.level
		}
	}
	return result
}

// NextLevelProgress describes how far an affiliate at currentLevel is from
// the next enabled level.
func NextLevelProgress(currentLevel, deliveredOrders int, settings *domain.AffiliateSettings) domain.Progress {
	var next *tier
	for _, t := range enabledTiers(settings) {
		if t.level <= currentLevel {
			continue
		}
		if next == nil || t.level < next.level {
			t := t
			next = &t
		}
	}
	if next == nil {
		return domain.Progress{ProgressFraction: 1}
	}

	fraction := 1.0
	if next.required > 0 {
		fraction = float64(deliveredOrders) / float64(next.required)
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	level := next.level
	return domain.Progress{
		NextLevel:        &level,
		RequiredSales:    next.required,
		ProgressFraction: fraction,
	}
}
