package tiers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

func twoLevelSettings() *domain.AffiliateSettings {
	return &domain.AffiliateSettings{
		Enabled:          true,
		CookieExpiryDays: 30,
		CommissionLevels: map[int]domain.CommissionLevel{
			1: {Percentage: decimal.NewFromInt(5), Enabled: true, RequiredDeliveredOrders: 0},
			2: {Percentage: decimal.NewFromInt(8), Enabled: true, RequiredDeliveredOrders: 10},
		},
	}
}

func TestCalculateLevel(t *testing.T) {
	defaults := domain.DefaultSettings()
	withDisabled := domain.DefaultSettings()
	l3 := withDisabled.CommissionLevels[3]
	l3.Enabled = false
	withDisabled.CommissionLevels[3] = l3

	tests := []struct {
		name      string
		delivered int
		settings  *domain.AffiliateSettings
		expected  int
	}{
		{"nine delivered stays at level 1", 9, twoLevelSettings(), 1},
		{"tenth delivered unlocks level 2", 10, twoLevelSettings(), 2},
		{"far above top threshold", 1000, twoLevelSettings(), 2},
		{"zero delivered", 0, &defaults, 1},
		{"exact level 4 threshold", 50, &defaults, 4},
		{"level 5", 100, &defaults, 5},
		{"disabled level falls back", 30, &withDisabled, 2},
		{"nil settings", 500, nil, 1},
		{"empty levels", 500, &domain.AffiliateSettings{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateLevel(tt.delivered, tt.settings))
		})
	}
}

func TestCalculateLevel_Monotonic(t *testing.T) {
	configs := map[string]domain.AffiliateSettings{
		"defaults": domain.DefaultSettings(),
		"two":      *twoLevelSettings(),
		"sparse": {CommissionLevels: map[int]domain.CommissionLevel{
			1: {Enabled: true},
			3: {Enabled: true, RequiredDeliveredOrders: 3},
			4: {Enabled: false, RequiredDeliveredOrders: 4},
			5: {Enabled: true, RequiredDeliveredOrders: 7},
		}},
		"equal thresholds": {CommissionLevels: map[int]domain.CommissionLevel{
			1: {Enabled: true},
			2: {Enabled: true, RequiredDeliveredOrders: 5},
			3: {Enabled: true, RequiredDeliveredOrders: 5},
		}},
	}

	for name, cfg := range configs {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			prev := CalculateLevel(0, &cfg)
			for d := 1; d <= 150; d++ {
				cur := CalculateLevel(d, &cfg)
				require.GreaterOrEqual(t, cur, prev, "delivered=%d", d)
				prev = cur
			}
		})
	}
}

func TestNextLevelProgress(t *testing.T) {
	defaults := domain.DefaultSettings()
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name      string
		current   int
		delivered int
		settings  *domain.AffiliateSettings
		expected  domain.Progress
	}{
		{
			name: "halfway to level 2", current: 1, delivered: 5, settings: twoLevelSettings(),
			expected: domain.Progress{NextLevel: intPtr(2), RequiredSales: 10, ProgressFraction: 0.5},
		},
		{
			name: "top level reached", current: 2, delivered: 15, settings: twoLevelSettings(),
			expected: domain.Progress{ProgressFraction: 1},
		},
		{
			name: "fraction is clamped", current: 1, delivered: 40, settings: &defaults,
			expected: domain.Progress{NextLevel: intPtr(2), RequiredSales: 10, ProgressFraction: 1},
		},
		{
			name: "level 3 towards 4", current: 3, delivered: 25, settings: &defaults,
			expected: domain.Progress{NextLevel: intPtr(4), RequiredSales: 50, ProgressFraction: 0.5},
		},
		{
			name: "no settings", current: 1, delivered: 3, settings: nil,
			expected: domain.Progress{ProgressFraction: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextLevelProgress(tt.current, tt.delivered, tt.settings))
		})
	}
}

func TestNextLevelProgress_SkipsDisabled(t *testing.T) {
	s := domain.DefaultSettings()
	l2 := s.CommissionLevels[2]
	l2.Enabled = false
	s.CommissionLevels[2] = l2

	p := NextLevelProgress(1, 5, &s)
	require.NotNil(t, p.NextLevel)
	assert.Equal(t, 3, *p.NextLevel)
	assert.Equal(t, 25, p.RequiredSales)
	assert.InDelta(t, 0.2, p.ProgressFraction, 1e-9)
}
