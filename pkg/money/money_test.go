package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "already two places", in: "50.00", expected: "50.00"},
		{name: "half rounds up", in: "10.005", expected: "10.01"},
		{name: "below half rounds down", in: "10.0049", expected: "10.00"},
		{name: "integer", in: "1000", expected: "1000.00"},
		{name: "negative half rounds towards plus infinity", in: "-2.345", expected: "-2.34"},
		{name: "zero", in: "0", expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "50.00", Percent(decimal.NewFromInt(1000), decimal.NewFromInt(5)).StringFixed(2))
	assert.Equal(t, "80.00", Percent(decimal.NewFromInt(1000), decimal.NewFromInt(8)).StringFixed(2))
	assert.Equal(t, "0.83", Percent(decimal.RequireFromString("33.33"), decimal.RequireFromString("2.5")).StringFixed(2))
}

func TestHasCents(t *testing.T) {
	assert.True(t, HasCents(decimal.RequireFromString("10.25")))
	assert.True(t, HasCents(decimal.NewFromInt(3)))
	assert.False(t, HasCents(decimal.RequireFromString("10.255")))
}
