package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAffiliateSettings_Validate(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	tests := []struct {
		name    string
		mutate  func(s *AffiliateSettings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*AffiliateSettings) {}},
		{name: "empty levels are valid", mutate: func(s *AffiliateSettings) { s.CommissionLevels = nil }},
		{name: "negative min withdrawal", mutate: func(s *AffiliateSettings) { s.MinWithdrawalAmount = negative }, wantErr: true},
		{name: "zero cookie expiry", mutate: func(s *AffiliateSettings) { s.CookieExpiryDays = 0 }, wantErr: true},
		{
			name: "level out of range",
			mutate: func(s *AffiliateSettings) {
				s.CommissionLevels[6] = CommissionLevel{Percentage: decimal.NewFromInt(20), Enabled: true, RequiredDeliveredOrders: 200}
			},
			wantErr: true,
		},
		{
			name: "percentage above 100",
			mutate: func(s *AffiliateSettings) {
				s.CommissionLevels[1] = CommissionLevel{Percentage: decimal.NewFromInt(101), Enabled: true}
			},
			wantErr: true,
		},
		{
			name: "decreasing thresholds",
			mutate: func(s *AffiliateSettings) {
				s.CommissionLevels[3] = CommissionLevel{Percentage: decimal.NewFromInt(10), Enabled: true, RequiredDeliveredOrders: 5}
			},
			wantErr: true,
		},
		{
			name: "negative cap",
			mutate: func(s *AffiliateSettings) {
				l := s.CommissionLevels[2]
				l.Cap = &negative
				s.CommissionLevels[2] = l
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAffiliateSettings_Levels(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, DefaultSettings().Levels())
	assert.Empty(t, AffiliateSettings{}.Levels())
}
