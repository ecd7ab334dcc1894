package settingsservice

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	return New(repo), repo
}

func TestService_Load(t *testing.T) {
	service, repo := NewMock(t)
	invalid := domain.DefaultSettings()
	invalid.CookieExpiryDays = 0
	stored := domain.DefaultSettings()
	stored.Enabled = false

	tests := []struct {
		name        string
		prepareMock func()
		expected    *domain.AffiliateSettings
		expectedErr error
	}{
		{
			name:        "defaults when nothing stored",
			prepareMock: func() { repo.EXPECT().Get(gomock.Any()).Return(nil, nil) },
			expected:    func() *domain.AffiliateSettings { d := domain.DefaultSettings(); return &d }(),
		},
		{
			name:        "stored settings",
			prepareMock: func() { repo.EXPECT().Get(gomock.Any()).Return(&stored, nil) },
			expected:    &stored,
		},
		{
			name:        "invalid settings",
			prepareMock: func() { repo.EXPECT().Get(gomock.Any()).Return(&invalid, nil) },
			expectedErr: domain.ErrConfiguration,
		},
		{
			name:        "repository error",
			prepareMock: func() { repo.EXPECT().Get(gomock.Any()).Return(nil, errors.New("db down")) },
			expectedErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			settings, err := service.Load(context.Background())
			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				assert.Nil(t, settings)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, settings)
		})
	}
}

func TestService_Stored(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("returns invalid settings unvalidated", func(t *testing.T) {
		invalid := domain.DefaultSettings()
		invalid.CookieExpiryDays = 0
		repo.EXPECT().Get(gomock.Any()).Return(&invalid, nil)

		settings, err := service.Stored(context.Background())
		require.NoError(t, err)
		assert.Equal(t, &invalid, settings)
	})

	t.Run("defaults when nothing stored", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any()).Return(nil, nil)

		settings, err := service.Stored(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 30, settings.CookieExpiryDays)
	})
}

func TestService_Update(t *testing.T) {
	service, repo := NewMock(t)

	t.Run("normalises and saves", func(t *testing.T) {
		input := domain.DefaultSettings()
		input.MinWithdrawalAmount = decimal.RequireFromString("19.999")
		capValue := decimal.RequireFromString("10.005")
		l1 := input.CommissionLevels[1]
		l1.Cap = &capValue
		input.CommissionLevels[1] = l1

		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s *domain.AffiliateSettings) error {
			assert.Equal(t, "20.00", s.MinWithdrawalAmount.StringFixed(2))
			assert.Equal(t, "10.01", s.CommissionLevels[1].Cap.StringFixed(2))
			return nil
		})

		saved, err := service.Update(context.Background(), &input)
		require.NoError(t, err)
		assert.Equal(t, "20.00", saved.MinWithdrawalAmount.StringFixed(2))
		assert.Equal(t, "10.005", input.CommissionLevels[1].Cap.String())
	})

	t.Run("rejects percentage with more than two decimals", func(t *testing.T) {
		input := domain.DefaultSettings()
		l3 := input.CommissionLevels[3]
		l3.Percentage = decimal.RequireFromString("7.125")
		input.CommissionLevels[3] = l3

		saved, err := service.Update(context.Background(), &input)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "level 3")
		assert.Nil(t, saved)
	})

	t.Run("keeps two decimal percentage", func(t *testing.T) {
		input := domain.DefaultSettings()
		l3 := input.CommissionLevels[3]
		l3.Percentage = decimal.RequireFromString("7.12")
		input.CommissionLevels[3] = l3
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		saved, err := service.Update(context.Background(), &input)
		require.NoError(t, err)
		assert.Equal(t, "7.12", saved.CommissionLevels[3].Percentage.String())
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		input := domain.DefaultSettings()
		input.CommissionLevels[2] = domain.CommissionLevel{Percentage: decimal.NewFromInt(150), Enabled: true, RequiredDeliveredOrders: 10}

		saved, err := service.Update(context.Background(), &input)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.Nil(t, saved)
	})

	t.Run("save fails", func(t *testing.T) {
		input := domain.DefaultSettings()
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := service.Update(context.Background(), &input)
		assert.EqualError(t, err, "db down")
	})
}
