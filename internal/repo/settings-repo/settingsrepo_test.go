package settingsrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_Get(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT enabled, min_withdrawal_amount, cookie_expiry_days, commission_levels FROM affiliate_settings WHERE id = 1`)
	columns := []string{"enabled", "min_withdrawal_amount", "cookie_expiry_days", "commission_levels"}

	tests := []struct {
		name        string
		prepareMock func()
		expectErr   bool
		check       func(t *testing.T, s *domain.AffiliateSettings)
	}{
		{
			name: "stored settings",
			prepareMock: func() {
				mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(columns).AddRow(
					true, decimal.RequireFromString("25.00"), 14,
					[]byte(`{"1":{"percentage":"5","enabled":true,"required_delivered_orders":0},"2":{"percentage":"8","enabled":true,"required_delivered_orders":10,"cap":"100"}}`),
				))
			},
			check: func(t *testing.T, s *domain.AffiliateSettings) {
				require.NotNil(t, s)
				assert.True(t, s.Enabled)
				assert.Equal(t, 14, s.CookieExpiryDays)
				assert.Equal(t, "25.00", s.MinWithdrawalAmount.StringFixed(2))
				require.Len(t, s.CommissionLevels, 2)
				assert.True(t, s.CommissionLevels[2].Percentage.Equal(decimal.NewFromInt(8)))
				require.NotNil(t, s.CommissionLevels[2].Cap)
				assert.True(t, s.CommissionLevels[2].Cap.Equal(decimal.NewFromInt(100)))
				assert.Nil(t, s.CommissionLevels[1].Cap)
			},
		},
		{
			name: "no row yet",
			prepareMock: func() {
				mock.ExpectQuery(query).WillReturnError(pgx.ErrNoRows)
			},
			check: func(t *testing.T, s *domain.AffiliateSettings) { assert.Nil(t, s) },
		},
		{
			name: "corrupt levels",
			prepareMock: func() {
				mock.ExpectQuery(query).WillReturnRows(pgxmock.NewRows(columns).AddRow(
					true, decimal.Zero, 30, []byte(`[`),
				))
			},
			expectErr: true,
			check:     func(t *testing.T, s *domain.AffiliateSettings) { assert.Nil(t, s) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			s, err := repo.Get(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.check(t, s)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	settings := domain.DefaultSettings()
	upsert := regexp.QuoteMeta(`INSERT INTO affiliate_settings (id, enabled, min_withdrawal_amount, cookie_expiry_days, commission_levels, updated_at) VALUES (1, $1, $2, $3, $4, $5) ON CONFLICT (id) DO UPDATE`)

	mock.ExpectExec(upsert).
		WithArgs(true, settings.MinWithdrawalAmount, 30, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.Save(context.Background(), &settings))

	mock.ExpectExec(upsert).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("db down"))
	assert.Error(t, repo.Save(context.Background(), &settings))

	assert.NoError(t, mock.ExpectationsWereMet())
}
