package settingsrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Get returns the stored program settings, or nil when none were saved yet.
func (r *Repository) Get(ctx context.Context) (*domain.AffiliateSettings, error) {
	query := `
		SELECT enabled, min_withdrawal_amount, cookie_expiry_days, commission_levels
		FROM affiliate_settings
		WHERE id = 1
	`
	var (
		settings domain.AffiliateSettings
		levels   []byte
	)
	err := r.db.QueryRow(ctx, query).Scan(&settings.Enabled, &settings.MinWithdrawalAmount, &settings.CookieExpiryDays, &levels)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't load affiliate settings", zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(levels, &settings.CommissionLevels); err != nil {
		zap.L().Error("can't decode commission levels", zap.Error(err))
		return nil, err
	}
	return &settings, nil
}

func (r *Repository) Save(ctx context.Context, settings *domain.AffiliateSettings) error {
	query := `
		INSERT INTO affiliate_settings (id, enabled, min_withdrawal_amount, cookie_expiry_days, commission_levels, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET enabled = EXCLUDED.enabled,
		    min_withdrawal_amount = EXCLUDED.min_withdrawal_amount,
		    cookie_expiry_days = EXCLUDED.cookie_expiry_days,
		    commission_levels = EXCLUDED.commission_levels,
		    updated_at = EXCLUDED.updated_at
	`
	levels, err := json.Marshal(settings.CommissionLevels)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, settings.Enabled, settings.MinWithdrawalAmount, settings.CookieExpiryDays, levels, time.Now())
	if err != nil {
		zap.L().Error("can't save affiliate settings", zap.Error(err))
		return err
	}
	return nil
}
