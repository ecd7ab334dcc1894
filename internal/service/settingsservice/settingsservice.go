package settingsservice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/money"
)

//go:generate mockgen -source=settingsservice.go -destination=mock_settingsservice.go -package=settingsservice
type Repo interface {
	Get(ctx context.Context) (*domain.AffiliateSettings, error)
	Save(ctx context.Context, settings *domain.AffiliateSettings) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Stored returns the settings as saved, or the defaults when nothing was
// saved, without validating them.
func (s *Service) Stored(ctx context.Context) (*domain.AffiliateSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		zap.L().Error("failed to load affiliate settings", zap.Error(err))
		return nil, err
	}
	if settings == nil {
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	return settings, nil
}

// Load returns the current program settings, falling back to defaults when
// none were saved. Invalid stored settings disable the whole program and
// are reported as domain.ErrConfiguration.
func (s *Service) Load(ctx context.Context) (*domain.AffiliateSettings, error) {
	settings, err := s.Stored(ctx)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		zap.L().Error("stored affiliate settings are invalid", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// Update rounds money fields to cents, validates and stores settings.
// Percentages are stored as given and may carry at most two decimals.
func (s *Service) Update(ctx context.Context, settings *domain.AffiliateSettings) (*domain.AffiliateSettings, error) {
	for _, level := range settings.Levels() {
		if pct := settings.CommissionLevels[level].Percentage; !money.HasCents(pct) {
			return nil, fmt.Errorf("%w: level %d percentage %s has more than %d decimal places",
				domain.ErrValidation, level, pct, money.Places)
		}
	}
	normalized := normalize(*settings)
	if err := normalized.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.repo.Save(ctx, &normalized); err != nil {
		zap.L().Error("failed to save affiliate settings", zap.Error(err))
		return nil, err
	}
	zap.L().Info("affiliate settings updated", zap.Bool("enabled", normalized.Enabled), zap.Int("levels", len(normalized.CommissionLevels)))
	return &normalized, nil
}

func normalize(settings domain.AffiliateSettings) domain.AffiliateSettings {
	settings.MinWithdrawalAmount = money.Round(settings.MinWithdrawalAmount)
	levels := make(map[int]domain.CommissionLevel, len(settings.CommissionLevels))
	for level, cfg := range settings.CommissionLevels {
		if cfg.Cap != nil {
			c := money.Round(*cfg.Cap)
			cfg.Cap = &c
		}
		levels[level] = cfg
	}
	settings.CommissionLevels = levels
	return settings
}
