package affiliateservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/validate"
)

//go:generate mockgen -source=affiliateservice.go -destination=mock_affiliateservice.go -package=affiliateservice
type Repo interface {
	GetByID(ctx context.Context, id int64) (*domain.Affiliate, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Affiliate, error)
	Create(ctx context.Context, affiliate *domain.Affiliate) (*domain.Affiliate, error)
	UpdateStatus(ctx context.Context, id int64, status string, now time.Time) (*domain.Affiliate, error)
}

type Settings interface {
	Load(ctx context.Context) (*domain.AffiliateSettings, error)
}

type Service struct {
	repo     Repo
	settings Settings
	now      func() time.Time
}

func New(repo Repo, settings Settings) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		now:      time.Now,
	}
}

// Enroll opts the user into the affiliate program under promoCode. A user
// that is already enrolled gets the existing affiliate back.
func (s *Service) Enroll(ctx context.Context, userID int64, promoCode string) (*domain.Affiliate, error) {
	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, fmt.Errorf("%w: affiliate program is disabled", domain.ErrInactive)
	}
	code := strings.ToUpper(strings.TrimSpace(promoCode))
	if !validate.IsPromoCode(code) {
		return nil, fmt.Errorf("%w: invalid promo code %q", domain.ErrValidation, promoCode)
	}

	now := s.now()
	affiliate, err := s.repo.Create(ctx, &domain.Affiliate{
		UserID:           userID,
		PromoCode:        code,
		Status:           domain.AffiliateStatusActive,
		Level:            domain.MinLevel,
		TotalEarnings:    decimal.Zero,
		TotalWithdrawn:   decimal.Zero,
		AvailableBalance: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("affiliate enrolled", zap.Int64("affiliate_id", affiliate.ID), zap.Int64("user_id", userID), zap.String("promo_code", code))
	return affiliate, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Affiliate, error) {
	affiliate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: affiliate %d", domain.ErrNotFound, id)
	}
	return affiliate, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID int64) (*domain.Affiliate, error) {
	affiliate, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: user %d is not an affiliate", domain.ErrNotFound, userID)
	}
	return affiliate, nil
}

// SetStatus changes only the affiliate status.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*domain.Affiliate, error) {
	switch status {
	case domain.AffiliateStatusActive, domain.AffiliateStatusInactive, domain.AffiliateStatusSuspended:
	default:
		return nil, fmt.Errorf("%w: unknown affiliate status %q", domain.ErrValidation, status)
	}
	affiliate, err := s.repo.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: affiliate %d", domain.ErrNotFound, id)
	}
	zap.L().Info("affiliate status changed", zap.Int64("affiliate_id", id), zap.String("status", status))
	return affiliate, nil
}
