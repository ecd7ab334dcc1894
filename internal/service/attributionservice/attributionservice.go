package attributionservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/validate"
)

//go:generate mockgen -source=attributionservice.go -destination=mock_attributionservice.go -package=attributionservice
type AffiliateRepo interface {
	GetByPromoCode(ctx context.Context, promoCode string) (*domain.Affiliate, error)
}

type Settings interface {
	Load(ctx context.Context) (*domain.AffiliateSettings, error)
}

type Service struct {
	repo     AffiliateRepo
	settings Settings
	codec    *TokenCodec
	now      func() time.Time
}

func New(repo AffiliateRepo, settings Settings, codec *TokenCodec) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		codec:    codec,
		now:      time.Now,
	}
}

func normalizePromoCode(promoCode string) string {
	return strings.ToUpper(strings.TrimSpace(promoCode))
}

// Resolve finds the active affiliate owning promoCode. Matching ignores
// case and surrounding whitespace.
func (s *Service) Resolve(ctx context.Context, promoCode string) (*domain.AffiliateRef, error) {
	code := normalizePromoCode(promoCode)
	if !validate.IsPromoCode(code) {
		return nil, fmt.Errorf("%w: malformed promo code", domain.ErrValidation)
	}
	affiliate, err := s.repo.GetByPromoCode(ctx, code)
	if err != nil {
		zap.L().Error("failed to resolve promo code", zap.String("promo_code", code), zap.Error(err))
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: promo code %s", domain.ErrNotFound, code)
	}
	if !affiliate.IsActive() {
		return nil, fmt.Errorf("%w: affiliate %d is %s", domain.ErrInactive, affiliate.ID, affiliate.Status)
	}
	return &domain.AffiliateRef{ID: affiliate.ID, PromoCode: affiliate.PromoCode}, nil
}

func (s *Service) IssueToken(ctx context.Context, promoCode string, expiryDays int) (*domain.AttributionToken, error) {
	if expiryDays <= 0 {
		return nil, fmt.Errorf("%w: expiry days must be positive", domain.ErrValidation)
	}
	ref, err := s.Resolve(ctx, promoCode)
	if err != nil {
		return nil, err
	}
	issuedAt := s.now().UTC().Truncate(time.Second)
	return &domain.AttributionToken{
		ID:          uuid.NewString(),
		PromoCode:   ref.PromoCode,
		AffiliateID: ref.ID,
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(time.Duration(expiryDays) * 24 * time.Hour),
	}, nil
}

func (s *Service) ValidateToken(token domain.AttributionToken) error {
	if !token.ValidAt(s.now()) {
		return fmt.Errorf("%w: expired at %s", domain.ErrTokenExpired, token.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// Attribute applies the last-touch policy: a newly presented code that
// resolves always replaces current; otherwise current is kept while it is
// still valid. A nil result means the visit carries no attribution.
func (s *Service) Attribute(ctx context.Context, current *domain.AttributionToken, promoCode string) (*domain.AttributionToken, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return nil, nil
		}
		return nil, err
	}
	if !settings.Enabled {
		return nil, nil
	}

	if strings.TrimSpace(promoCode) != "" {
		token, err := s.IssueToken(ctx, promoCode, settings.CookieExpiryDays)
		switch {
		case err == nil:
			return token, nil
		case isCallerError(err):
			zap.L().Debug("promo code not attributable", zap.String("promo_code", promoCode), zap.Error(err))
		default:
			return nil, err
		}
	}

	if current != nil && s.ValidateToken(*current) == nil {
		return current, nil
	}
	return nil, nil
}

// Verify decodes a raw token and checks it has not expired.
func (s *Service) Verify(raw string) (*domain.AttributionToken, error) {
	token, err := s.codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateToken(token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *Service) Encode(token domain.AttributionToken) (string, error) {
	return s.codec.Encode(token)
}

func (s *Service) Decode(raw string) (domain.AttributionToken, error) {
	return s.codec.Decode(raw)
}

func isCallerError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInactive) ||
		errors.Is(err, domain.ErrValidation)
}
