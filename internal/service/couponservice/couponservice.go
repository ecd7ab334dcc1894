package couponservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

//go:generate mockgen -source=couponservice.go -destination=mock_couponservice.go -package=couponservice
type AffiliateRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Affiliate, error)
	GetByCouponID(ctx context.Context, couponID string) (*domain.Affiliate, error)
	UpdateCoupon(ctx context.Context, id int64, couponID *string, now time.Time) (*domain.Affiliate, error)
}

type CouponCatalog interface {
	Exists(ctx context.Context, couponID string) (bool, error)
}

type Service struct {
	repo    AffiliateRepo
	catalog CouponCatalog
	now     func() time.Time
}

func New(repo AffiliateRepo, catalog CouponCatalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

// Assign links a coupon to the affiliate, or unlinks it when couponID is
// one of the "no coupon" spellings. Ledger counters are never touched.
func (s *Service) Assign(ctx context.Context, affiliateID int64, couponID *string) (*domain.Affiliate, error) {
	affiliate, err := s.repo.GetByID(ctx, affiliateID)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: affiliate %d", domain.ErrNotFound, affiliateID)
	}

	coupon := normalize(couponID)
	if coupon != nil {
		exists, err := s.catalog.Exists(ctx, *coupon)
		if err != nil {
			zap.L().Error("coupon lookup failed", zap.String("coupon_id", *coupon), zap.Error(err))
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: coupon %s", domain.ErrNotFound, *coupon)
		}
		owner, err := s.repo.GetByCouponID(ctx, *coupon)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != affiliateID {
			return nil, fmt.Errorf("%w: coupon %s is assigned to another affiliate", domain.ErrValidation, *coupon)
		}
	}

	updated, err := s.repo.UpdateCoupon(ctx, affiliateID, coupon, s.now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: affiliate %d", domain.ErrNotFound, affiliateID)
	}
	zap.L().Info("affiliate coupon updated", zap.Int64("affiliate_id", affiliateID), zap.Stringp("coupon_id", coupon))
	return updated, nil
}

// FindAffiliateByCoupon returns the affiliate a coupon is linked to.
func (s *Service) FindAffiliateByCoupon(ctx context.Context, couponID string) (*domain.Affiliate, error) {
	coupon := normalize(&couponID)
	if coupon == nil {
		return nil, fmt.Errorf("%w: empty coupon id", domain.ErrValidation)
	}
	affiliate, err := s.repo.GetByCouponID(ctx, *coupon)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: no affiliate for coupon %s", domain.ErrNotFound, *coupon)
	}
	return affiliate, nil
}

func normalize(couponID *string) *string {
	if couponID == nil {
		return nil
	}
	coupon := strings.TrimSpace(*couponID)
	switch strings.ToLower(coupon) {
	case "", "null", "none", "0":
		return nil
	}
	return &coupon
}
