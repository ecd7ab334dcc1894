package affiliaterepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanAffiliate(row pgx.Row) (*domain.Affiliate, error) {
	var a domain.Affiliate
	err := row.Scan(
		&a.ID, &a.UserID, &a.PromoCode, &a.Status, &a.Level,
		&a.TotalOrders, &a.DeliveredOrders,
		&a.TotalEarnings, &a.TotalWithdrawn, &a.AvailableBalance,
		&a.CouponID, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.Affiliate, error) {
	affiliate, err := scanAffiliate(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find affiliate", zap.Error(err))
		return nil, err
	}
	return affiliate, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Affiliate, error) {
	query := `
		SELECT id, user_id, promo_code, status, level, total_orders, delivered_orders,
		       total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
		FROM affiliates
		WHERE id = $1
	`
	return r.findOne(ctx, query, id)
}

func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Affiliate, error) {
	query := `
		SELECT id, user_id, promo_code, status, level, total_orders, delivered_orders,
		       total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
		FROM affiliates
		WHERE user_id = $1
	`
	return r.findOne(ctx, query, userID)
}

func (r *Repository) GetByPromoCode(ctx context.Context, promoCode string) (*domain.Affiliate, error) {
	query := `
		SELECT id, user_id, promo_code, status, level, total_orders, delivered_orders,
		       total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
		FROM affiliates
		WHERE lower(promo_code) = lower($1)
	`
	return r.findOne(ctx, query, promoCode)
}

func (r *Repository) GetByCouponID(ctx context.Context, couponID string) (*domain.Affiliate, error) {
	query := `
		SELECT id, user_id, promo_code, status, level, total_orders, delivered_orders,
		       total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
		FROM affiliates
		WHERE coupon_id = $1
		ORDER BY id
		LIMIT 1
	`
	return r.findOne(ctx, query, couponID)
}

// Create inserts a new affiliate. A taken promo code or user id is reported
// as domain.ErrValidation.
func (r *Repository) Create(ctx context.Context, affiliate *domain.Affiliate) (*domain.Affiliate, error) {
	query := `
		INSERT INTO affiliates (user_id, promo_code, status, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, user_id, promo_code, status, level, total_orders, delivered_orders,
		          total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
	`
	created, err := scanAffiliate(r.db.QueryRow(ctx, query,
		affiliate.UserID, affiliate.PromoCode, affiliate.Status, affiliate.Level, affiliate.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: promo code %q is already taken", domain.ErrValidation, affiliate.PromoCode)
		}
		zap.L().Error("can't save affiliate", zap.Error(err))
		return nil, err
	}
	return created, nil
}

// UpdateCounters writes the ledger counters of affiliate if its version is
// still the one that was read. On success affiliate.Version is advanced.
func (r *Repository) UpdateCounters(ctx context.Context, affiliate *domain.Affiliate) error {
	query := `
		UPDATE affiliates
		SET level = $1, total_orders = $2, delivered_orders = $3,
		    total_earnings = $4, total_withdrawn = $5, available_balance = $6,
		    version = version + 1, updated_at = $7
		WHERE id = $8 AND version = $9
		RETURNING version
	`
	var version int64
	err := r.db.QueryRow(ctx, query,
		affiliate.Level, affiliate.TotalOrders, affiliate.DeliveredOrders,
		affiliate.TotalEarnings, affiliate.TotalWithdrawn, affiliate.AvailableBalance,
		affiliate.UpdatedAt, affiliate.ID, affiliate.Version,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: affiliate %d version %d", domain.ErrConcurrencyConflict, affiliate.ID, affiliate.Version)
		}
		zap.L().Error("can't update affiliate counters", zap.Int64("affiliate_id", affiliate.ID), zap.Error(err))
		return err
	}
	affiliate.Version = version
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string, now time.Time) (*domain.Affiliate, error) {
	query := `
		UPDATE affiliates
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, user_id, promo_code, status, level, total_orders, delivered_orders,
		          total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
	`
	return r.findOne(ctx, query, status, now, id)
}

// UpdateCoupon links or unlinks a coupon. Ledger counters and version are
// left alone. A coupon already linked to another affiliate is reported as
// domain.ErrValidation.
func (r *Repository) UpdateCoupon(ctx context.Context, id int64, couponID *string, now time.Time) (*domain.Affiliate, error) {
	query := `
		UPDATE affiliates
		SET coupon_id = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, user_id, promo_code, status, level, total_orders, delivered_orders,
		          total_earnings, total_withdrawn, available_balance, coupon_id, version, created_at, updated_at
	`
	affiliate, err := r.findOne(ctx, query, couponID, now, id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, fmt.Errorf("%w: coupon %s is assigned to another affiliate", domain.ErrValidation, *couponID)
	}
	return affiliate, err
}
