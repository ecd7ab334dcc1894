package commissionrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanCommission(row pgx.Row) (*domain.Commission, error) {
	var c domain.Commission
	err := row.Scan(
		&c.ID, &c.AffiliateID, &c.OrderID, &c.Level,
		&c.OrderCommissionableTotal, &c.CommissionPercentage, &c.CommissionAmount,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert stores a new commission unless one already exists for the same
// affiliate and order. The stored row is returned either way; created tells
// whether this call inserted it.
func (r *Repository) Insert(ctx context.Context, commission *domain.Commission) (*domain.Commission, bool, error) {
	insert := `
		INSERT INTO affiliate_commissions (affiliate_id, order_id, level, order_commissionable_total,
		                                   commission_percentage, commission_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		ON CONFLICT (affiliate_id, order_id) DO NOTHING
		RETURNING id, affiliate_id, order_id, level, order_commissionable_total,
		          commission_percentage, commission_amount, status, created_at, updated_at
	`
	existing := `
		SELECT id, affiliate_id, order_id, level, order_commissionable_total,
		       commission_percentage, commission_amount, status, created_at, updated_at
		FROM affiliate_commissions
		WHERE affiliate_id = $1 AND order_id = $2
	`
	var (
		stored  *domain.Commission
		created bool
	)
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		c, err := scanCommission(r.db.QueryRow(ctx, insert,
			commission.AffiliateID, commission.OrderID, commission.Level, commission.OrderCommissionableTotal,
			commission.CommissionPercentage, commission.CommissionAmount, commission.Status, commission.CreatedAt))
		if err == nil {
			stored, created = c, true
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			zap.L().Error("can't insert commission", zap.String("order_id", commission.OrderID), zap.Error(err))
			return err
		}
		c, err = scanCommission(r.db.QueryRow(ctx, existing, commission.AffiliateID, commission.OrderID))
		if err != nil {
			zap.L().Error("can't load existing commission", zap.String("order_id", commission.OrderID), zap.Error(err))
			return err
		}
		stored = c
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Commission, error) {
	query := `
		SELECT id, affiliate_id, order_id, level, order_commissionable_total,
		       commission_percentage, commission_amount, status, created_at, updated_at
		FROM affiliate_commissions
		WHERE id = $1
	`
	c, err := scanCommission(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find commission", zap.Int64("commission_id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// UpdateStatus moves commission to its new status only if the stored status
// is still from.
func (r *Repository) UpdateStatus(ctx context.Context, commission *domain.Commission, from string) error {
	query := `
		UPDATE affiliate_commissions
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, commission.Status, commission.UpdatedAt, commission.ID, from)
	if err != nil {
		zap.L().Error("can't update commission status", zap.Int64("commission_id", commission.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commission %d is no longer %s", domain.ErrConcurrencyConflict, commission.ID, from)
	}
	return nil
}

func (r *Repository) ListByAffiliate(ctx context.Context, affiliateID int64) ([]domain.Commission, error) {
	query := `
		SELECT id, affiliate_id, order_id, level, order_commissionable_total,
		       commission_percentage, commission_amount, status, created_at, updated_at
		FROM affiliate_commissions
		WHERE affiliate_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, affiliateID)
}

func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]domain.Commission, error) {
	query := `
		SELECT id, affiliate_id, order_id, level, order_commissionable_total,
		       commission_percentage, commission_amount, status, created_at, updated_at
		FROM affiliate_commissions
		WHERE order_id = $1
		ORDER BY id
	`
	return r.list(ctx, query, orderID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Commission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch commissions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var commissions []domain.Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			zap.L().Error("failed to scan commission row", zap.Error(err))
			return nil, err
		}
		commissions = append(commissions, *c)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("failed to iterate commissions", zap.Error(err))
		return nil, err
	}
	return commissions, nil
}
