package withdrawalrepo

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
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(
		&w.ID, &w.AffiliateID, &w.Amount, &w.Status, &w.PaymentMethod, &w.PaymentDetails,
		&w.RequestedAt, &w.ProcessedAt, &w.ProcessedBy, &w.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO affiliate_withdrawals (affiliate_id, amount, status, payment_method, payment_details, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		withdrawal.AffiliateID, withdrawal.Amount, withdrawal.Status,
		withdrawal.PaymentMethod, withdrawal.PaymentDetails, withdrawal.RequestedAt,
	).Scan(&withdrawal.ID)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Int64("affiliate_id", withdrawal.AffiliateID), zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	query := `
		SELECT id, affiliate_id, amount, status, payment_method, payment_details,
		       requested_at, processed_at, processed_by, notes
		FROM affiliate_withdrawals
		WHERE id = $1
	`
	w, err := scanWithdrawal(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.Int64("withdrawal_id", id), zap.Error(err))
		return nil, err
	}
	return w, nil
}

// UpdateStatus persists a transition of withdrawal provided the stored
// status is still from.
func (r *Repository) UpdateStatus(ctx context.Context, withdrawal *domain.Withdrawal, from string) error {
	query := `
		UPDATE affiliate_withdrawals
		SET status = $1, processed_at = $2, processed_by = $3, notes = $4
		WHERE id = $5 AND status = $6
	`
	tag, err := r.db.Exec(ctx, query,
		withdrawal.Status, withdrawal.ProcessedAt, withdrawal.ProcessedBy, withdrawal.Notes, withdrawal.ID, from)
	if err != nil {
		zap.L().Error("can't update withdrawal status", zap.Int64("withdrawal_id", withdrawal.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: withdrawal %d is no longer %s", domain.ErrConcurrencyConflict, withdrawal.ID, from)
	}
	return nil
}

func (r *Repository) ListByAffiliate(ctx context.Context, affiliateID int64) ([]domain.Withdrawal, error) {
	query := `
		SELECT id, affiliate_id, amount, status, payment_method, payment_details,
		       requested_at, processed_at, processed_by, notes
		FROM affiliate_withdrawals
		WHERE affiliate_id = $1
		ORDER BY requested_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, affiliateID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return withdrawals, nil
}
