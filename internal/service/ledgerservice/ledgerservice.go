package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
	"github.com/GlebRadaev/affiliate-ledger/internal/retry"
	"github.com/GlebRadaev/affiliate-ledger/internal/tiers"
	"github.com/GlebRadaev/affiliate-ledger/pkg/metrics"
	"github.com/GlebRadaev/affiliate-ledger/pkg/money"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice
type AffiliateRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Affiliate, error)
	UpdateCounters(ctx context.Context, affiliate *domain.Affiliate) error
}

type CommissionRepo interface {
	Insert(ctx context.Context, commission *domain.Commission) (*domain.Commission, bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Commission, error)
	UpdateStatus(ctx context.Context, commission *domain.Commission, from string) error
	ListByAffiliate(ctx context.Context, affiliateID int64) ([]domain.Commission, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.Commission, error)
}

type WithdrawalRepo interface {
	ListByAffiliate(ctx context.Context, affiliateID int64) ([]domain.Withdrawal, error)
}

type Settings interface {
	Load(ctx context.Context) (*domain.AffiliateSettings, error)
}

const maxOrderIDLength = 64

type Service struct {
	affiliates  AffiliateRepo
	commissions CommissionRepo
	withdrawals WithdrawalRepo
	settings    Settings
	txManager   pg.TXManager
	retry       retry.Policy
	now         func() time.Time
}

func New(
	affiliates AffiliateRepo,
	commissions CommissionRepo,
	withdrawals WithdrawalRepo,
	settings Settings,
	txManager pg.TXManager,
	policy retry.Policy,
) *Service {
	return &Service{
		affiliates:  affiliates,
		commissions: commissions,
		withdrawals: withdrawals,
		settings:    settings,
		txManager:   txManager,
		retry:       policy,
		now:         time.Now,
	}
}

// RecordCommission stores a pending commission for an attributed order.
// Repeated calls for the same affiliate and order return the stored row.
func (s *Service) RecordCommission(ctx context.Context, affiliateID int64, orderID string, subtotal decimal.Decimal) (*domain.Commission, error) {
	if orderID == "" || len(orderID) > maxOrderIDLength {
		return nil, fmt.Errorf("%w: order id %q", domain.ErrValidation, orderID)
	}
	if subtotal.IsNegative() {
		return nil, fmt.Errorf("%w: negative commissionable subtotal %s", domain.ErrValidation, subtotal)
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, fmt.Errorf("%w: affiliate program is disabled", domain.ErrInactive)
	}

	var (
		result  *domain.Commission
		created bool
	)
	err = s.retry.OnConflict(ctx, "record_commission", func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			affiliate, err := s.getAffiliate(ctx, affiliateID)
			if err != nil {
				return err
			}
			if !affiliate.IsActive() {
				return fmt.Errorf("%w: affiliate %d is %s", domain.ErrInactive, affiliate.ID, affiliate.Status)
			}

			now := s.now()
			commission := &domain.Commission{
				AffiliateID:              affiliate.ID,
				OrderID:                  orderID,
				Level:                    affiliate.Level,
				OrderCommissionableTotal: money.Round(subtotal),
				CommissionPercentage:     tiers.Percentage(affiliate.Level, settings),
				CommissionAmount:         tiers.ComputeCommission(subtotal, affiliate.Level, settings),
				Status:                   domain.CommissionStatusPending,
				CreatedAt:                now,
				UpdatedAt:                now,
			}
			stored, inserted, err := s.commissions.Insert(ctx, commission)
			if err != nil {
				return err
			}
			result, created = stored, inserted
			if !inserted {
				return nil
			}

			counted := affiliate.CountOrder(now)
			return s.affiliates.UpdateCounters(ctx, &counted)
		})
	})
	if err != nil {
		observe("record", err)
		return nil, err
	}
	if !created {
		metrics.Commissions.WithLabelValues("record", metrics.OutcomeNoop).Inc()
		zap.L().Info("commission already recorded", zap.Int64("affiliate_id", affiliateID), zap.String("order_id", orderID))
		return result, nil
	}
	metrics.Commissions.WithLabelValues("record", metrics.OutcomeOK).Inc()
	zap.L().Info("commission recorded",
		zap.Int64("affiliate_id", affiliateID),
		zap.String("order_id", orderID),
		zap.Int("level", result.Level),
		zap.String("amount", result.CommissionAmount.StringFixed(2)),
	)
	return result, nil
}

// ApproveCommission credits a pending commission to its affiliate. Approving
// an approved or cancelled commission returns it unchanged.
func (s *Service) ApproveCommission(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	levelOf := func(delivered int) int {
		return tiers.CalculateLevel(delivered, settings)
	}

	var (
		result  *domain.Commission
		changed bool
	)
	err = s.retry.OnConflict(ctx, "approve_commission", func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			commission, err := s.getCommission(ctx, commissionID)
			if err != nil {
				return err
			}
			if commission.Status != domain.CommissionStatusPending {
				result, changed = commission, false
				return nil
			}

			now := s.now()
			approved, err := commission.Approve(now)
			if err != nil {
				return err
			}
			if err := s.commissions.UpdateStatus(ctx, &approved, domain.CommissionStatusPending); err != nil {
				return err
			}

			affiliate, err := s.getAffiliate(ctx, commission.AffiliateID)
			if err != nil {
				return err
			}
			credited := affiliate.CreditApproved(approved.CommissionAmount, levelOf, now)
			if err := s.affiliates.UpdateCounters(ctx, &credited); err != nil {
				return err
			}
			if credited.Level != affiliate.Level {
				zap.L().Info("affiliate level changed",
					zap.Int64("affiliate_id", affiliate.ID),
					zap.Int("from", affiliate.Level),
					zap.Int("to", credited.Level),
				)
			}
			result, changed = &approved, true
			return nil
		})
	})
	if err != nil {
		observe("approve", err)
		return nil, err
	}
	if !changed {
		metrics.Commissions.WithLabelValues("approve", metrics.OutcomeNoop).Inc()
		return result, nil
	}
	metrics.Commissions.WithLabelValues("approve", metrics.OutcomeOK).Inc()
	zap.L().Info("commission approved", zap.Int64("commission_id", commissionID), zap.Int64("affiliate_id", result.AffiliateID))
	return result, nil
}

// CancelCommission cancels a pending or approved commission. Cancelling an
// approved one reverses its credit and fails with
// domain.ErrInsufficientReversal when the balance no longer covers it.
func (s *Service) CancelCommission(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	var (
		result  *domain.Commission
		changed bool
	)
	err := s.retry.OnConflict(ctx, "cancel_commission", func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			commission, err := s.getCommission(ctx, commissionID)
			if err != nil {
				return err
			}
			if commission.Status == domain.CommissionStatusCancelled {
				result, changed = commission, false
				return nil
			}

			now := s.now()
			from := commission.Status
			cancelled, err := commission.Cancel(now)
			if err != nil {
				return err
			}
			if err := s.commissions.UpdateStatus(ctx, &cancelled, from); err != nil {
				return err
			}

			if from == domain.CommissionStatusApproved {
				affiliate, err := s.getAffiliate(ctx, commission.AffiliateID)
				if err != nil {
					return err
				}
				reversed, err := affiliate.ReverseApproved(commission.CommissionAmount, now)
				if err != nil {
					zap.L().Error("commission reversal needs manual reconciliation",
						zap.Int64("affiliate_id", affiliate.ID),
						zap.Int64("commission_id", commission.ID),
						zap.String("amount", commission.CommissionAmount.StringFixed(2)),
						zap.String("available_balance", affiliate.AvailableBalance.StringFixed(2)),
					)
					return err
				}
				if err := s.affiliates.UpdateCounters(ctx, &reversed); err != nil {
					return err
				}
			}
			result, changed = &cancelled, true
			return nil
		})
	})
	if err != nil {
		observe("cancel", err)
		return nil, err
	}
	if !changed {
		metrics.Commissions.WithLabelValues("cancel", metrics.OutcomeNoop).Inc()
		return result, nil
	}
	metrics.Commissions.WithLabelValues("cancel", metrics.OutcomeOK).Inc()
	zap.L().Info("commission cancelled", zap.Int64("commission_id", commissionID), zap.Int64("affiliate_id", result.AffiliateID))
	return result, nil
}

// ApproveByOrder approves every commission recorded for orderID.
func (s *Service) ApproveByOrder(ctx context.Context, orderID string) ([]domain.Commission, error) {
	return s.byOrder(ctx, orderID, s.ApproveCommission)
}

// CancelByOrder cancels every commission recorded for orderID.
func (s *Service) CancelByOrder(ctx context.Context, orderID string) ([]domain.Commission, error) {
	return s.byOrder(ctx, orderID, s.CancelCommission)
}

func (s *Service) byOrder(ctx context.Context, orderID string, apply func(context.Context, int64) (*domain.Commission, error)) ([]domain.Commission, error) {
	commissions, err := s.commissions.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var (
		result []domain.Commission
		errs   []error
	)
	for _, c := range commissions {
		updated, err := apply(ctx, c.ID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result = append(result, *updated)
	}
	return result, errors.Join(errs...)
}

func (s *Service) GetProgress(ctx context.Context, affiliateID int64) (*domain.AffiliateProgress, error) {
	affiliate, err := s.getAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.AffiliateProgress{
		AffiliateID:     affiliate.ID,
		CurrentLevel:    affiliate.Level,
		DeliveredOrders: affiliate.DeliveredOrders,
		Progress:        tiers.NextLevelProgress(affiliate.Level, affiliate.DeliveredOrders, settings),
	}, nil
}

func (s *Service) ListCommissions(ctx context.Context, affiliateID int64) ([]domain.Commission, error) {
	commissions, err := s.commissions.ListByAffiliate(ctx, affiliateID)
	if err != nil {
		zap.L().Error("failed to list commissions", zap.Int64("affiliate_id", affiliateID), zap.Error(err))
		return nil, err
	}
	return commissions, nil
}

func (s *Service) GetCommission(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	return s.getCommission(ctx, commissionID)
}

// Audit recomputes the affiliate ledger from stored commissions and
// withdrawals.
func (s *Service) Audit(ctx context.Context, affiliateID int64) (*domain.LedgerReport, error) {
	var report domain.LedgerReport
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		affiliate, err := s.getAffiliate(ctx, affiliateID)
		if err != nil {
			return err
		}
		commissions, err := s.commissions.ListByAffiliate(ctx, affiliateID)
		if err != nil {
			return err
		}
		withdrawals, err := s.withdrawals.ListByAffiliate(ctx, affiliateID)
		if err != nil {
			return err
		}
		report = domain.CheckLedger(*affiliate, commissions, withdrawals)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !report.Consistent {
		zap.L().Error("affiliate ledger is inconsistent",
			zap.Int64("affiliate_id", affiliateID),
			zap.String("expected_balance", report.ExpectedAvailableBalance.StringFixed(2)),
			zap.String("actual_balance", report.ActualAvailableBalance.StringFixed(2)),
			zap.String("drift", report.Drift.StringFixed(2)),
		)
	}
	return &report, nil
}

func (s *Service) getAffiliate(ctx context.Context, id int64) (*domain.Affiliate, error) {
	affiliate, err := s.affiliates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, fmt.Errorf("%w: affiliate %d", domain.ErrNotFound, id)
	}
	return affiliate, nil
}

func (s *Service) getCommission(ctx context.Context, id int64) (*domain.Commission, error) {
	commission, err := s.commissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, fmt.Errorf("%w: commission %d", domain.ErrNotFound, id)
	}
	return commission, nil
}

func observe(operation string, err error) {
	outcome := metrics.OutcomeError
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInactive),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientReversal):
		outcome = metrics.OutcomeRejected
	}
	metrics.Commissions.WithLabelValues(operation, outcome).Inc()
}
