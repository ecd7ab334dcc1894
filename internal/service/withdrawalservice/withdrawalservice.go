package withdrawalservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
	"github.com/GlebRadaev/affiliate-ledger/internal/retry"
	"github.com/GlebRadaev/affiliate-ledger/pkg/metrics"
	"github.com/GlebRadaev/affiliate-ledger/pkg/money"
)

//go:generate mockgen -source=withdrawalservice.go -destination=mock_withdrawalservice.go -package=withdrawalservice
type AffiliateRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Affiliate, error)
	UpdateCounters(ctx context.Context, affiliate *domain.Affiliate) error
}

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetByID(ctx context.Context, id int64) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, withdrawal *domain.Withdrawal, from string) error
	ListByAffiliate(ctx context.Context, affiliateID int64) ([]domain.Withdrawal, error)
}

type Settings interface {
	Load(ctx context.Context) (*domain.AffiliateSettings, error)
}

type Service struct {
	affiliates  AffiliateRepo
	withdrawals WithdrawalRepo
	settings    Settings
	txManager   pg.TXManager
	retry       retry.Policy
	now         func() time.Time
}

func New(affiliates AffiliateRepo, withdrawals WithdrawalRepo, settings Settings, txManager pg.TXManager, policy retry.Policy) *Service {
	return &Service{
		affiliates:  affiliates,
		withdrawals: withdrawals,
		settings:    settings,
		txManager:   txManager,
		retry:       policy,
		now:         time.Now,
	}
}

// Create requests a payout and reserves its amount from the available
// balance in the same transaction.
func (s *Service) Create(ctx context.Context, affiliateID int64, amount decimal.Decimal, paymentMethod, paymentDetails string) (*domain.Withdrawal, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if !amount.IsPositive() {
		return nil, s.reject("create", fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrValidation))
	}
	if !money.HasCents(amount) {
		return nil, s.reject("create", fmt.Errorf("%w: withdrawal amount %s has more than %d decimal places",
			domain.ErrValidation, amount, money.Places))
	}
	if paymentMethod == "" {
		return nil, s.reject("create", fmt.Errorf("%w: payment method is required", domain.ErrValidation))
	}

	settings, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return nil, s.reject("create", fmt.Errorf("%w: affiliate program is disabled", domain.ErrInactive))
	}
	if amount.LessThan(settings.MinWithdrawalAmount) {
		return nil, s.reject("create", fmt.Errorf("%w: minimum withdrawal amount is %s",
			domain.ErrValidation, settings.MinWithdrawalAmount.StringFixed(money.Places)))
	}

	var result *domain.Withdrawal
	err = s.retry.OnConflict(ctx, "create_withdrawal", func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			affiliate, err := s.getAffiliate(ctx, affiliateID)
			if err != nil {
				return err
			}
			if !affiliate.IsActive() {
				return fmt.Errorf("%w: affiliate %d is %s", domain.ErrInactive, affiliate.ID, affiliate.Status)
			}

			now := s.now()
			reserved, err := affiliate.Reserve(amount, now)
			if err != nil {
				return err
			}
			if err := s.affiliates.UpdateCounters(ctx, &reserved); err != nil {
				return err
			}
			result, err = s.withdrawals.Create(ctx, &domain.Withdrawal{
				AffiliateID:    affiliate.ID,
				Amount:         amount,
				Status:         domain.WithdrawalStatusPending,
				PaymentMethod:  paymentMethod,
				PaymentDetails: paymentDetails,
				RequestedAt:    now,
			})
			return err
		})
	})
	if err != nil {
		return nil, s.reject("create", err)
	}
	metrics.Withdrawals.WithLabelValues("create", metrics.OutcomeOK).Inc()
	zap.L().Info("withdrawal requested",
		zap.Int64("affiliate_id", affiliateID),
		zap.Int64("withdrawal_id", result.ID),
		zap.String("amount", amount.StringFixed(money.Places)),
	)
	return result, nil
}

// Approve accepts a pending withdrawal. The reservation stays in place.
func (s *Service) Approve(ctx context.Context, id int64, processedBy string) (*domain.Withdrawal, error) {
	return s.transition(ctx, "approve", id, func(w domain.Withdrawal, now time.Time) (domain.Withdrawal, error) {
		return w.Approve(processedBy, now)
	}, nil)
}

// Reject declines a pending or approved withdrawal and returns the reserved
// amount to the available balance.
func (s *Service) Reject(ctx context.Context, id int64, processedBy, notes string) (*domain.Withdrawal, error) {
	return s.transition(ctx, "reject", id, func(w domain.Withdrawal, now time.Time) (domain.Withdrawal, error) {
		return w.Reject(processedBy, notes, now)
	}, func(a domain.Affiliate, amount decimal.Decimal, now time.Time) domain.Affiliate {
		return a.Release(amount, now)
	})
}

// Complete marks an approved withdrawal as paid out.
func (s *Service) Complete(ctx context.Context, id int64, processedBy string) (*domain.Withdrawal, error) {
	return s.transition(ctx, "complete", id, func(w domain.Withdrawal, now time.Time) (domain.Withdrawal, error) {
		return w.Complete(processedBy, now)
	}, func(a domain.Affiliate, amount decimal.Decimal, now time.Time) domain.Affiliate {
		return a.Settle(amount, now)
	})
}

func (s *Service) transition(
	ctx context.Context,
	name string,
	id int64,
	apply func(domain.Withdrawal, time.Time) (domain.Withdrawal, error),
	book func(domain.Affiliate, decimal.Decimal, time.Time) domain.Affiliate,
) (*domain.Withdrawal, error) {
	var result domain.Withdrawal
	err := s.retry.OnConflict(ctx, name+"_withdrawal", func(ctx context.Context) error {
		return s.txManager.Begin(ctx, func(ctx context.Context) error {
			withdrawal, err := s.getWithdrawal(ctx, id)
			if err != nil {
				return err
			}
			now := s.now()
			next, err := apply(*withdrawal, now)
			if err != nil {
				return err
			}
			if err := s.withdrawals.UpdateStatus(ctx, &next, withdrawal.Status); err != nil {
				return err
			}
			if book != nil {
				affiliate, err := s.getAffiliate(ctx, withdrawal.AffiliateID)
				if err != nil {
					return err
				}
				booked := book(*affiliate, withdrawal.Amount, now)
				if err := s.affiliates.UpdateCounters(ctx, &booked); err != nil {
					return err
				}
			}
			result = next
			return nil
		})
	})
	if err != nil {
		return nil, s.reject(name, err)
	}
	metrics.Withdrawals.WithLabelValues(name, metrics.OutcomeOK).Inc()
	zap.L().Info("withdrawal "+result.Status,
		zap.Int64("withdrawal_id", id),
		zap.Int64("affiliate_id", result.AffiliateID),
		zap.String("amount", result.Amount.StringFixed(money.Places)),
	)
	return &result, nil
}

func (s *Service) List(ctx context.Context, affiliateID int64) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawals.ListByAffiliate(ctx, affiliateID)
	if err != nil {
		zap.L().Error("failed to list withdrawals", zap.Int64("affiliate_id", affiliateID), zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	return s.getWithdrawal(ctx, id)
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

func (s *Service) getWithdrawal(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	withdrawal, err := s.withdrawals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, fmt.Errorf("%w: withdrawal %d", domain.ErrNotFound, id)
	}
	return withdrawal, nil
}

func (s *Service) reject(transition string, err error) error {
	outcome := metrics.OutcomeError
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInactive),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidState):
		outcome = metrics.OutcomeRejected
	}
	metrics.Withdrawals.WithLabelValues(transition, outcome).Inc()
	return err
}
