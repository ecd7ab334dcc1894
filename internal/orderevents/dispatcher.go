package orderevents

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

//go:generate mockgen -source=dispatcher.go -destination=mock_dispatcher.go -package=orderevents
type Ledger interface {
	RecordCommission(ctx context.Context, affiliateID int64, orderID string, subtotal decimal.Decimal) (*domain.Commission, error)
	ApproveByOrder(ctx context.Context, orderID string) ([]domain.Commission, error)
	CancelByOrder(ctx context.Context, orderID string) ([]domain.Commission, error)
}

type Tokens interface {
	Decode(raw string) (domain.AttributionToken, error)
}

type Dispatcher struct {
	ledger Ledger
	tokens Tokens
	now    func() time.Time
}

func NewDispatcher(ledger Ledger, tokens Tokens) *Dispatcher {
	return &Dispatcher{
		ledger: ledger,
		tokens: tokens,
		now:    time.Now,
	}
}

// Handle applies one event to the ledger. An order placed without a valid
// attribution token is not an error: it simply earns no commission.
func (d *Dispatcher) Handle(ctx context.Context, e Event) error {
	switch e.Type {
	case TypeCreated:
		return d.created(ctx, e)
	case TypeDelivered:
		_, err := d.ledger.ApproveByOrder(ctx, e.OrderID)
		return err
	case TypeCancelled, TypeRefunded:
		_, err := d.ledger.CancelByOrder(ctx, e.OrderID)
		return err
	default:
		return fmt.Errorf("%w: unknown order event type %q", domain.ErrValidation, e.Type)
	}
}

func (d *Dispatcher) created(ctx context.Context, e Event) error {
	if e.AttributionToken == "" {
		return nil
	}
	token, err := d.tokens.Decode(e.AttributionToken)
	if err != nil {
		zap.L().Warn("order carries an unreadable attribution token", zap.String("order_id", e.OrderID), zap.Error(err))
		return nil
	}
	at := e.OccurredAt
	if at.IsZero() {
		at = d.now()
	}
	if !token.ValidAt(at) {
		zap.L().Info("attribution expired before checkout",
			zap.String("order_id", e.OrderID),
			zap.String("promo_code", token.PromoCode),
			zap.Time("expires_at", token.ExpiresAt),
		)
		return nil
	}
	_, err = d.ledger.RecordCommission(ctx, token.AffiliateID, e.OrderID, e.CommissionableSubtotal)
	return err
}
