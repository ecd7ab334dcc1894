package orderevents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func NewMockDispatcher(t *testing.T) (*Dispatcher, *MockLedger, *MockTokens) {
	ctrl := gomock.NewController(t)
	ledger := NewMockLedger(ctrl)
	tokens := NewMockTokens(ctrl)
	d := NewDispatcher(ledger, tokens)
	d.now = func() time.Time { return fixedNow }
	return d, ledger, tokens
}

func TestDispatcher_Handle(t *testing.T) {
	token := domain.AttributionToken{
		PromoCode:   "SUMMER24",
		AffiliateID: 3,
		IssuedAt:    fixedNow.AddDate(0, 0, -10),
		ExpiresAt:   fixedNow.AddDate(0, 0, 20),
	}
	subtotal := decimal.NewFromInt(1000)

	tests := []struct {
		name        string
		event       Event
		prepareMock func(ledger *MockLedger, tokens *MockTokens)
		expectedErr error
	}{
		{
			name:  "created with valid token records commission",
			event: Event{Type: TypeCreated, OrderID: "79927398713", AttributionToken: "tok", CommissionableSubtotal: subtotal},
			prepareMock: func(ledger *MockLedger, tokens *MockTokens) {
				tokens.EXPECT().Decode("tok").Return(token, nil)
				ledger.EXPECT().RecordCommission(gomock.Any(), int64(3), "79927398713", subtotal).Return(&domain.Commission{ID: 1}, nil)
			},
		},
		{
			name: "token judged at checkout time",
			event: Event{
				Type: TypeCreated, OrderID: "79927398713", AttributionToken: "tok",
				CommissionableSubtotal: subtotal, OccurredAt: fixedNow.Add(-2 * time.Hour),
			},
			prepareMock: func(ledger *MockLedger, tokens *MockTokens) {
				expiredSince := token
				expiredSince.ExpiresAt = fixedNow.Add(-time.Hour)
				tokens.EXPECT().Decode("tok").Return(expiredSince, nil)
				ledger.EXPECT().RecordCommission(gomock.Any(), int64(3), "79927398713", subtotal).Return(&domain.Commission{ID: 1}, nil)
			},
		},
		{
			name:  "expired token yields no commission",
			event: Event{Type: TypeCreated, OrderID: "79927398713", AttributionToken: "tok", OccurredAt: fixedNow.AddDate(0, 0, 31)},
			prepareMock: func(_ *MockLedger, tokens *MockTokens) {
				tokens.EXPECT().Decode("tok").Return(token, nil)
			},
		},
		{
			name:  "tampered token yields no commission",
			event: Event{Type: TypeCreated, OrderID: "79927398713", AttributionToken: "tok"},
			prepareMock: func(_ *MockLedger, tokens *MockTokens) {
				tokens.EXPECT().Decode("tok").Return(domain.AttributionToken{}, domain.ErrValidation)
			},
		},
		{
			name:        "created without token",
			event:       Event{Type: TypeCreated, OrderID: "79927398713"},
			prepareMock: func(*MockLedger, *MockTokens) {},
		},
		{
			name:  "inactive affiliate surfaces",
			event: Event{Type: TypeCreated, OrderID: "79927398713", AttributionToken: "tok", CommissionableSubtotal: subtotal},
			prepareMock: func(ledger *MockLedger, tokens *MockTokens) {
				tokens.EXPECT().Decode("tok").Return(token, nil)
				ledger.EXPECT().RecordCommission(gomock.Any(), int64(3), "79927398713", subtotal).Return(nil, domain.ErrInactive)
			},
			expectedErr: domain.ErrInactive,
		},
		{
			name:  "delivered approves",
			event: Event{Type: TypeDelivered, OrderID: "79927398713"},
			prepareMock: func(ledger *MockLedger, _ *MockTokens) {
				ledger.EXPECT().ApproveByOrder(gomock.Any(), "79927398713").Return(nil, nil)
			},
		},
		{
			name:  "cancelled cancels",
			event: Event{Type: TypeCancelled, OrderID: "79927398713"},
			prepareMock: func(ledger *MockLedger, _ *MockTokens) {
				ledger.EXPECT().CancelByOrder(gomock.Any(), "79927398713").Return(nil, nil)
			},
		},
		{
			name:  "refunded cancels",
			event: Event{Type: TypeRefunded, OrderID: "79927398713"},
			prepareMock: func(ledger *MockLedger, _ *MockTokens) {
				ledger.EXPECT().CancelByOrder(gomock.Any(), "79927398713").Return(nil, errors.New("db down"))
			},
			expectedErr: errors.New("db down"),
		},
		{
			name:        "unknown type",
			event:       Event{Type: "OrderShipped", OrderID: "79927398713"},
			prepareMock: func(*MockLedger, *MockTokens) {},
			expectedErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ledger, tokens := NewMockDispatcher(t)
			tt.prepareMock(ledger, tokens)

			err := d.Handle(context.Background(), tt.event)
			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}
