package orderevents

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    Event
		expectedErr error
	}{
		{
			name: "created with token",
			raw: `{"event_id":"e-1","type":"OrderCreated","order_id":"79927398713",
				"attribution_token":"tok","commissionable_subtotal":"1000.50","occurred_at":"2024-06-01T09:00:00Z"}`,
			expected: Event{
				EventID:          "e-1",
				Type:             TypeCreated,
				OrderID:          "79927398713",
				AttributionToken: "tok",
				OccurredAt:       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			name:     "delivered with numeric subtotal",
			raw:      `{"event_id":"e-2","type":"OrderDelivered","order_id":" 79927398713 ","commissionable_subtotal":12.5}`,
			expected: Event{EventID: "e-2", Type: TypeDelivered, OrderID: "79927398713"},
		},
		{
			name:        "unknown type",
			raw:         `{"event_id":"e-3","type":"OrderShipped","order_id":"79927398713"}`,
			expectedErr: domain.ErrValidation,
		},
		{
			name:     "opaque order id",
			raw:      `{"event_id":"e-4","type":"OrderDelivered","order_id":"ORD-1001"}`,
			expected: Event{EventID: "e-4", Type: TypeDelivered, OrderID: "ORD-1001"},
		},
		{
			name:     "short numeric order id",
			raw:      `{"event_id":"e-5","type":"OrderCancelled","order_id":"1001"}`,
			expected: Event{EventID: "e-5", Type: TypeCancelled, OrderID: "1001"},
		},
		{
			name:        "empty order id",
			raw:         `{"event_id":"e-6","type":"OrderCreated","order_id":"   "}`,
			expectedErr: domain.ErrValidation,
		},
		{
			name:        "order id too long",
			raw:         `{"event_id":"e-7","type":"OrderCreated","order_id":"` + strings.Repeat("9", MaxOrderIDLength+1) + `"}`,
			expectedErr: domain.ErrValidation,
		},
		{
			name:        "not json",
			raw:         `order delivered`,
			expectedErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Decode([]byte(tt.raw))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.EventID, e.EventID)
			assert.Equal(t, tt.expected.Type, e.Type)
			assert.Equal(t, tt.expected.OrderID, e.OrderID)
			assert.Equal(t, tt.expected.AttributionToken, e.AttributionToken)
			assert.True(t, tt.expected.OccurredAt.Equal(e.OccurredAt))
		})
	}
}

func TestDecode_Subtotal(t *testing.T) {
	e, err := Decode([]byte(`{"event_id":"e-1","type":"OrderCreated","order_id":"79927398713","commissionable_subtotal":"1000.50"}`))
	require.NoError(t, err)
	assert.Equal(t, "1000.50", e.CommissionableSubtotal.StringFixed(2))
}

func TestDecode_AssignsEventID(t *testing.T) {
	e, err := Decode([]byte(`{"type":"OrderCancelled","order_id":"79927398713"}`))
	require.NoError(t, err)
	_, err = uuid.Parse(e.EventID)
	assert.NoError(t, err)
}

func TestDecoder_LuhnOrderIDs(t *testing.T) {
	strict := Decoder{LuhnOrderIDs: true}

	tests := []struct {
		name    string
		orderID string
		wantErr bool
	}{
		{name: "luhn valid", orderID: "79927398713"},
		{name: "luhn invalid", orderID: "79927398710", wantErr: true},
		{name: "not numeric", orderID: "ORD-1001", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"event_id":"e-1","type":"OrderRefunded","order_id":"` + tt.orderID + `"}`
			_, err := strict.Decode([]byte(raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
