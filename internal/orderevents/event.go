// Package orderevents consumes order lifecycle events and turns them into
// ledger operations.
package orderevents

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/validate"
)

const (
	TypeCreated   = "OrderCreated"
	TypeDelivered = "OrderDelivered"
	TypeCancelled = "OrderCancelled"
	TypeRefunded  = "OrderRefunded"
)

type Event struct {
	EventID                string          `json:"event_id"`
	Type                   string          `json:"type"`
	OrderID                string          `json:"order_id"`
	AttributionToken       string          `json:"attribution_token,omitempty"`
	CommissionableSubtotal decimal.Decimal `json:"commissionable_subtotal"`
	OccurredAt             time.Time       `json:"occurred_at"`
}

// MaxOrderIDLength matches the ledger's limit on stored order ids.
const MaxOrderIDLength = 64

// Decoder parses event envelopes. Order ids are opaque unless
// LuhnOrderIDs is set, in which case they must also pass a Luhn check.
type Decoder struct {
	LuhnOrderIDs bool
}

// Decode parses an event envelope with the default Decoder.
func Decode(raw []byte) (Event, error) {
	return Decoder{}.Decode(raw)
}

// Decode parses an event envelope. Events without an id get a random one,
// which means they are never deduplicated.
func (d Decoder) Decode(raw []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return Event{}, fmt.Errorf("%w: malformed order event: %v", domain.ErrValidation, err)
	}
	e.OrderID = strings.TrimSpace(e.OrderID)
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	switch e.Type {
	case TypeCreated, TypeDelivered, TypeCancelled, TypeRefunded:
	default:
		return e, fmt.Errorf("%w: unknown order event type %q", domain.ErrValidation, e.Type)
	}
	if e.OrderID == "" || len(e.OrderID) > MaxOrderIDLength {
		return e, fmt.Errorf("%w: order id must be 1..%d characters", domain.ErrValidation, MaxOrderIDLength)
	}
	if d.LuhnOrderIDs && !validate.IsOrderNumber(e.OrderID) {
		return e, fmt.Errorf("%w: order id %q fails luhn check", domain.ErrValidation, e.OrderID)
	}
	return e, nil
}
