package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       int
		retryAfter string
	}{
		{name: "not found", err: fmt.Errorf("%w: affiliate 4", domain.ErrNotFound), code: http.StatusNotFound},
		{name: "inactive", err: domain.ErrInactive, code: http.StatusForbidden},
		{name: "validation", err: fmt.Errorf("%w: amount", domain.ErrValidation), code: http.StatusUnprocessableEntity},
		{name: "expired token", err: domain.ErrTokenExpired, code: http.StatusUnprocessableEntity},
		{name: "invalid state", err: domain.ErrInvalidState, code: http.StatusConflict},
		{name: "insufficient reversal", err: domain.ErrInsufficientReversal, code: http.StatusConflict},
		{name: "conflict", err: fmt.Errorf("approve failed after 5 attempts: %w", domain.ErrConcurrencyConflict), code: http.StatusServiceUnavailable, retryAfter: "1"},
		{name: "configuration", err: domain.ErrConfiguration, code: http.StatusServiceUnavailable},
		{name: "rejected settings", err: fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrConfiguration), code: http.StatusUnprocessableEntity},
		{name: "unknown", err: errors.New("db down"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Respond(w, tt.err)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.retryAfter, w.Header().Get("Retry-After"))
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw string
		id  int64
		ok  bool
	}{
		{raw: "42", id: 42, ok: true},
		{raw: "0"},
		{raw: "-1"},
		{raw: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, ok := PathID(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}
