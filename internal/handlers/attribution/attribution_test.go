package attribution

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AttributionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

var expiresAt = time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

func spring() domain.AttributionToken {
	return domain.AttributionToken{ID: "t-1", PromoCode: "SPRING24", AffiliateID: 12, ExpiresAt: expiresAt}
}

func TestAttributeHandler(t *testing.T) {
	handler, service := NewMock(t)
	current := domain.AttributionToken{ID: "t-0", PromoCode: "OLD", AffiliateID: 3, ExpiresAt: expiresAt}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody *dto.AttributionResponseDTO
	}{
		{
			name: "new code issues a token",
			body: `{"promo_code":"spring24"}`,
			prepareMock: func() {
				token := spring()
				service.EXPECT().Attribute(gomock.Any(), nil, "spring24").Return(&token, nil)
				service.EXPECT().Encode(token).Return("signed", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.AttributionResponseDTO{Token: "signed", PromoCode: "SPRING24", AffiliateID: 12, ExpiresAt: expiresAt},
		},
		{
			name: "current token is decoded and kept",
			body: `{"promo_code":"UNKNOWN","token":"raw-current"}`,
			prepareMock: func() {
				service.EXPECT().Decode("raw-current").Return(current, nil)
				service.EXPECT().Attribute(gomock.Any(), &current, "UNKNOWN").Return(&current, nil)
				service.EXPECT().Encode(current).Return("raw-current", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.AttributionResponseDTO{Token: "raw-current", PromoCode: "OLD", AffiliateID: 3, ExpiresAt: expiresAt},
		},
		{
			name: "tampered current token is ignored",
			body: `{"promo_code":"","token":"tampered"}`,
			prepareMock: func() {
				service.EXPECT().Decode("tampered").Return(domain.AttributionToken{}, fmt.Errorf("%w: bad signature", domain.ErrValidation))
				service.EXPECT().Attribute(gomock.Any(), nil, "").Return(nil, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "invalid body",
			body:         `{"promo_code":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"promo_code":"SPRING24"}`,
			prepareMock: func() {
				service.EXPECT().Attribute(gomock.Any(), nil, "SPRING24").Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/attribution", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Attribute(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != nil {
				var body dto.AttributionResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, *tt.expectedBody, body)
			}
		})
	}
}

func TestValidateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "valid token",
			body: `{"token":"signed"}`,
			prepareMock: func() {
				token := spring()
				service.EXPECT().Verify("signed").Return(&token, nil)
				service.EXPECT().Encode(token).Return("signed", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "expired token",
			body: `{"token":"old"}`,
			prepareMock: func() {
				service.EXPECT().Verify("old").Return(nil, domain.ErrTokenExpired)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "tampered token",
			body: `{"token":"forged"}`,
			prepareMock: func() {
				service.EXPECT().Verify("forged").Return(nil, fmt.Errorf("%w: bad signature", domain.ErrValidation))
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "missing token",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/attribution/validate", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.Validate(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
