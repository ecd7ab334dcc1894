package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/GlebRadaev/affiliate-ledger/docs"
	"github.com/GlebRadaev/affiliate-ledger/internal/service"
	"github.com/GlebRadaev/affiliate-ledger/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := New(&service.Services{}, auth.NewMockJWTServiceInterface(ctrl))
	assert.NotNil(t, h.AttributionHandler)
	assert.NotNil(t, h.AffiliateHandler)
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAttribution := NewMockAttributionHandler(ctrl)
	mockAffiliate := NewMockAffiliateHandler(ctrl)
	mockAdmin := NewMockAdminHandler(ctrl)
	mockJWT := auth.NewMockJWTServiceInterface(ctrl)

	mockAttribution.EXPECT().Attribute(gomock.Any(), gomock.Any()).AnyTimes()
	mockAttribution.EXPECT().Validate(gomock.Any(), gomock.Any()).AnyTimes()
	mockAffiliate.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockAffiliate.EXPECT().CreateWithdrawal(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdmin.EXPECT().GetSettings(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdmin.EXPECT().ApproveWithdrawal(gomock.Any(), gomock.Any()).AnyTimes()

	mockJWT.EXPECT().ValidateToken("affiliate").Return(&auth.Claims{UserID: 1001, Role: auth.RoleAffiliate}, nil).AnyTimes()
	mockJWT.EXPECT().ValidateToken("admin").Return(&auth.Claims{UserID: 7, Role: auth.RoleAdmin}, nil).AnyTimes()

	h := &Handlers{
		AttributionHandler: mockAttribution,
		AffiliateHandler:   mockAffiliate,
		AdminHandler:       mockAdmin,
		JWTService:         mockJWT,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/attribution", "", http.StatusOK},
		{"POST", "/api/attribution/validate", "", http.StatusOK},
		{"GET", "/api/affiliates/me", "", http.StatusUnauthorized},
		{"GET", "/api/affiliates/me", "affiliate", http.StatusOK},
		{"POST", "/api/affiliates/me/withdrawals", "affiliate", http.StatusOK},
		{"GET", "/api/admin/settings", "", http.StatusUnauthorized},
		{"GET", "/api/admin/settings", "affiliate", http.StatusForbidden},
		{"GET", "/api/admin/settings", "admin", http.StatusOK},
		{"POST", "/api/admin/withdrawals/41/approve", "admin", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url+" "+tt.token, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
