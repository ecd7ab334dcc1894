package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtMock := NewMockJWTServiceInterface(ctrl)

	tests := []struct {
		name           string
		header         string
		prepareMock    func()
		expectedStatus int
		expectedUser   int64
		expectedRole   string
	}{
		{
			name:           "missing header",
			prepareMock:    func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not a bearer token",
			header:         "Basic abc",
			prepareMock:    func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer bad",
			prepareMock: func() {
				jwtMock.EXPECT().ValidateToken("bad").Return(nil, errors.New("invalid token"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			prepareMock: func() {
				jwtMock.EXPECT().ValidateToken("good").Return(&Claims{UserID: 7, Role: RoleAdmin}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedUser:   7,
			expectedRole:   RoleAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			var gotUser int64
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserID(r.Context())
				gotRole, _ = r.Context().Value(RoleKey).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/affiliates/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			AuthMiddleware(jwtMock)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedUser, gotUser)
			assert.Equal(t, tt.expectedRole, gotRole)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{name: "admin", role: RoleAdmin, expectedStatus: http.StatusOK},
		{name: "affiliate", role: RoleAffiliate, expectedStatus: http.StatusForbidden},
		{name: "no role", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
			if tt.role != "" {
				req = req.WithContext(withRole(req, tt.role))
			}
			rr := httptest.NewRecorder()
			AdminOnly(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func withRole(r *http.Request, role string) context.Context {
	return context.WithValue(r.Context(), RoleKey, role)
}
