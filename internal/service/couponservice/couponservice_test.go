package couponservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockAffiliateRepo, *MockCouponCatalog) {
	ctrl := gomock.NewController(t)
	repo := NewMockAffiliateRepo(ctrl)
	catalog := NewMockCouponCatalog(ctrl)
	service := New(repo, catalog)
	service.now = func() time.Time { return fixedNow }
	return service, repo, catalog
}

func ptr(s string) *string { return &s }

func TestService_Assign(t *testing.T) {
	affiliate := &domain.Affiliate{ID: 1, Status: domain.AffiliateStatusActive, Version: 9}

	type testCase struct {
		name           string
		couponID       *string
		prepareMock    func(repo *MockAffiliateRepo, catalog *MockCouponCatalog)
		expectedCoupon *string
		expectedErr    error
	}
	tests := []testCase{
		{
			name:     "existing coupon",
			couponID: ptr(" WELCOME10 "),
			prepareMock: func(repo *MockAffiliateRepo, catalog *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(affiliate, nil)
				catalog.EXPECT().Exists(gomock.Any(), "WELCOME10").Return(true, nil)
				repo.EXPECT().GetByCouponID(gomock.Any(), "WELCOME10").Return(nil, nil)
				repo.EXPECT().UpdateCoupon(gomock.Any(), int64(1), ptr("WELCOME10"), fixedNow).
					Return(&domain.Affiliate{ID: 1, CouponID: ptr("WELCOME10"), Version: 9}, nil)
			},
			expectedCoupon: ptr("WELCOME10"),
		},
		{
			name:     "reassigning own coupon",
			couponID: ptr("WELCOME10"),
			prepareMock: func(repo *MockAffiliateRepo, catalog *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(affiliate, nil)
				catalog.EXPECT().Exists(gomock.Any(), "WELCOME10").Return(true, nil)
				repo.EXPECT().GetByCouponID(gomock.Any(), "WELCOME10").Return(affiliate, nil)
				repo.EXPECT().UpdateCoupon(gomock.Any(), int64(1), ptr("WELCOME10"), fixedNow).
					Return(&domain.Affiliate{ID: 1, CouponID: ptr("WELCOME10")}, nil)
			},
			expectedCoupon: ptr("WELCOME10"),
		},
		{
			name:     "coupon owned by someone else",
			couponID: ptr("WELCOME10"),
			prepareMock: func(repo *MockAffiliateRepo, catalog *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(affiliate, nil)
				catalog.EXPECT().Exists(gomock.Any(), "WELCOME10").Return(true, nil)
				repo.EXPECT().GetByCouponID(gomock.Any(), "WELCOME10").Return(&domain.Affiliate{ID: 2}, nil)
			},
			expectedErr: domain.ErrValidation,
		},
		{
			name:     "unknown coupon",
			couponID: ptr("MISSING"),
			prepareMock: func(repo *MockAffiliateRepo, catalog *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(affiliate, nil)
				catalog.EXPECT().Exists(gomock.Any(), "MISSING").Return(false, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
		{
			name:     "catalog unavailable",
			couponID: ptr("WELCOME10"),
			prepareMock: func(repo *MockAffiliateRepo, catalog *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(affiliate, nil)
				catalog.EXPECT().Exists(gomock.Any(), "WELCOME10").Return(false, errors.New("connection refused"))
			},
			expectedErr: errors.New("connection refused"),
		},
		{
			name: "unknown affiliate",
			prepareMock: func(repo *MockAffiliateRepo, _ *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, nil)
			},
			expectedErr: domain.ErrNotFound,
		},
	}

	for _, spelling := range []*string{nil, ptr(""), ptr("null"), ptr("NONE"), ptr(" 0 ")} {
		tests = append(tests, testCase{
			name:     "clears coupon",
			couponID: spelling,
			prepareMock: func(repo *MockAffiliateRepo, _ *MockCouponCatalog) {
				repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(affiliate, nil)
				repo.EXPECT().UpdateCoupon(gomock.Any(), int64(1), nil, fixedNow).Return(&domain.Affiliate{ID: 1}, nil)
			},
		})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, catalog := NewMock(t)
			tt.prepareMock(repo, catalog)

			got, err := service.Assign(context.Background(), 1, tt.couponID)
			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCoupon, got.CouponID)
		})
	}
}

func TestService_FindAffiliateByCoupon(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		service, repo, _ := NewMock(t)
		repo.EXPECT().GetByCouponID(gomock.Any(), "WELCOME10").Return(&domain.Affiliate{ID: 3}, nil)

		a, err := service.FindAffiliateByCoupon(context.Background(), "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, int64(3), a.ID)
	})

	t.Run("not linked", func(t *testing.T) {
		service, repo, _ := NewMock(t)
		repo.EXPECT().GetByCouponID(gomock.Any(), "WELCOME10").Return(nil, nil)

		_, err := service.FindAffiliateByCoupon(context.Background(), "WELCOME10")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("placeholder", func(t *testing.T) {
		service, _, _ := NewMock(t)

		_, err := service.FindAffiliateByCoupon(context.Background(), "none")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
