package service

import (
	"github.com/GlebRadaev/affiliate-ledger/internal/config"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
	"github.com/GlebRadaev/affiliate-ledger/internal/repo"
	"github.com/GlebRadaev/affiliate-ledger/internal/retry"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/affiliateservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/attributionservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/couponservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/settingsservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/withdrawalservice"
)

type Services struct {
	SettingsService    *settingsservice.Service
	AttributionService *attributionservice.Service
	AffiliateService   *affiliateservice.Service
	LedgerService      *ledgerservice.Service
	WithdrawalService  *withdrawalservice.Service
	CouponService      *couponservice.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, catalog couponservice.CouponCatalog) *Services {
	policy := retry.NewPolicy(cfg.MaxRetries)
	settingsService := settingsservice.New(repo.Settings)
	tokens := attributionservice.NewTokenCodec(cfg.AttributionSecret)

	return &Services{
		SettingsService:    settingsService,
		AttributionService: attributionservice.New(repo.Affiliates, settingsService, tokens),
		AffiliateService:   affiliateservice.New(repo.Affiliates, settingsService),
		LedgerService:      ledgerservice.New(repo.Affiliates, repo.Commissions, repo.Withdrawals, settingsService, txManager, policy),
		WithdrawalService:  withdrawalservice.New(repo.Affiliates, repo.Withdrawals, settingsService, txManager, policy),
		CouponService:      couponservice.New(repo.Affiliates, catalog),
	}
}
