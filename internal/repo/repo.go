package repo

import (
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
	affiliaterepo "github.com/GlebRadaev/affiliate-ledger/internal/repo/affiliate-repo"
	commissionrepo "github.com/GlebRadaev/affiliate-ledger/internal/repo/commission-repo"
	settingsrepo "github.com/GlebRadaev/affiliate-ledger/internal/repo/settings-repo"
	withdrawalrepo "github.com/GlebRadaev/affiliate-ledger/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/affiliateservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/attributionservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/couponservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/ledgerservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/settingsservice"
	"github.com/GlebRadaev/affiliate-ledger/internal/service/withdrawalservice"
)

type AffiliateRepo interface {
	affiliateservice.Repo
	attributionservice.AffiliateRepo
	couponservice.AffiliateRepo
	ledgerservice.AffiliateRepo
	withdrawalservice.AffiliateRepo
}

type WithdrawalRepo interface {
	ledgerservice.WithdrawalRepo
	withdrawalservice.WithdrawalRepo
}

type Repositories struct {
	Affiliates  AffiliateRepo
	Commissions ledgerservice.CommissionRepo
	Withdrawals WithdrawalRepo
	Settings    settingsservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		Affiliates:  affiliaterepo.New(conn),
		Commissions: commissionrepo.New(conn, txManager),
		Withdrawals: withdrawalrepo.New(conn),
		Settings:    settingsrepo.New(conn),
	}
}
