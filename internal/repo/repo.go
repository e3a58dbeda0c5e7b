package repo

import (
	"github.com/GlebRadaev/gtonledger/internal/pg"
	bonusrepo "github.com/GlebRadaev/gtonledger/internal/repo/bonus-repo"
	commissionrepo "github.com/GlebRadaev/gtonledger/internal/repo/commission-repo"
	promorepo "github.com/GlebRadaev/gtonledger/internal/repo/promo-repo"
	raterepo "github.com/GlebRadaev/gtonledger/internal/repo/rate-repo"
	referralrepo "github.com/GlebRadaev/gtonledger/internal/repo/referral-repo"
	servicerepo "github.com/GlebRadaev/gtonledger/internal/repo/service-repo"
	settingsrepo "github.com/GlebRadaev/gtonledger/internal/repo/settings-repo"
	transactionrepo "github.com/GlebRadaev/gtonledger/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/gtonledger/internal/repo/user-repo"
	walletrepo "github.com/GlebRadaev/gtonledger/internal/repo/wallet-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	WalletRepo      *walletrepo.Repository
	TransactionRepo *transactionrepo.Repository
	ReferralRepo    *referralrepo.Repository
	CommissionRepo  *commissionrepo.Repository
	PromoRepo       *promorepo.Repository
	BonusRepo       *bonusrepo.Repository
	RateRepo        *raterepo.Repository
	SettingsRepo    *settingsrepo.Repository
	ServiceRepo     *servicerepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		WalletRepo:      walletrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		ReferralRepo:    referralrepo.New(conn),
		CommissionRepo:  commissionrepo.New(conn),
		PromoRepo:       promorepo.New(conn),
		BonusRepo:       bonusrepo.New(conn),
		RateRepo:        raterepo.New(conn, txManager),
		SettingsRepo:    settingsrepo.New(conn),
		ServiceRepo:     servicerepo.New(conn),
	}
}
