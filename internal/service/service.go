package service

import (
	"github.com/GlebRadaev/gtonledger/internal/config"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/expiry"
	"github.com/GlebRadaev/gtonledger/internal/handlers/audit"
	"github.com/GlebRadaev/gtonledger/internal/handlers/balance"
	"github.com/GlebRadaev/gtonledger/internal/handlers/bonus"
	"github.com/GlebRadaev/gtonledger/internal/handlers/promo"
	"github.com/GlebRadaev/gtonledger/internal/handlers/rates"
	"github.com/GlebRadaev/gtonledger/internal/handlers/users"
	"github.com/GlebRadaev/gtonledger/internal/ledger"
	"github.com/GlebRadaev/gtonledger/internal/pg"
	ratesprovider "github.com/GlebRadaev/gtonledger/internal/rates"
	"github.com/GlebRadaev/gtonledger/internal/repo"
	"github.com/GlebRadaev/gtonledger/internal/service/auditservice"
	"github.com/GlebRadaev/gtonledger/internal/service/authservice"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/internal/service/bonusservice"
	"github.com/GlebRadaev/gtonledger/internal/service/commissionservice"
	"github.com/GlebRadaev/gtonledger/internal/service/promoservice"
	"github.com/GlebRadaev/gtonledger/internal/service/userservice"
	"github.com/GlebRadaev/gtonledger/internal/settings"
	pkgauth "github.com/GlebRadaev/gtonledger/pkg/auth"
)

// Deps are the long-lived components the services share.
type Deps struct {
	TxManager pg.TXManager
	Rates     *ratesprovider.Provider
	Settings  *settings.Provider
	Publisher events.Publisher
	JWT       pkgauth.JWTServiceInterface
}

type Services struct {
	AuthService    *authservice.Service
	UserService    users.Service
	BalanceService balance.Service
	PromoService   promo.Service
	BonusService   bonus.Service
	RatesService   rates.Service
	AuditService   audit.Service
	Sweeper        *expiry.Sweeper
}

func New(cfg *config.Config, repo *repo.Repositories, deps Deps) *Services {
	store := ledger.New(repo.WalletRepo, repo.TransactionRepo, deps.TxManager)

	balanceService := balanceservice.New(store, repo.WalletRepo, repo.TransactionRepo, deps.Rates, deps.Settings, deps.Publisher)
	commissionService := commissionservice.New(store, repo.ReferralRepo, repo.CommissionRepo, balanceService, deps.Settings, deps.Publisher)
	balanceService.SetCommissions(commissionService)

	userService := userservice.New(store, repo.UserRepo, repo.WalletRepo, repo.ReferralRepo, balanceService, deps.Settings, deps.Publisher)
	promoService := promoservice.New(store, repo.PromoRepo, repo.UserRepo, repo.TransactionRepo, repo.ReferralRepo,
		balanceService, deps.Settings, deps.Publisher)
	bonusService := bonusservice.New(store, repo.BonusRepo, balanceService, deps.Settings, deps.Publisher)
	authService := authservice.New(repo.ServiceRepo, &pkgauth.HashService{}, deps.JWT, cfg.TokenTTL)
	auditService := auditservice.New(repo.TransactionRepo, repo.CommissionRepo, repo.PromoRepo, repo.BonusRepo)

	return &Services{
		AuthService:    authService,
		UserService:    userService,
		BalanceService: balanceService,
		PromoService:   promoService,
		BonusService:   bonusService,
		RatesService:   deps.Rates,
		AuditService:   auditService,
		Sweeper:        expiry.New(cfg, repo.WalletRepo, balanceService),
	}
}
