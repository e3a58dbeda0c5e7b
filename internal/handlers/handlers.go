package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/gtonledger/docs"
	audithandlers "github.com/GlebRadaev/gtonledger/internal/handlers/audit"
	authhandlers "github.com/GlebRadaev/gtonledger/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/gtonledger/internal/handlers/balance"
	bonushandlers "github.com/GlebRadaev/gtonledger/internal/handlers/bonus"
	promohandlers "github.com/GlebRadaev/gtonledger/internal/handlers/promo"
	rateshandlers "github.com/GlebRadaev/gtonledger/internal/handlers/rates"
	usershandlers "github.com/GlebRadaev/gtonledger/internal/handlers/users"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/service"
	"github.com/GlebRadaev/gtonledger/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type AuthHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	Deduct(w http.ResponseWriter, r *http.Request)
	Credit(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	Freeze(w http.ResponseWriter, r *http.Request)
	Unfreeze(w http.ResponseWriter, r *http.Request)
	SetDailyLimit(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type PromoHandler interface {
	Validate(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
}

type BonusHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	Claim(w http.ResponseWriter, r *http.Request)
}

type RatesHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Convert(w http.ResponseWriter, r *http.Request)
}

type AuditHandler interface {
	Feed(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	UserHandler    UserHandler
	BalanceHandler BalanceHandler
	PromoHandler   PromoHandler
	BonusHandler   BonusHandler
	RatesHandler   RatesHandler
	AuditHandler   AuditHandler

	jwt auth.JWTServiceInterface
}

func New(s *service.Services, jwt auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		UserHandler:    usershandlers.New(s.UserService),
		BalanceHandler: balancehandlers.New(s.BalanceService),
		PromoHandler:   promohandlers.New(s.PromoService),
		BonusHandler:   bonushandlers.New(s.BonusService),
		RatesHandler:   rateshandlers.New(s.RatesService),
		AuditHandler:   audithandlers.New(s.AuditService),
		jwt:            jwt,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/services/token", h.AuthHandler.Token)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.jwt))

			r.Route("/users", func(r chi.Router) {
				r.Post("/", h.UserHandler.Register)
				r.Route("/{userID}", func(r chi.Router) {
					r.Get("/", h.UserHandler.Get)
					r.Get("/balance", h.BalanceHandler.GetBalance)
					r.Get("/balances", h.BalanceHandler.GetBalances)
					r.Post("/deduct", h.BalanceHandler.Deduct)
					r.Post("/credit", h.BalanceHandler.Credit)
					r.Post("/deposit", h.BalanceHandler.Deposit)
					r.Post("/transfer", h.BalanceHandler.Transfer)
					r.Post("/freeze", h.BalanceHandler.Freeze)
					r.Post("/unfreeze", h.BalanceHandler.Unfreeze)
					r.Put("/daily-limit", h.BalanceHandler.SetDailyLimit)
					r.Get("/transactions", h.BalanceHandler.GetTransactions)
					r.Get("/reconcile", h.BalanceHandler.Reconcile)
					r.Get("/daily-bonus", h.BonusHandler.Status)
					r.Post("/daily-bonus/claim", h.BonusHandler.Claim)
				})
			})
			r.Route("/promocodes", func(r chi.Router) {
				r.Post("/validate", h.PromoHandler.Validate)
				r.Post("/activate", h.PromoHandler.Activate)
			})
			r.Route("/rates", func(r chi.Router) {
				r.Get("/", h.RatesHandler.List)
				r.Post("/convert", h.RatesHandler.Convert)
			})
			r.Get("/audit/{feed}", h.AuditHandler.Feed)
		})
	})

	return r
}
