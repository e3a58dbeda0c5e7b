package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/config"
	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/handlers"
	"github.com/GlebRadaev/gtonledger/internal/pg"
	"github.com/GlebRadaev/gtonledger/internal/rates"
	"github.com/GlebRadaev/gtonledger/internal/repo"
	"github.com/GlebRadaev/gtonledger/internal/service"
	"github.com/GlebRadaev/gtonledger/internal/settings"
	"github.com/GlebRadaev/gtonledger/pkg/auth"
	"github.com/GlebRadaev/gtonledger/pkg/clients"
	"github.com/GlebRadaev/gtonledger/pkg/logger"
	"github.com/GlebRadaev/gtonledger/pkg/retry"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type worker interface {
	Start(ctx context.Context)
}

type Application struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	api      *handlers.Handlers
	srv      *service.Services
	repo     *repo.Repositories
	settings *settings.Provider
	rates    *rates.Provider
	kafka    *events.KafkaPublisher

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := pg.Connect(ctx, cfg.Database, cfg.DBMaxConns)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		pool.Close()
		return fmt.Errorf("can't run migrations: %w", err)
	}

	policy := retry.DefaultPolicy()
	policy.Attempts = cfg.TxRetries
	txManager := pg.NewTXManager(pool, pg.WithTimeout(cfg.TxTimeout), pg.WithRetry(policy))

	conn := pg.New(pool)
	a.cfg = cfg
	a.pool = pool
	a.repo = repo.New(conn, txManager)

	a.settings = settings.NewProvider(a.repo.SettingsRepo, settings.Defaults(settings.Base{
		Timezone:    cfg.BonusTimezone,
		ResetHour:   cfg.BonusResetHour,
		RatesMaxAge: cfg.RatesMaxAge,
	}), cfg.SettingsRefreshInterval)
	if err := a.settings.Refresh(ctx); err != nil {
		zap.L().Warn("settings load failed, using defaults", zap.Error(err))
	}

	a.rates = rates.New(cfg, a.repo.RateRepo, a.settings, clients.NewHTTPClient())
	if err := a.rates.Load(ctx); err != nil {
		zap.L().Warn("cached rates load failed", zap.Error(err))
	}

	jwt := auth.NewJWTService(cfg.JWTSecret)
	a.srv = service.New(cfg, a.repo, service.Deps{
		TxManager: txManager,
		Rates:     a.rates,
		Settings:  a.settings,
		Publisher: a.publisher(),
		JWT:       jwt,
	})
	a.api = handlers.New(a.srv, jwt)

	if err := a.bootstrapService(ctx); err != nil {
		return fmt.Errorf("can't register bootstrap service: %w", err)
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startWorkers(ctx, a.settings, a.rates, a.srv.Sweeper)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) publisher() events.Publisher {
	if len(a.cfg.KafkaBrokers) == 0 {
		zap.L().Info("no kafka brokers configured, events are not published")
		return events.Nop{}
	}
	a.kafka = events.NewKafkaPublisher(a.cfg.KafkaBrokers, a.cfg.KafkaTopic)
	return a.kafka
}

func (a *Application) bootstrapService(ctx context.Context) error {
	if a.cfg.BootstrapServiceID == "" || a.cfg.BootstrapServiceKey == "" {
		return nil
	}
	_, err := a.srv.AuthService.Register(ctx, a.cfg.BootstrapServiceID, a.cfg.BootstrapServiceID, a.cfg.BootstrapServiceKey)
	if errors.Is(err, domain.ErrConflict) {
		zap.L().Info("bootstrap service already registered", zap.String("service", a.cfg.BootstrapServiceID))
		return nil
	}
	return err
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
		a.close()
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startWorkers(ctx context.Context, workers ...worker) {
	for _, w := range workers {
		a.wg.Add(1)
		go func(w worker) {
			defer a.wg.Done()
			w.Start(ctx)
		}(w)
	}
}

func (a *Application) close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			zap.L().Error("kafka writer close failed", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
