package expiry

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/config"
	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
)

//go:generate mockgen -source=expiry.go -destination=mock_expiry.go -package=expiry

type WalletRepo interface {
	ListExpiredBonus(ctx context.Context, now time.Time, limit int) ([]domain.Wallet, error)
	TotalBalance(ctx context.Context, kind domain.WalletKind) (decimal.Decimal, error)
}

type Forfeiter interface {
	ForfeitExpired(ctx context.Context, userID int64) (*domain.Transaction, error)
}

const batchSize = 500

// Sweeper zeroes bonus wallets whose expiry has passed.
type Sweeper struct {
	wallets    WalletRepo
	balance    Forfeiter
	workerPool WorkerPoolI
	limit      int
	interval   time.Duration
	inFlight   sync.Map
	now        func() time.Time
}

func New(cfg *config.Config, wallets WalletRepo, balance Forfeiter) *Sweeper {
	return &Sweeper{
		wallets:    wallets,
		balance:    balance,
		workerPool: NewWorkerPool(cfg.ExpiryWorkers),
		limit:      batchSize,
		interval:   cfg.ExpiryInterval,
		now:        time.Now,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	defer s.workerPool.Close()
	if s.interval <= 0 {
		return
	}
	zap.L().Info("bonus expiry sweeper started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping bonus expiry sweeper")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				zap.L().Error("bonus expiry sweep failed", zap.Error(err))
			}
			s.reportTotals(ctx)
		}
	}
}

// Sweep forfeits one batch of expired bonus wallets and reports how many were
// zeroed. A user already being processed is skipped.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	wallets, err := s.wallets.ListExpiredBonus(ctx, s.now(), s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch expired bonus wallets", zap.Error(err))
		return 0, err
	}

	var wg sync.WaitGroup
	var forfeited atomic.Int64
	for _, w := range wallets {
		userID := w.UserID
		if _, loaded := s.inFlight.LoadOrStore(userID, struct{}{}); loaded {
			continue
		}

		wg.Add(1)
		err := s.workerPool.AddTask(ctx, func() error {
			defer wg.Done()
			defer s.inFlight.Delete(userID)
			tx, err := s.balance.ForfeitExpired(ctx, userID)
			if err != nil {
				return fmt.Errorf("forfeit bonus of user %d: %w", userID, err)
			}
			if tx != nil {
				forfeited.Add(1)
				zap.L().Info("bonus balance forfeited", zap.Int64("user_id", userID), zap.String("amount", tx.Amount.String()))
			}
			return nil
		})
		if err != nil {
			wg.Done()
			s.inFlight.Delete(userID)
			wg.Wait()
			return int(forfeited.Load()), err
		}
	}
	wg.Wait()
	return int(forfeited.Load()), nil
}

// reportTotals publishes the sum of all wallet balances per kind.
func (s *Sweeper) reportTotals(ctx context.Context) {
	for _, kind := range []domain.WalletKind{domain.WalletMain, domain.WalletBonus} {
		total, err := s.wallets.TotalBalance(ctx, kind)
		if err != nil {
			continue
		}
		metrics.WalletTotals.WithLabelValues(string(kind)).Set(total.InexactFloat64())
	}
}
