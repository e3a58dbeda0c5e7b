package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/pkg/retry"
)

type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pool is the part of pgxpool.Pool the package relies on.
type Pool interface {
	Database
	Beginner
}

type TxManager struct {
	pool    Beginner
	timeout time.Duration
	policy  retry.Policy
}

type TxOption func(*TxManager)

// WithTimeout bounds one transaction attempt, lock waits included.
func WithTimeout(d time.Duration) TxOption {
	return func(m *TxManager) { m.timeout = d }
}

func WithRetry(p retry.Policy) TxOption {
	return func(m *TxManager) { m.policy = p }
}

func NewTXManager(pool Beginner, opts ...TxOption) *TxManager {
	m := &TxManager{
		pool:    pool,
		timeout: 5 * time.Second,
		policy:  retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin runs fn inside a transaction. A nested call joins the transaction
// already carried by ctx; only the outermost call retries Busy and Conflict.
func (m *TxManager) Begin(ctx context.Context, fn TransactionalFn) error {
	if InTx(ctx) {
		return fn(ctx)
	}
	return retry.Do(ctx, m.policy, domain.Retryable, func(ctx context.Context) error {
		err := m.attempt(ctx, fn)
		if domain.Retryable(err) {
			metrics.TxRetries.Inc()
			zap.L().Warn("transaction attempt failed", zap.Error(err))
		}
		return err
	})
}

func (m *TxManager) attempt(ctx context.Context, fn TransactionalFn) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return MapError(fmt.Errorf("begin tx: %w", err))
	}

	lock := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.timeout.Milliseconds())
	if _, err := tx.Exec(ctx, lock); err != nil {
		rollback(ctx, tx)
		return MapError(fmt.Errorf("set lock timeout: %w", err))
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		rollback(ctx, tx)
		return MapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return MapError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		zap.L().Error("failed to rollback transaction", zap.Error(err))
	}
}
