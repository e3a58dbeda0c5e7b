package walletrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

const walletColumns = `id, user_id, kind, balance, frozen, daily_limit, daily_spent, daily_reset_at, expires_at, version, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanWallet(row pgx.Row, w *domain.Wallet) error {
	return row.Scan(&w.ID, &w.UserID, &w.Kind, &w.Balance, &w.Frozen, &w.DailyLimit, &w.DailySpent,
		&w.DailyResetAt, &w.ExpiresAt, &w.Version, &w.UpdatedAt)
}

func (r *Repository) Get(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE user_id = $1 AND kind = $2
    `
	var w domain.Wallet
	err := scanWallet(r.db.QueryRow(ctx, query, userID, kind), &w)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get wallet", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &w, nil
}

// GetForUpdate locks the wallet row until the surrounding transaction ends.
func (r *Repository) GetForUpdate(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE user_id = $1 AND kind = $2
        FOR UPDATE
    `
	var w domain.Wallet
	err := scanWallet(r.db.QueryRow(ctx, query, userID, kind), &w)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to lock wallet", zap.Int64("user_id", userID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return &w, nil
}

// CreateForUpdate inserts an empty wallet or returns the existing one; either way the row is locked.
func (r *Repository) CreateForUpdate(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error) {
	query := `
        INSERT INTO wallets (user_id, kind)
        VALUES ($1, $2)
        ON CONFLICT (user_id, kind) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING ` + walletColumns
	var w domain.Wallet
	err := scanWallet(r.db.QueryRow(ctx, query, userID, kind), &w)
	if err != nil {
		zap.L().Error("failed to create wallet", zap.Int64("user_id", userID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return &w, nil
}

// Update writes w if nobody changed the row since w.Version was read.
func (r *Repository) Update(ctx context.Context, w *domain.Wallet) error {
	query := `
        UPDATE wallets
        SET balance = $1, frozen = $2, daily_limit = $3, daily_spent = $4, daily_reset_at = $5,
            expires_at = $6, version = version + 1, updated_at = NOW()
        WHERE id = $7 AND version = $8
        RETURNING version, updated_at
    `
	row := r.db.QueryRow(ctx, query, w.Balance, w.Frozen, w.DailyLimit, w.DailySpent, w.DailyResetAt,
		w.ExpiresAt, w.ID, w.Version)
	err := row.Scan(&w.Version, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("wallet %d version %d: %w", w.ID, w.Version, domain.ErrConflict)
		}
		zap.L().Error("failed to update wallet", zap.Int64("wallet_id", w.ID), zap.Error(err))
		return pg.MapError(err)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE user_id = $1
        ORDER BY kind
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't list wallets", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := scanWallet(rows, &w); err != nil {
			zap.L().Error("can't scan wallet row", zap.Error(err))
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// ListExpiredBonus returns non-empty bonus wallets whose expiry is at or before now.
func (r *Repository) ListExpiredBonus(ctx context.Context, now time.Time, limit int) ([]domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE kind = 'bonus' AND balance > 0 AND expires_at <= $1
        ORDER BY expires_at
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		zap.L().Error("can't list expired bonus wallets", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := scanWallet(rows, &w); err != nil {
			zap.L().Error("can't scan wallet row", zap.Error(err))
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// TotalBalance sums balances of one kind, used for the ledger gauges.
func (r *Repository) TotalBalance(ctx context.Context, kind domain.WalletKind) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM wallets WHERE kind = $1`, kind).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum wallet balances", zap.Error(err))
		return decimal.Zero, err
	}
	return total, nil
}
