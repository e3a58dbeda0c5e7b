package transactionrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

const txColumns = `id, user_id, wallet_id, wallet_kind, direction, amount, balance_before, balance_after, source, action,
        service_id, description, referral_user_id, referral_level, reference_id, payment_amount, payment_currency,
        exchange_rate, status, created_at, completed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanTx(row pgx.Row, t *domain.Transaction) error {
	return row.Scan(&t.ID, &t.UserID, &t.WalletID, &t.WalletKind, &t.Direction, &t.Amount, &t.BalanceBefore,
		&t.BalanceAfter, &t.Source, &t.Action, &t.ServiceID, &t.Description, &t.ReferralUserID, &t.ReferralLevel,
		&t.ReferenceID, &t.PaymentAmount, &t.PaymentCurrency, &t.ExchangeRate, &t.Status, &t.CreatedAt, &t.CompletedAt)
}

func collect(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := scanTx(rows, &t); err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *Repository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (user_id, wallet_id, wallet_kind, direction, amount, balance_before, balance_after,
            source, action, service_id, description, referral_user_id, referral_level, reference_id,
            payment_amount, payment_currency, exchange_rate, status, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, t.UserID, t.WalletID, t.WalletKind, t.Direction, t.Amount, t.BalanceBefore,
		t.BalanceAfter, t.Source, t.Action, t.ServiceID, t.Description, t.ReferralUserID, t.ReferralLevel,
		t.ReferenceID, t.PaymentAmount, t.PaymentCurrency, t.ExchangeRate, t.Status, t.CompletedAt).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Int64("user_id", t.UserID), zap.Error(err))
		return nil, pg.MapError(err)
	}
	return t, nil
}

// List returns a user's transactions matching f, newest first.
func (r *Repository) List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	conds := []string{"user_id = $1"}
	args := []any{f.UserID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.WalletKind != "" {
		add("wallet_kind = $%d", f.WalletKind)
	}
	if f.Direction != "" {
		add("direction = $%d", f.Direction)
	}
	if f.Source != "" {
		add("source = $%d", f.Source)
	}
	args = append(args, f.Limit, f.Offset)

	query := fmt.Sprintf(`
        SELECT %s
        FROM transactions
        WHERE %s
        ORDER BY id DESC
        LIMIT $%d OFFSET $%d
    `, txColumns, strings.Join(conds, " AND "), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Int64("user_id", f.UserID), zap.Error(err))
		return nil, err
	}
	return collect(rows)
}

// ListByWallet returns every completed transaction of a wallet in commit order.
func (r *Repository) ListByWallet(ctx context.Context, walletID int64) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txColumns + `
        FROM transactions
        WHERE wallet_id = $1 AND status = 'completed'
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, walletID)
	if err != nil {
		zap.L().Error("failed to fetch wallet transactions", zap.Int64("wallet_id", walletID), zap.Error(err))
		return nil, err
	}
	return collect(rows)
}

// After pages through all transactions by ascending id.
func (r *Repository) After(ctx context.Context, afterID int64, limit int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + txColumns + `
        FROM transactions
        WHERE id > $1
        ORDER BY id
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, afterID, limit)
	if err != nil {
		zap.L().Error("failed to fetch transaction feed", zap.Error(err))
		return nil, err
	}
	return collect(rows)
}

// CountDeposits counts completed payment credits of a user.
func (r *Repository) CountDeposits(ctx context.Context, userID int64) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE user_id = $1 AND source = 'payment' AND direction = 'credit' AND status = 'completed'
    `
	var n int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		zap.L().Error("failed to count deposits", zap.Int64("user_id", userID), zap.Error(err))
		return 0, err
	}
	return n, nil
}
