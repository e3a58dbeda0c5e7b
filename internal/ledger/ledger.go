package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

//go:generate mockgen -source=ledger.go -destination=mock_ledger.go -package=ledger

type WalletRepo interface {
	GetForUpdate(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error)
	CreateForUpdate(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error)
	Update(ctx context.Context, w *domain.Wallet) error
}

type TxRepo interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
}

type Mode int

const (
	// MustExist fails with ErrNotFound when the wallet row is missing.
	MustExist Mode = iota
	// CreateMissing inserts an empty wallet before handing it to the caller.
	CreateMissing
)

// Wallets holds locked working copies keyed by kind.
type Wallets map[domain.WalletKind]*domain.Wallet

// MutateFn changes the wallets in place and returns the ledger entries that
// explain the change. Returning an error discards everything.
type MutateFn func(ws Wallets) ([]*domain.Transaction, error)

type Result struct {
	Wallets      Wallets
	Transactions []domain.Transaction
}

// Store is the only writer of wallet rows. Every mutation locks the rows it
// touches, persists the new wallet state together with its transactions and
// commits both or neither.
type Store struct {
	wallets   WalletRepo
	txs       TxRepo
	txManager pg.TXManager
	now       func() time.Time
}

func New(wallets WalletRepo, txs TxRepo, txManager pg.TXManager) *Store {
	return &Store{
		wallets:   wallets,
		txs:       txs,
		txManager: txManager,
		now:       time.Now,
	}
}

// InTx groups several store calls into one transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.txManager.Begin(ctx, fn)
}

func (s *Store) WithWallet(ctx context.Context, userID int64, kind domain.WalletKind, mode Mode,
	fn func(w *domain.Wallet) (*domain.Transaction, error)) (*Result, error) {
	return s.WithWallets(ctx, userID, []domain.WalletKind{kind}, mode, func(ws Wallets) ([]*domain.Transaction, error) {
		t, err := fn(ws[kind])
		if err != nil || t == nil {
			return nil, err
		}
		return []*domain.Transaction{t}, nil
	})
}

func (s *Store) WithWallets(ctx context.Context, userID int64, kinds []domain.WalletKind, mode Mode, fn MutateFn) (*Result, error) {
	kinds = lockOrder(kinds)
	var res *Result
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		r, err := s.mutate(ctx, userID, kinds, mode, fn)
		res = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) mutate(ctx context.Context, userID int64, kinds []domain.WalletKind, mode Mode, fn MutateFn) (*Result, error) {
	before := make(map[domain.WalletKind]domain.Wallet, len(kinds))
	work := make(Wallets, len(kinds))
	for _, kind := range kinds {
		w, err := s.lock(ctx, userID, kind, mode)
		if err != nil {
			return nil, err
		}
		before[kind] = *w
		cp := *w
		work[kind] = &cp
	}

	entries, err := fn(work)
	if err != nil {
		return nil, err
	}

	now := s.now()
	running := make(map[domain.WalletKind]decimal.Decimal, len(kinds))
	for kind, w := range before {
		running[kind] = w.Balance
	}
	for _, t := range entries {
		w, ok := work[t.WalletKind]
		if !ok {
			return nil, fmt.Errorf("entry for wallet %s which is not locked", t.WalletKind)
		}
		if err := domain.ValidateAmount(t.Amount); err != nil {
			return nil, err
		}
		t.UserID = userID
		t.WalletID = w.ID
		t.BalanceBefore = running[t.WalletKind]
		running[t.WalletKind] = t.BalanceBefore.Add(t.Signed())
		t.BalanceAfter = running[t.WalletKind]
		if t.Status == "" {
			t.Status = domain.TxCompleted
		}
		if t.Status == domain.TxCompleted {
			t.CompletedAt = &now
		}
	}

	for _, kind := range kinds {
		w := work[kind]
		if err := w.Check(); err != nil {
			return nil, err
		}
		if !running[kind].Equal(w.Balance) {
			Alert("unexplained_change", zap.Int64("wallet_id", w.ID),
				zap.String("expected", running[kind].String()), zap.String("actual", w.Balance.String()))
			return nil, fmt.Errorf("wallet %d: balance change not covered by entries", w.ID)
		}
		if err := s.wallets.Update(ctx, w); err != nil {
			return nil, err
		}
	}

	res := &Result{Wallets: work, Transactions: make([]domain.Transaction, 0, len(entries))}
	for _, t := range entries {
		saved, err := s.txs.Create(ctx, t)
		if err != nil {
			Alert("transaction_not_persisted", zap.Int64("user_id", userID), zap.Int64("wallet_id", t.WalletID),
				zap.String("amount", t.Amount.String()), zap.Error(err))
			return nil, fmt.Errorf("persist transaction: %w", err)
		}
		res.Transactions = append(res.Transactions, *saved)
	}
	return res, nil
}

func (s *Store) lock(ctx context.Context, userID int64, kind domain.WalletKind, mode Mode) (*domain.Wallet, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidWalletKind
	}
	w, err := s.wallets.GetForUpdate(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}
	if mode != CreateMissing {
		return nil, fmt.Errorf("%s wallet of user %d: %w", kind, userID, domain.ErrNotFound)
	}
	return s.wallets.CreateForUpdate(ctx, userID, kind)
}

// lockOrder dedups kinds and sorts them so that every caller locks rows of
// one user in the same order.
func lockOrder(kinds []domain.WalletKind) []domain.WalletKind {
	seen := make(map[domain.WalletKind]bool, len(kinds))
	out := make([]domain.WalletKind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Alert reports a divergence between wallet balances and their history.
func Alert(reason string, fields ...zap.Field) {
	metrics.ReconciliationAlerts.WithLabelValues(reason).Inc()
	zap.L().Error("ledger reconciliation alert",
		append([]zap.Field{zap.String("alert", "reconciliation"), zap.String("reason", reason)}, fields...)...)
}
