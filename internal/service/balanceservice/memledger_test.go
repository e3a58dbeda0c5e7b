package balanceservice

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/pg"
)

type walletKey struct {
	userID int64
	kind   domain.WalletKind
}

type inTxKey struct{}

// memLedger is an in-memory stand-in for the wallet and transaction tables
// plus a transaction manager. One mutex plays the part of the row locks and
// a failed transaction restores the state it started from.
type memLedger struct {
	mu      sync.Mutex
	wallets map[walletKey]*domain.Wallet
	txs     []domain.Transaction
	nextID  int64

	failTxCreate bool
}

func newMemLedger() *memLedger {
	return &memLedger{wallets: make(map[walletKey]*domain.Wallet)}
}

func (m *memLedger) seed(userID int64, kind domain.WalletKind, balance string) *domain.Wallet {
	m.nextID++
	w := &domain.Wallet{ID: m.nextID, UserID: userID, Kind: kind, Balance: d(balance), Version: 1}
	m.wallets[walletKey{userID, kind}] = w
	if w.Balance.IsPositive() {
		m.nextID++
		m.txs = append(m.txs, domain.Transaction{
			ID: m.nextID, UserID: userID, WalletID: w.ID, WalletKind: kind, Direction: domain.Credit,
			Amount: w.Balance, BalanceBefore: d("0"), BalanceAfter: w.Balance, Source: domain.SourceAdmin,
			Status: domain.TxCompleted,
		})
	}
	return w
}

func (m *memLedger) Begin(ctx context.Context, fn pg.TransactionalFn) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := make(map[walletKey]domain.Wallet, len(m.wallets))
	for k, w := range m.wallets {
		saved[k] = *w
	}
	savedTxs, savedID := len(m.txs), m.nextID

	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		m.wallets = make(map[walletKey]*domain.Wallet, len(saved))
		for k, w := range saved {
			w := w
			m.wallets[k] = &w
		}
		m.txs, m.nextID = m.txs[:savedTxs], savedID
		return err
	}
	return nil
}

func (m *memLedger) get(userID int64, kind domain.WalletKind) *domain.Wallet {
	w, ok := m.wallets[walletKey{userID, kind}]
	if !ok {
		return nil
	}
	cp := *w
	return &cp
}

func (m *memLedger) GetForUpdate(_ context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error) {
	return m.get(userID, kind), nil
}

func (m *memLedger) CreateForUpdate(_ context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error) {
	if w := m.get(userID, kind); w != nil {
		return w, nil
	}
	m.nextID++
	w := &domain.Wallet{ID: m.nextID, UserID: userID, Kind: kind}
	m.wallets[walletKey{userID, kind}] = w
	cp := *w
	return &cp, nil
}

func (m *memLedger) Update(_ context.Context, w *domain.Wallet) error {
	cur, ok := m.wallets[walletKey{w.UserID, w.Kind}]
	if !ok || cur.Version != w.Version {
		return domain.ErrConflict
	}
	w.Version++
	w.UpdatedAt = time.Now()
	cp := *w
	m.wallets[walletKey{w.UserID, w.Kind}] = &cp
	return nil
}

func (m *memLedger) Create(_ context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	if m.failTxCreate {
		return nil, fmt.Errorf("insert transaction: connection reset")
	}
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now()
	m.txs = append(m.txs, *t)
	return t, nil
}

func (m *memLedger) Get(_ context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(userID, kind), nil
}

func (m *memLedger) ListByUser(_ context.Context, userID int64) ([]domain.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Wallet
	for k, w := range m.wallets {
		if k.userID == userID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

func (m *memLedger) List(_ context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for i := len(m.txs) - 1; i >= 0; i-- {
		t := m.txs[i]
		if t.UserID != f.UserID ||
			(f.WalletKind != "" && t.WalletKind != f.WalletKind) ||
			(f.Direction != "" && t.Direction != f.Direction) ||
			(f.Source != "" && t.Source != f.Source) {
			continue
		}
		out = append(out, t)
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memLedger) ListByWallet(_ context.Context, walletID int64) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.txs {
		if t.WalletID == walletID && t.Status == domain.TxCompleted {
			out = append(out, t)
		}
	}
	return out, nil
}

// tamper changes a stored balance behind the ledger's back.
func (m *memLedger) tamper(userID int64, kind domain.WalletKind, balance string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[walletKey{userID, kind}].Balance = d(balance)
}
