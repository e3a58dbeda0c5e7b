package balanceservice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/ledger"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/pg"
	"github.com/GlebRadaev/gtonledger/internal/settings"
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

type Store interface {
	WithWallet(ctx context.Context, userID int64, kind domain.WalletKind, mode ledger.Mode, fn func(w *domain.Wallet) (*domain.Transaction, error)) (*ledger.Result, error)
	WithWallets(ctx context.Context, userID int64, kinds []domain.WalletKind, mode ledger.Mode, fn ledger.MutateFn) (*ledger.Result, error)
}

type WalletRepo interface {
	Get(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Wallet, error)
}

type TxRepo interface {
	List(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error)
	ListByWallet(ctx context.Context, walletID int64) ([]domain.Transaction, error)
}

// Commissions runs the referral cascade for a committed debit.
type Commissions interface {
	Process(ctx context.Context, debit domain.Transaction) error
}

type Rates interface {
	Convert(ctx context.Context, amount decimal.Decimal, currency string) (*domain.Conversion, error)
}

type Settings interface {
	Snapshot() *settings.Snapshot
}

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100

	ActionTransfer = "transfer"
	ActionExpired  = "expired"
	ActionDeposit  = "deposit"
)

// Operation describes one debit or credit request.
type Operation struct {
	UserID      int64
	Amount      decimal.Decimal
	WalletKind  domain.WalletKind
	Source      string
	Action      string
	Reason      string
	ServiceID   *string
	ReferenceID *string
	// ExpiresAt applies to bonus credits only.
	ExpiresAt   *time.Time

	ReferralUserID  *int64
	ReferralLevel   *int
	PaymentAmount   decimal.NullDecimal
	PaymentCurrency *string
	ExchangeRate    decimal.NullDecimal
}

type Result struct {
	Transaction domain.Transaction `json:"transaction"`
	Balance     decimal.Decimal    `json:"balance"`
}

type Reconciliation struct {
	WalletID     int64           `json:"wallet_id"`
	Balance      decimal.Decimal `json:"balance"`
	Replayed     decimal.Decimal `json:"replayed"`
	Transactions int             `json:"transactions"`
	BrokenLinks  int             `json:"broken_links"`
	Consistent   bool            `json:"consistent"`
}

type Service struct {
	store       Store
	wallets     WalletRepo
	txs         TxRepo
	commissions Commissions
	rates       Rates
	settings    Settings
	publisher   events.Publisher
	now         func() time.Time
}

func New(store Store, wallets WalletRepo, txs TxRepo, rates Rates, settings Settings, publisher events.Publisher) *Service {
	return &Service{
		store:     store,
		wallets:   wallets,
		txs:       txs,
		rates:     rates,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}
}

// SetCommissions attaches the referral engine. The engine itself credits
// through this service, hence the late binding.
func (s *Service) SetCommissions(c Commissions) {
	s.commissions = c
}

func kindOrMain(kind domain.WalletKind) (domain.WalletKind, error) {
	if kind == "" {
		return domain.WalletMain, nil
	}
	if !kind.Valid() {
		return "", domain.ErrInvalidWalletKind
	}
	return kind, nil
}

// spendable treats an expired bonus wallet as empty.
func spendable(w *domain.Wallet, now time.Time) decimal.Decimal {
	if w.Expired(now) {
		return decimal.Zero
	}
	return w.Spendable()
}

func (s *Service) GetBalance(ctx context.Context, userID int64, kind domain.WalletKind) (decimal.Decimal, error) {
	kind, err := kindOrMain(kind)
	if err != nil {
		return decimal.Zero, err
	}
	w, err := s.wallets.Get(ctx, userID, kind)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int64("user_id", userID), zap.Error(err))
		return decimal.Zero, err
	}
	if w == nil {
		return decimal.Zero, nil
	}
	return spendable(w, s.now()), nil
}

func (s *Service) GetBalances(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	wallets, err := s.wallets.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list wallets", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return wallets, nil
}

func (s *Service) Deduct(ctx context.Context, op Operation) (*Result, error) {
	res, err := s.deduct(ctx, op)
	metrics.Observe("deduct", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, res.Transaction)

	if s.commissions != nil {
		if err := s.commissions.Process(ctx, res.Transaction); err != nil {
			metrics.CommissionFailures.Inc()
			zap.L().Error("commission cascade failed", zap.Int64("tx_id", res.Transaction.ID),
				zap.Int64("user_id", op.UserID), zap.Error(err))
		}
	}
	return res, nil
}

func (s *Service) deduct(ctx context.Context, op Operation) (*Result, error) {
	if err := domain.ValidateAmount(op.Amount); err != nil {
		return nil, err
	}
	kind, err := kindOrMain(op.WalletKind)
	if err != nil {
		return nil, err
	}
	snap := s.settings.Snapshot()
	now := s.now()

	r, err := s.store.WithWallet(ctx, op.UserID, kind, ledger.MustExist, func(w *domain.Wallet) (*domain.Transaction, error) {
		period := snap.LimitPeriodStart(now)
		if w.DailyResetAt == nil || w.DailyResetAt.Before(period) {
			w.DailySpent = decimal.Zero
			w.DailyResetAt = &period
		}
		if w.DailyLimit.Valid && w.DailySpent.Add(op.Amount).GreaterThan(w.DailyLimit.Decimal) {
			return nil, domain.ErrLimitExceeded
		}
		if available := spendable(w, now); available.LessThan(op.Amount) {
			return nil, domain.NewInsufficientBalance(available)
		}
		w.Balance = w.Balance.Sub(op.Amount)
		w.DailySpent = w.DailySpent.Add(op.Amount)
		return entry(op, kind, domain.Debit, domain.SourceService), nil
	})
	if err != nil {
		return nil, err
	}
	return result(r, kind, now), nil
}

func (s *Service) Credit(ctx context.Context, op Operation) (*Result, error) {
	res, err := s.credit(ctx, op)
	metrics.Observe("credit", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, res.Transaction)
	return res, nil
}

func (s *Service) credit(ctx context.Context, op Operation) (*Result, error) {
	if err := domain.ValidateAmount(op.Amount); err != nil {
		return nil, err
	}
	kind, err := kindOrMain(op.WalletKind)
	if err != nil {
		return nil, err
	}
	snap := s.settings.Snapshot()
	now := s.now()

	r, err := s.store.WithWallets(ctx, op.UserID, []domain.WalletKind{kind}, ledger.CreateMissing, func(ws ledger.Wallets) ([]*domain.Transaction, error) {
		w := ws[kind]
		var entries []*domain.Transaction
		if forfeit := forfeitEntry(w, now); forfeit != nil {
			entries = append(entries, forfeit)
		}
		w.Balance = w.Balance.Add(op.Amount)
		if kind == domain.WalletBonus && op.ExpiresAt != nil {
			if snap.ExpiryPolicy != settings.ExpiryMax || w.ExpiresAt == nil || op.ExpiresAt.After(*w.ExpiresAt) {
				exp := *op.ExpiresAt
				w.ExpiresAt = &exp
			}
		}
		return append(entries, entry(op, kind, domain.Credit, domain.SourceAdmin)), nil
	})
	if err != nil {
		return nil, err
	}
	return result(r, kind, now), nil
}

// forfeitEntry zeroes an expired bonus wallet that the sweeper has not reached yet.
func forfeitEntry(w *domain.Wallet, now time.Time) *domain.Transaction {
	if !w.Expired(now) || !w.Balance.IsPositive() {
		return nil
	}
	amount := w.Balance
	w.Balance = decimal.Zero
	w.Frozen = decimal.Zero
	w.ExpiresAt = nil
	return &domain.Transaction{
		WalletKind:  w.Kind,
		Direction:   domain.Debit,
		Amount:      amount,
		Source:      domain.SourceBonus,
		Action:      ActionExpired,
		Description: "bonus balance expired",
	}
}

// Deposit converts an external payment to GTON and credits the main wallet.
func (s *Service) Deposit(ctx context.Context, op Operation, amount decimal.Decimal, currency string) (*Result, error) {
	conv, err := s.rates.Convert(ctx, amount, currency)
	if err != nil {
		metrics.Observe("deposit", err)
		zap.L().Error("failed to convert deposit", zap.Int64("user_id", op.UserID),
			zap.String("currency", currency), zap.Error(err))
		return nil, err
	}
	op.Amount = conv.GTON
	op.WalletKind = domain.WalletMain
	op.Source = domain.SourcePayment
	if op.Action == "" {
		op.Action = ActionDeposit
	}
	op.PaymentAmount = decimal.NewNullDecimal(conv.Amount)
	op.PaymentCurrency = &conv.Currency
	op.ExchangeRate = decimal.NewNullDecimal(conv.Rate)
	res, err := s.credit(ctx, op)
	metrics.Observe("deposit", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, res.Transaction)
	return res, nil
}

// Transfer moves funds between two wallets of one user in a single store transaction.
func (s *Service) Transfer(ctx context.Context, userID int64, from, to domain.WalletKind, amount decimal.Decimal, serviceID *string) ([]domain.Transaction, error) {
	txs, err := s.transfer(ctx, userID, from, to, amount, serviceID)
	metrics.Observe("transfer", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, txs...)
	return txs, nil
}

func (s *Service) transfer(ctx context.Context, userID int64, from, to domain.WalletKind, amount decimal.Decimal, serviceID *string) ([]domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if !from.Valid() || !to.Valid() || from == to {
		return nil, domain.ErrInvalidWalletKind
	}
	now := s.now()
	r, err := s.store.WithWallets(ctx, userID, []domain.WalletKind{from, to}, ledger.CreateMissing, func(ws ledger.Wallets) ([]*domain.Transaction, error) {
		src, dst := ws[from], ws[to]
		if available := spendable(src, now); available.LessThan(amount) {
			return nil, domain.NewInsufficientBalance(available)
		}
		var entries []*domain.Transaction
		if forfeit := forfeitEntry(dst, now); forfeit != nil {
			entries = append(entries, forfeit)
		}
		src.Balance = src.Balance.Sub(amount)
		dst.Balance = dst.Balance.Add(amount)
		desc := fmt.Sprintf("transfer %s -> %s", from, to)
		return append(entries,
			&domain.Transaction{WalletKind: from, Direction: domain.Debit, Amount: amount, Source: domain.SourceService,
				Action: ActionTransfer, ServiceID: serviceID, Description: desc},
			&domain.Transaction{WalletKind: to, Direction: domain.Credit, Amount: amount, Source: domain.SourceService,
				Action: ActionTransfer, ServiceID: serviceID, Description: desc},
		), nil
	})
	if err != nil {
		return nil, err
	}
	return r.Transactions, nil
}

func (s *Service) Freeze(ctx context.Context, userID int64, kind domain.WalletKind, amount decimal.Decimal) (*domain.Wallet, error) {
	w, err := s.adjustFrozen(ctx, userID, kind, amount)
	metrics.Observe("freeze", err)
	return w, err
}

func (s *Service) Unfreeze(ctx context.Context, userID int64, kind domain.WalletKind, amount decimal.Decimal) (*domain.Wallet, error) {
	w, err := s.adjustFrozen(ctx, userID, kind, amount.Neg())
	metrics.Observe("unfreeze", err)
	return w, err
}

func (s *Service) adjustFrozen(ctx context.Context, userID int64, kind domain.WalletKind, delta decimal.Decimal) (*domain.Wallet, error) {
	if err := domain.ValidateAmount(delta.Abs()); err != nil {
		return nil, err
	}
	kind, err := kindOrMain(kind)
	if err != nil {
		return nil, err
	}
	now := s.now()
	r, err := s.store.WithWallet(ctx, userID, kind, ledger.MustExist, func(w *domain.Wallet) (*domain.Transaction, error) {
		frozen := w.Frozen.Add(delta)
		if frozen.IsNegative() {
			return nil, fmt.Errorf("unfreeze %s of %s frozen: %w", delta.Neg(), w.Frozen, domain.ErrLimitExceeded)
		}
		if delta.IsPositive() && delta.GreaterThan(spendable(w, now)) {
			return nil, domain.NewInsufficientBalance(spendable(w, now))
		}
		w.Frozen = frozen
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return r.Wallets[kind], nil
}

// SetDailyLimit installs or clears (Valid=false) a wallet's daily spend cap.
func (s *Service) SetDailyLimit(ctx context.Context, userID int64, kind domain.WalletKind, limit decimal.NullDecimal) (*domain.Wallet, error) {
	kind, err := kindOrMain(kind)
	if err != nil {
		return nil, err
	}
	if limit.Valid {
		if err := domain.ValidateAmount(limit.Decimal); err != nil {
			return nil, err
		}
	}
	r, err := s.store.WithWallet(ctx, userID, kind, ledger.CreateMissing, func(w *domain.Wallet) (*domain.Transaction, error) {
		w.DailyLimit = limit
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return r.Wallets[kind], nil
}

// ForfeitExpired zeroes a bonus wallet whose expiry has passed. It returns nil
// when there was nothing to forfeit.
func (s *Service) ForfeitExpired(ctx context.Context, userID int64) (*domain.Transaction, error) {
	now := s.now()
	r, err := s.store.WithWallet(ctx, userID, domain.WalletBonus, ledger.MustExist, func(w *domain.Wallet) (*domain.Transaction, error) {
		return forfeitEntry(w, now), nil
	})
	metrics.Observe("forfeit", err)
	if err != nil {
		return nil, err
	}
	if len(r.Transactions) == 0 {
		return nil, nil
	}
	metrics.BonusForfeited.Inc()
	s.publish(ctx, r.Transactions...)
	return &r.Transactions[0], nil
}

// History returns a user's transactions, newest first.
func (s *Service) History(ctx context.Context, f domain.TransactionFilter) ([]domain.Transaction, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.WalletKind != "" && !f.WalletKind.Valid() {
		return nil, domain.ErrInvalidWalletKind
	}
	txs, err := s.txs.List(ctx, f)
	if err != nil {
		zap.L().Error("failed to fetch history", zap.Int64("user_id", f.UserID), zap.Error(err))
		return nil, err
	}
	return txs, nil
}

// Reconcile replays a wallet's completed transactions from zero and compares
// the result with the stored balance.
func (s *Service) Reconcile(ctx context.Context, userID int64, kind domain.WalletKind) (*Reconciliation, error) {
	kind, err := kindOrMain(kind)
	if err != nil {
		return nil, err
	}
	w, err := s.wallets.Get(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%s wallet of user %d: %w", kind, userID, domain.ErrNotFound)
	}
	txs, err := s.txs.ListByWallet(ctx, w.ID)
	if err != nil {
		zap.L().Error("failed to load wallet history", zap.Int64("wallet_id", w.ID), zap.Error(err))
		return nil, err
	}

	rep := &Reconciliation{WalletID: w.ID, Balance: w.Balance, Replayed: decimal.Zero, Transactions: len(txs)}
	for i := range txs {
		if !txs[i].BalanceBefore.Equal(rep.Replayed) {
			rep.BrokenLinks++
		}
		rep.Replayed = rep.Replayed.Add(txs[i].Signed())
	}
	rep.Consistent = rep.Replayed.Equal(w.Balance) && rep.BrokenLinks == 0
	if !rep.Consistent {
		ledger.Alert("replay_mismatch", zap.Int64("wallet_id", w.ID), zap.String("balance", w.Balance.String()),
			zap.String("replayed", rep.Replayed.String()), zap.Int("broken_links", rep.BrokenLinks))
	}
	return rep, nil
}

// publish emits transaction events. Work nested in a caller's transaction is
// published by that caller once it commits.
func (s *Service) publish(ctx context.Context, txs ...domain.Transaction) {
	if pg.InTx(ctx) {
		return
	}
	evs := make([]events.Event, 0, len(txs))
	for _, t := range txs {
		evs = append(evs, events.Transaction(t))
	}
	s.publisher.Publish(ctx, evs...)
}

func entry(op Operation, kind domain.WalletKind, dir domain.Direction, defaultSource string) *domain.Transaction {
	source := op.Source
	if source == "" {
		source = defaultSource
	}
	return &domain.Transaction{
		WalletKind:      kind,
		Direction:       dir,
		Amount:          op.Amount,
		Source:          source,
		Action:          op.Action,
		ServiceID:       op.ServiceID,
		Description:     op.Reason,
		ReferenceID:     op.ReferenceID,
		ReferralUserID:  op.ReferralUserID,
		ReferralLevel:   op.ReferralLevel,
		PaymentAmount:   op.PaymentAmount,
		PaymentCurrency: op.PaymentCurrency,
		ExchangeRate:    op.ExchangeRate,
	}
}

// result picks the caller's transaction, the last entry, and the wallet's spendable balance.
func result(r *ledger.Result, kind domain.WalletKind, now time.Time) *Result {
	res := &Result{Balance: spendable(r.Wallets[kind], now)}
	if n := len(r.Transactions); n > 0 {
		res.Transaction = r.Transactions[n-1]
	}
	return res
}
