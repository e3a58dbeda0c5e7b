package commissionservice

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/internal/settings"
)

//go:generate mockgen -source=commissionservice.go -destination=mock_commissionservice.go -package=commissionservice

type ReferralRepo interface {
	Parent(ctx context.Context, referredID int64) (*domain.Referral, error)
	Find(ctx context.Context, referrerID int64, referredID int64) (*domain.Referral, error)
	AddTotals(ctx context.Context, id int64, payment decimal.Decimal, commission decimal.Decimal) error
	ApprovedPartner(ctx context.Context, userID int64) (*domain.Partner, error)
}

type CommissionRepo interface {
	Create(ctx context.Context, c *domain.Commission) (*domain.Commission, error)
	ExistsForSource(ctx context.Context, sourceTxID int64) (bool, error)
}

type Crediter interface {
	Credit(ctx context.Context, op balanceservice.Operation) (*balanceservice.Result, error)
}

type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Settings interface {
	Snapshot() *settings.Snapshot
}

type ancestor struct {
	userID int64
	level  int
}

type Service struct {
	store       Store
	referrals   ReferralRepo
	commissions CommissionRepo
	balance     Crediter
	settings    Settings
	publisher   events.Publisher
}

func New(store Store, referrals ReferralRepo, commissions CommissionRepo, balance Crediter, settings Settings, publisher events.Publisher) *Service {
	return &Service{
		store:       store,
		referrals:   referrals,
		commissions: commissions,
		balance:     balance,
		settings:    settings,
		publisher:   publisher,
	}
}

// Process pays referral commission for a committed debit. A debit that
// already produced commission rows is skipped, so repeated calls are safe.
func (s *Service) Process(ctx context.Context, debit domain.Transaction) error {
	if debit.Direction != domain.Debit || debit.ID == 0 {
		return nil
	}
	snap := s.settings.Snapshot()
	if !snap.CommissionEnabled {
		return nil
	}

	var (
		paid    []domain.Commission
		credits []domain.Transaction
	)
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		paid, credits = nil, nil
		done, err := s.commissions.ExistsForSource(ctx, debit.ID)
		if err != nil {
			return err
		}
		if done {
			zap.L().Info("commission already processed", zap.Int64("tx_id", debit.ID))
			return nil
		}

		chain, err := s.chain(ctx, debit.UserID)
		if err != nil {
			return err
		}
		for _, a := range chain {
			c, tx, err := s.pay(ctx, snap, debit, a)
			if err != nil {
				return fmt.Errorf("level %d referrer %d: %w", a.level, a.userID, err)
			}
			if c != nil {
				paid = append(paid, *c)
				credits = append(credits, *tx)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(paid) == 0 {
		return nil
	}

	evs := make([]events.Event, 0, 2*len(paid))
	for i := range paid {
		metrics.CommissionPaid.WithLabelValues(strconv.Itoa(paid[i].Level)).Add(paid[i].CommissionAmount.InexactFloat64())
		evs = append(evs, events.Commission(paid[i]), events.Transaction(credits[i]))
	}
	s.publisher.Publish(ctx, evs...)
	return nil
}

// chain walks up to settings.Levels ancestors over level-1 edges. The result
// is ordered by user id so concurrent cascades lock wallets in one order.
func (s *Service) chain(ctx context.Context, userID int64) ([]ancestor, error) {
	visited := map[int64]bool{userID: true}
	var out []ancestor
	current := userID
	for level := 1; level <= settings.Levels; level++ {
		edge, err := s.referrals.Parent(ctx, current)
		if err != nil {
			return nil, err
		}
		if edge == nil || visited[edge.ReferrerID] {
			break
		}
		visited[edge.ReferrerID] = true
		out = append(out, ancestor{userID: edge.ReferrerID, level: level})
		current = edge.ReferrerID
	}
	sort.Slice(out, func(i, j int) bool { return out[i].userID < out[j].userID })
	return out, nil
}

func (s *Service) pay(ctx context.Context, snap *settings.Snapshot, debit domain.Transaction, a ancestor) (*domain.Commission, *domain.Transaction, error) {
	cfg := snap.Levels[a.level-1]
	if !cfg.Enabled {
		return nil, nil, nil
	}
	percent, isPartner := cfg.Percent, false
	partner, err := s.referrals.ApprovedPartner(ctx, a.userID)
	if err != nil {
		return nil, nil, err
	}
	if partner != nil && partner.Percents[a.level-1].Valid {
		percent, isPartner = partner.Percents[a.level-1].Decimal, true
	}

	amount := domain.Percent(debit.Amount, percent)
	if amount.IsZero() {
		return nil, nil, nil
	}

	level := a.level
	reference := strconv.FormatInt(debit.ID, 10)
	res, err := s.balance.Credit(ctx, balanceservice.Operation{
		UserID:         a.userID,
		Amount:         amount,
		WalletKind:     domain.WalletMain,
		Source:         domain.SourceReferral,
		Action:         debit.Action,
		Reason:         fmt.Sprintf("level %d referral commission", level),
		ServiceID:      debit.ServiceID,
		ReferenceID:    &reference,
		ReferralUserID: &debit.UserID,
		ReferralLevel:  &level,
	})
	if err != nil {
		return nil, nil, err
	}

	edge, err := s.referrals.Find(ctx, a.userID, debit.UserID)
	if err != nil {
		return nil, nil, err
	}
	c := &domain.Commission{
		ReferrerID:              a.userID,
		ReferredID:              debit.UserID,
		SourceAmount:            debit.Amount,
		CommissionAmount:        amount,
		CommissionPercent:       percent,
		Level:                   level,
		IsPartner:               isPartner,
		ServiceID:               debit.ServiceID,
		Action:                  debit.Action,
		SourceTransactionID:     debit.ID,
		CommissionTransactionID: res.Transaction.ID,
	}
	if edge != nil {
		c.ReferralID = &edge.ID
	}
	saved, err := s.commissions.Create(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	if edge != nil {
		if err := s.referrals.AddTotals(ctx, edge.ID, debit.Amount, amount); err != nil {
			return nil, nil, err
		}
	}
	return saved, &res.Transaction, nil
}
