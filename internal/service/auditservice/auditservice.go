package auditservice

import (
	"context"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

//go:generate mockgen -source=auditservice.go -destination=mock_auditservice.go -package=auditservice

type TxRepo interface {
	After(ctx context.Context, afterID int64, limit int) ([]domain.Transaction, error)
}

type CommissionRepo interface {
	After(ctx context.Context, afterID int64, limit int) ([]domain.Commission, error)
}

type PromoRepo interface {
	ActivationsAfter(ctx context.Context, afterID int64, limit int) ([]domain.PromoActivation, error)
}

type BonusRepo interface {
	ClaimsAfter(ctx context.Context, afterID int64, limit int) ([]domain.DailyBonusClaim, error)
}

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Page is a keyset cursor over one audit feed. Rows come back in id order.
type Page struct {
	AfterID int64
	Limit   int
}

func (p Page) limit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	}
	return p.Limit
}

func (p Page) after() int64 {
	if p.AfterID < 0 {
		return 0
	}
	return p.AfterID
}

type Service struct {
	txs         TxRepo
	commissions CommissionRepo
	promos      PromoRepo
	bonuses     BonusRepo
}

func New(txs TxRepo, commissions CommissionRepo, promos PromoRepo, bonuses BonusRepo) *Service {
	return &Service{txs: txs, commissions: commissions, promos: promos, bonuses: bonuses}
}

func (s *Service) Transactions(ctx context.Context, p Page) ([]domain.Transaction, error) {
	return s.txs.After(ctx, p.after(), p.limit())
}

func (s *Service) Commissions(ctx context.Context, p Page) ([]domain.Commission, error) {
	return s.commissions.After(ctx, p.after(), p.limit())
}

func (s *Service) Activations(ctx context.Context, p Page) ([]domain.PromoActivation, error) {
	return s.promos.ActivationsAfter(ctx, p.after(), p.limit())
}

func (s *Service) Claims(ctx context.Context, p Page) ([]domain.DailyBonusClaim, error) {
	return s.bonuses.ClaimsAfter(ctx, p.after(), p.limit())
}
