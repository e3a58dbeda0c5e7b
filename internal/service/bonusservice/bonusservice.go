package bonusservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/internal/settings"
)

//go:generate mockgen -source=bonusservice.go -destination=mock_bonusservice.go -package=bonusservice

type BonusRepo interface {
	GetByUser(ctx context.Context, userID int64) (*domain.DailyBonus, error)
	LockOrCreate(ctx context.Context, userID int64) (*domain.DailyBonus, error)
	Update(ctx context.Context, b *domain.DailyBonus) error
	AddClaim(ctx context.Context, c *domain.DailyBonusClaim) (*domain.DailyBonusClaim, error)
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

const ActionDailyBonus = "daily_bonus"

var ErrDisabled = errors.New("daily bonus is disabled")

type Status struct {
	domain.StreakStatus
	Enabled     bool            `json:"enabled"`
	Reward      decimal.Decimal `json:"reward"`
	MaxStreak   int             `json:"max_streak"`
	TotalClaims int             `json:"total_claims"`
	NextClaimAt time.Time       `json:"next_claim_at"`
}

type Claim struct {
	Claim       domain.DailyBonusClaim `json:"claim"`
	Transaction domain.Transaction     `json:"transaction"`
	Balance     decimal.Decimal        `json:"balance"`
}

type Service struct {
	store     Store
	bonuses   BonusRepo
	balance   Crediter
	settings  Settings
	publisher events.Publisher
	now       func() time.Time
}

func New(store Store, bonuses BonusRepo, balance Crediter, settings Settings, publisher events.Publisher) *Service {
	return &Service{
		store:     store,
		bonuses:   bonuses,
		balance:   balance,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}
}

// Status reports whether the user can claim today and what the claim would pay.
func (s *Service) Status(ctx context.Context, userID int64) (*Status, error) {
	snap := s.settings.Snapshot()
	now := s.now()
	rec, err := s.bonuses.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := domain.EvaluateStreak(rec, snap.BonusDate(now))
	out := &Status{
		StreakStatus: st,
		Enabled:      snap.BonusEnabled,
		Reward:       snap.Reward(st.DayNumber),
		NextClaimAt:  domain.NextPeriodStart(now, snap.BonusLocation, snap.BonusResetHour),
	}
	if rec != nil {
		out.MaxStreak = rec.MaxStreak
		out.TotalClaims = rec.TotalClaims
	}
	if st.Available {
		out.NextClaimAt = now
	}
	return out, nil
}

// Claim pays today's reward. The bonus record stays locked from the streak
// evaluation through the credit, so a second claim on the same day sees the
// first one's date and is rejected.
func (s *Service) Claim(ctx context.Context, userID int64) (*Claim, error) {
	snap := s.settings.Snapshot()
	if !snap.BonusEnabled {
		return nil, ErrDisabled
	}

	var out *Claim
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		out = nil
		rec, err := s.bonuses.LockOrCreate(ctx, userID)
		if err != nil {
			return err
		}
		today := snap.BonusDate(s.now())
		st := domain.EvaluateStreak(rec, today)
		if !st.Available {
			return fmt.Errorf("daily bonus of %s: %w", today.Format(time.DateOnly), domain.ErrAlreadyUsed)
		}

		reward := snap.Reward(st.DayNumber)
		res, err := s.balance.Credit(ctx, balanceservice.Operation{
			UserID:     userID,
			Amount:     reward,
			WalletKind: domain.WalletMain,
			Source:     domain.SourceBonus,
			Action:     ActionDailyBonus,
			Reason:     fmt.Sprintf("daily bonus, day %d", st.DayNumber),
		})
		if err != nil {
			return err
		}

		rec.CurrentStreak = st.NextStreak()
		if rec.CurrentStreak > rec.MaxStreak {
			rec.MaxStreak = rec.CurrentStreak
		}
		rec.LastClaimDate = &today
		rec.TotalClaims++
		rec.TotalRewarded = rec.TotalRewarded.Add(reward)
		if err := s.bonuses.Update(ctx, rec); err != nil {
			return err
		}

		claim, err := s.bonuses.AddClaim(ctx, &domain.DailyBonusClaim{
			UserID:        userID,
			DailyBonusID:  rec.ID,
			DayNumber:     st.DayNumber,
			Reward:        reward,
			Streak:        rec.CurrentStreak,
			ClaimDate:     today,
			TransactionID: res.Transaction.ID,
		})
		if err != nil {
			return err
		}
		out = &Claim{Claim: *claim, Transaction: res.Transaction, Balance: res.Balance}
		return nil
	})
	metrics.Observe("daily_bonus_claim", err)
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyUsed) {
			zap.L().Error("daily bonus claim failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	s.publisher.Publish(ctx, events.Claim(out.Claim), events.Transaction(out.Transaction))
	zap.L().Info("daily bonus claimed", zap.Int64("user_id", userID), zap.Int("day", out.Claim.DayNumber),
		zap.Int("streak", out.Claim.Streak))
	return out, nil
}
