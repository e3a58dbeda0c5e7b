package userservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/internal/settings"
)

//go:generate mockgen -source=userservice.go -destination=mock_userservice.go -package=userservice

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByExternalID(ctx context.Context, externalID int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type WalletRepo interface {
	CreateForUpdate(ctx context.Context, userID int64, kind domain.WalletKind) (*domain.Wallet, error)
}

type ReferralRepo interface {
	Parent(ctx context.Context, referredID int64) (*domain.Referral, error)
	Create(ctx context.Context, ref *domain.Referral) (bool, error)
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

const ActionWelcome = "welcome_bonus"

type Registration struct {
	User      domain.User         `json:"user"`
	Created   bool                `json:"created"`
	Referrals []domain.Referral   `json:"referrals,omitempty"`
	Welcome   *domain.Transaction `json:"welcome,omitempty"`
}

type Service struct {
	store     Store
	users     UserRepo
	wallets   WalletRepo
	referrals ReferralRepo
	balance   Crediter
	settings  Settings
	publisher events.Publisher
	now       func() time.Time
}

func New(store Store, users UserRepo, wallets WalletRepo, referrals ReferralRepo, balance Crediter,
	settings Settings, publisher events.Publisher) *Service {
	return &Service{
		store:     store,
		users:     users,
		wallets:   wallets,
		referrals: referrals,
		balance:   balance,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

// Register creates a user with an empty main wallet. An inviter puts the user
// under up to settings.Levels ancestors, and a configured welcome bonus is
// credited to the bonus wallet. Registering a known external id returns the
// existing user untouched.
func (s *Service) Register(ctx context.Context, externalID int64, username string, referrerID *int64) (*Registration, error) {
	snap := s.settings.Snapshot()

	var out *Registration
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		out = nil
		existing, err := s.users.FindByExternalID(ctx, externalID)
		if err != nil {
			return err
		}
		if existing != nil {
			out = &Registration{User: *existing}
			return nil
		}

		var inviter *domain.User
		if referrerID != nil {
			if inviter, err = s.users.FindByID(ctx, *referrerID); err != nil {
				return err
			}
			if inviter == nil {
				return fmt.Errorf("referrer %d: %w", *referrerID, domain.ErrNotFound)
			}
		}

		user, err := s.users.Create(ctx, &domain.User{ExternalID: externalID, Username: username})
		if err != nil {
			return err
		}
		if _, err := s.wallets.CreateForUpdate(ctx, user.ID, domain.WalletMain); err != nil {
			return err
		}
		out = &Registration{User: *user, Created: true}

		if inviter != nil {
			if out.Referrals, err = s.attach(ctx, user.ID, inviter.ID); err != nil {
				return err
			}
		}

		if snap.WelcomeBonus.IsPositive() {
			expires := s.now().Add(snap.WelcomeTTL)
			res, err := s.balance.Credit(ctx, balanceservice.Operation{
				UserID:     user.ID,
				Amount:     snap.WelcomeBonus,
				WalletKind: domain.WalletBonus,
				Source:     domain.SourceBonus,
				Action:     ActionWelcome,
				Reason:     "welcome bonus",
				ExpiresAt:  &expires,
			})
			if err != nil {
				return err
			}
			out.Welcome = &res.Transaction
		}
		return nil
	})
	metrics.Observe("register", err)
	if err != nil {
		zap.L().Error("can't register user", zap.Int64("external_id", externalID), zap.Error(err))
		return nil, err
	}
	if !out.Created {
		zap.L().Info("user already registered", zap.Int64("user_id", out.User.ID))
		return out, nil
	}

	if out.Welcome != nil {
		s.publisher.Publish(ctx, events.Transaction(*out.Welcome))
	}
	zap.L().Info("user successfully registered", zap.Int64("user_id", out.User.ID), zap.Int("referrals", len(out.Referrals)))
	return out, nil
}

// attach writes one edge per ancestor level: the inviter at level 1 and the
// inviter's own level-1 chain above it.
func (s *Service) attach(ctx context.Context, userID, inviterID int64) ([]domain.Referral, error) {
	var edges []domain.Referral
	visited := map[int64]bool{userID: true}
	ancestor := inviterID
	for level := 1; level <= settings.Levels; level++ {
		if visited[ancestor] {
			break
		}
		visited[ancestor] = true
		ref := domain.Referral{ReferrerID: ancestor, ReferredID: userID, Level: level, IsActive: true}
		created, err := s.referrals.Create(ctx, &ref)
		if err != nil {
			return nil, err
		}
		if created {
			edges = append(edges, ref)
		}
		if level == settings.Levels {
			break
		}

		parent, err := s.referrals.Parent(ctx, ancestor)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		ancestor = parent.ReferrerID
	}
	return edges, nil
}
