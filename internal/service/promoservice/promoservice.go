package promoservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/metrics"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/internal/settings"
)

//go:generate mockgen -source=promoservice.go -destination=mock_promoservice.go -package=promoservice

type PromoRepo interface {
	FindByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	FindByCodeForUpdate(ctx context.Context, code string) (*domain.PromoCode, error)
	TryIncrement(ctx context.Context, id int64) (bool, error)
	CountUserActivations(ctx context.Context, promoID int64, userID int64) (int, error)
	CreateActivation(ctx context.Context, a *domain.PromoActivation) (*domain.PromoActivation, error)
	ExtendSubscription(ctx context.Context, userID int64, serviceID string, plan string, days int, now time.Time) (*domain.Subscription, error)
	CreateDiscount(ctx context.Context, d *domain.Discount) (*domain.Discount, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

type DepositCounter interface {
	CountDeposits(ctx context.Context, userID int64) (int, error)
}

type ReferralRepo interface {
	Parent(ctx context.Context, referredID int64) (*domain.Referral, error)
	Create(ctx context.Context, ref *domain.Referral) (bool, error)
	PartnerByID(ctx context.Context, id int64) (*domain.Partner, error)
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

const ActionPromocode = "promocode"

// Validation is the outcome of a successful read-only check.
type Validation struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	RewardType  domain.RewardType `json:"reward_type"`
	RewardValue decimal.Decimal   `json:"reward_value"`
}

// Activation is what a redeemed code granted. Exactly one of Transaction,
// Subscription and Discount is set, matching the reward type.
type Activation struct {
	Activation   domain.PromoActivation `json:"activation"`
	Transaction  *domain.Transaction    `json:"transaction,omitempty"`
	Subscription *domain.Subscription   `json:"subscription,omitempty"`
	Discount     *domain.Discount       `json:"discount,omitempty"`
}

type Service struct {
	store     Store
	promos    PromoRepo
	users     UserRepo
	deposits  DepositCounter
	referrals ReferralRepo
	balance   Crediter
	settings  Settings
	publisher events.Publisher
	now       func() time.Time
}

func New(store Store, promos PromoRepo, users UserRepo, deposits DepositCounter, referrals ReferralRepo,
	balance Crediter, settings Settings, publisher events.Publisher) *Service {
	return &Service{
		store:     store,
		promos:    promos,
		users:     users,
		deposits:  deposits,
		referrals: referrals,
		balance:   balance,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate runs every redemption guard without reserving capacity.
func (s *Service) Validate(ctx context.Context, code string, userID int64) (*Validation, error) {
	code = normalize(code)
	if code == "" {
		return nil, fmt.Errorf("promo code: %w", domain.ErrNotFound)
	}
	p, err := s.promos.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, s.settings.Snapshot(), p, userID); err != nil {
		return nil, err
	}
	return &Validation{Code: p.Code, Name: p.Name, RewardType: p.RewardType, RewardValue: p.RewardValue}, nil
}

// check applies the guards in their fixed order. The first failing guard wins.
func (s *Service) check(ctx context.Context, snap *settings.Snapshot, p *domain.PromoCode, userID int64) error {
	if p == nil || !p.IsActive {
		return fmt.Errorf("promo code: %w", domain.ErrNotFound)
	}
	now := s.now()
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return fmt.Errorf("promo code %s: %w", p.Code, domain.ErrNotStarted)
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return fmt.Errorf("promo code %s: %w", p.Code, domain.ErrExpired)
	}
	if p.MaxActivations != nil && p.CurrentActivations >= *p.MaxActivations {
		return fmt.Errorf("promo code %s: %w", p.Code, domain.ErrLimitReached)
	}

	used, err := s.promos.CountUserActivations(ctx, p.ID, userID)
	if err != nil {
		return err
	}
	perUser := p.MaxPerUser
	if perUser <= 0 {
		perUser = 1
	}
	if used >= perUser {
		return fmt.Errorf("promo code %s: %w", p.Code, domain.ErrAlreadyUsed)
	}

	if p.BoundUserID != nil && *p.BoundUserID != userID {
		return fmt.Errorf("promo code %s is bound to another user: %w", p.Code, domain.ErrNotEligible)
	}
	if p.OnlyNewUsers {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}
		if now.Sub(user.CreatedAt) > snap.NewUserWindow {
			return fmt.Errorf("promo code %s is for new users: %w", p.Code, domain.ErrNotEligible)
		}
	}
	if p.OnlyFirstDeposit {
		n, err := s.deposits.CountDeposits(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("promo code %s is for the first deposit: %w", p.Code, domain.ErrNotEligible)
		}
	}
	return nil
}

// Activate redeems code for userID. The guards are re-run under the code's
// row lock and the counter moves by compare-and-increment, so concurrent
// redemptions can never exceed max_activations.
func (s *Service) Activate(ctx context.Context, code string, userID int64) (*Activation, error) {
	code = normalize(code)
	if code == "" {
		return nil, fmt.Errorf("promo code: %w", domain.ErrNotFound)
	}
	snap := s.settings.Snapshot()

	var out *Activation
	err := s.store.InTx(ctx, func(ctx context.Context) error {
		out = nil
		p, err := s.promos.FindByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := s.check(ctx, snap, p, userID); err != nil {
			return err
		}
		reward, err := p.Reward()
		if err != nil {
			zap.L().Error("promo code has a malformed reward", zap.String("code", p.Code), zap.Error(err))
			return err
		}

		ok, err := s.promos.TryIncrement(ctx, p.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("promo code %s: %w", p.Code, domain.ErrLimitReached)
		}

		g := &grant{ctx: ctx, s: s, promo: p, userID: userID, now: s.now()}
		if err := reward.Accept(g); err != nil {
			return err
		}
		g.out.Activation.PromoCodeID = p.ID
		g.out.Activation.UserID = userID
		g.out.Activation.RewardType = reward.Type()
		g.out.Activation.RewardValue = p.RewardValue
		saved, err := s.promos.CreateActivation(ctx, &g.out.Activation)
		if err != nil {
			return err
		}
		g.out.Activation = *saved

		if err := s.bindPartner(ctx, p, userID); err != nil {
			return err
		}
		out = &g.out
		return nil
	})
	metrics.Observe("promo_activate", err)
	if err != nil {
		if !isRejection(err) {
			zap.L().Error("promo activation failed", zap.String("code", code), zap.Int64("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	evs := []events.Event{events.Activation(out.Activation)}
	if out.Transaction != nil {
		evs = append(evs, events.Transaction(*out.Transaction))
	}
	s.publisher.Publish(ctx, evs...)
	zap.L().Info("promo code activated", zap.String("code", code), zap.Int64("user_id", userID))
	return out, nil
}

// bindPartner attaches a user without a referrer under the code's partner.
func (s *Service) bindPartner(ctx context.Context, p *domain.PromoCode, userID int64) error {
	if p.PartnerID == nil {
		return nil
	}
	partner, err := s.referrals.PartnerByID(ctx, *p.PartnerID)
	if err != nil {
		return err
	}
	if partner == nil || partner.Status != domain.PartnerApproved || partner.UserID == userID {
		return nil
	}
	parent, err := s.referrals.Parent(ctx, userID)
	if err != nil {
		return err
	}
	if parent != nil {
		return nil
	}
	_, err = s.referrals.Create(ctx, &domain.Referral{ReferrerID: partner.UserID, ReferredID: userID, Level: 1, IsActive: true})
	return err
}

func isRejection(err error) bool {
	for _, target := range []error{domain.ErrNotFound, domain.ErrNotStarted, domain.ErrExpired,
		domain.ErrLimitReached, domain.ErrAlreadyUsed, domain.ErrNotEligible} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// grant hands out one reward variant inside the activation transaction.
type grant struct {
	ctx    context.Context
	s      *Service
	promo  *domain.PromoCode
	userID int64
	now    time.Time
	out    Activation
}

func (g *grant) VisitCurrency(r domain.CurrencyReward) error {
	code := g.promo.Code
	res, err := g.s.balance.Credit(g.ctx, balanceservice.Operation{
		UserID:      g.userID,
		Amount:      r.Amount,
		WalletKind:  domain.WalletMain,
		Source:      domain.SourcePromocode,
		Action:      ActionPromocode,
		Reason:      "promo code " + code,
		ReferenceID: &code,
	})
	if err != nil {
		return err
	}
	g.out.Transaction = &res.Transaction
	g.out.Activation.TransactionID = &res.Transaction.ID
	return nil
}

func (g *grant) VisitSubscription(r domain.SubscriptionReward) error {
	sub, err := g.s.promos.ExtendSubscription(g.ctx, g.userID, r.ServiceID, r.Plan, r.Days, g.now)
	if err != nil {
		return err
	}
	g.out.Subscription = sub
	g.out.Activation.SubscriptionID = &sub.ID
	return nil
}

func (g *grant) VisitDiscount(r domain.DiscountReward) error {
	d, err := g.s.promos.CreateDiscount(g.ctx, &domain.Discount{
		UserID:      g.userID,
		PromoCodeID: g.promo.ID,
		Percent:     r.Percent,
		MinDeposit:  r.MinDeposit,
	})
	if err != nil {
		return err
	}
	g.out.Discount = d
	g.out.Activation.DiscountID = &d.ID
	return nil
}
