package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type RewardType string

const (
	RewardCurrency     RewardType = "currency"
	RewardSubscription RewardType = "subscription"
	RewardDiscount     RewardType = "discount"
)

// Reward is a promo payload, dispatched through RewardVisitor.
type Reward interface {
	Accept(v RewardVisitor) error
	Type() RewardType
}

type RewardVisitor interface {
	VisitCurrency(r CurrencyReward) error
	VisitSubscription(r SubscriptionReward) error
	VisitDiscount(r DiscountReward) error
}

type CurrencyReward struct {
	Amount decimal.Decimal
}

type SubscriptionReward struct {
	ServiceID string
	Plan      string
	Days      int
}

type DiscountReward struct {
	Percent    decimal.Decimal
	MinDeposit decimal.NullDecimal
}

func (r CurrencyReward) Accept(v RewardVisitor) error     { return v.VisitCurrency(r) }
func (r SubscriptionReward) Accept(v RewardVisitor) error { return v.VisitSubscription(r) }
func (r DiscountReward) Accept(v RewardVisitor) error     { return v.VisitDiscount(r) }

func (CurrencyReward) Type() RewardType     { return RewardCurrency }
func (SubscriptionReward) Type() RewardType { return RewardSubscription }
func (DiscountReward) Type() RewardType     { return RewardDiscount }

// Reward decodes the stored reward columns into their variant.
func (p *PromoCode) Reward() (Reward, error) {
	switch p.RewardType {
	case RewardCurrency:
		if err := ValidateAmount(p.RewardValue); err != nil {
			return nil, fmt.Errorf("promo %s: %w", p.Code, err)
		}
		return CurrencyReward{Amount: p.RewardValue}, nil
	case RewardSubscription:
		if !p.RewardValue.Equal(p.RewardValue.Truncate(0)) {
			return nil, fmt.Errorf("promo %s: subscription days must be whole", p.Code)
		}
		r := SubscriptionReward{Days: int(p.RewardValue.IntPart())}
		if p.SubscriptionSvc != nil {
			r.ServiceID = *p.SubscriptionSvc
		}
		if p.SubscriptionPlan != nil {
			r.Plan = *p.SubscriptionPlan
		}
		if r.Days <= 0 || r.ServiceID == "" {
			return nil, fmt.Errorf("promo %s: malformed subscription reward", p.Code)
		}
		return r, nil
	case RewardDiscount:
		if !p.RewardValue.IsPositive() || p.RewardValue.GreaterThan(hundred) {
			return nil, fmt.Errorf("promo %s: discount percent out of range", p.Code)
		}
		return DiscountReward{Percent: p.RewardValue, MinDeposit: p.MinDeposit}, nil
	}
	return nil, fmt.Errorf("promo %s: unknown reward type %q", p.Code, p.RewardType)
}
