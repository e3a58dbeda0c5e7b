package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

// Feed is one page of an audit feed. NextAfterID continues it.
type Feed[T any] struct {
	Items       []T   `json:"items"`
	NextAfterID int64 `json:"next_after_id"`
}

type CommissionDTO struct {
	ID                      int64           `json:"id"`
	ReferrerID              int64           `json:"referrer_id"`
	ReferredID              int64           `json:"referred_id"`
	Level                   int             `json:"level"`
	SourceAmount            decimal.Decimal `json:"source_amount" swaggertype:"string"`
	CommissionAmount        decimal.Decimal `json:"commission_amount" swaggertype:"string"`
	CommissionPercent       decimal.Decimal `json:"commission_percent" swaggertype:"string"`
	IsPartner               bool            `json:"is_partner"`
	ServiceID               *string         `json:"service_id,omitempty"`
	SourceTransactionID     int64           `json:"source_transaction_id"`
	CommissionTransactionID int64           `json:"commission_transaction_id"`
	CreatedAt               time.Time       `json:"created_at"`
}

func NewCommissionDTO(c domain.Commission) CommissionDTO {
	return CommissionDTO{
		ID:                      c.ID,
		ReferrerID:              c.ReferrerID,
		ReferredID:              c.ReferredID,
		Level:                   c.Level,
		SourceAmount:            c.SourceAmount,
		CommissionAmount:        c.CommissionAmount,
		CommissionPercent:       c.CommissionPercent,
		IsPartner:               c.IsPartner,
		ServiceID:               c.ServiceID,
		SourceTransactionID:     c.SourceTransactionID,
		CommissionTransactionID: c.CommissionTransactionID,
		CreatedAt:               c.CreatedAt,
	}
}

type ActivationDTO struct {
	ID             int64             `json:"id"`
	PromoCodeID    int64             `json:"promocode_id"`
	UserID         int64             `json:"user_id"`
	RewardType     domain.RewardType `json:"reward_type"`
	RewardValue    decimal.Decimal   `json:"reward_value" swaggertype:"string"`
	TransactionID  *int64            `json:"transaction_id,omitempty"`
	SubscriptionID *int64            `json:"subscription_id,omitempty"`
	DiscountID     *int64            `json:"discount_id,omitempty"`
	ActivatedAt    time.Time         `json:"activated_at"`
}

func NewActivationDTO(a domain.PromoActivation) ActivationDTO {
	return ActivationDTO{
		ID:             a.ID,
		PromoCodeID:    a.PromoCodeID,
		UserID:         a.UserID,
		RewardType:     a.RewardType,
		RewardValue:    a.RewardValue,
		TransactionID:  a.TransactionID,
		SubscriptionID: a.SubscriptionID,
		DiscountID:     a.DiscountID,
		ActivatedAt:    a.ActivatedAt,
	}
}

type ClaimDTO struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	DayNumber     int             `json:"day_number"`
	Reward        decimal.Decimal `json:"reward" swaggertype:"string"`
	Streak        int             `json:"streak"`
	ClaimDate     string          `json:"claim_date"`
	TransactionID int64           `json:"transaction_id"`
	ClaimedAt     time.Time       `json:"claimed_at"`
}

func NewClaimDTO(c domain.DailyBonusClaim) ClaimDTO {
	return ClaimDTO{
		ID:            c.ID,
		UserID:        c.UserID,
		DayNumber:     c.DayNumber,
		Reward:        c.Reward,
		Streak:        c.Streak,
		ClaimDate:     c.ClaimDate.Format(time.DateOnly),
		TransactionID: c.TransactionID,
		ClaimedAt:     c.ClaimedAt,
	}
}
