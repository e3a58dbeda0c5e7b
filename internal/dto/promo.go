package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

type PromoRequestDTO struct {
	Code   string `json:"code" validate:"required,promocode" example:"WELCOME100"`
	UserID int64  `json:"user_id" validate:"required,gt=0" example:"42"`
}

type PromoValidationDTO struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	RewardType  domain.RewardType `json:"reward_type" example:"currency"`
	RewardValue decimal.Decimal   `json:"reward_value" swaggertype:"string" example:"100"`
}

type SubscriptionDTO struct {
	ServiceID string    `json:"service_id"`
	Plan      string    `json:"plan"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DiscountDTO struct {
	Percent    decimal.Decimal     `json:"percent" swaggertype:"string"`
	MinDeposit decimal.NullDecimal `json:"min_deposit" swaggertype:"string"`
}

type PromoActivationDTO struct {
	ID           int64             `json:"id"`
	RewardType   domain.RewardType `json:"reward_type"`
	RewardValue  decimal.Decimal   `json:"reward_value" swaggertype:"string"`
	ActivatedAt  time.Time         `json:"activated_at"`
	Transaction  *TransactionDTO   `json:"transaction,omitempty"`
	Subscription *SubscriptionDTO  `json:"subscription,omitempty"`
	Discount     *DiscountDTO      `json:"discount,omitempty"`
}
