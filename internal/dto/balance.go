package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

type BalanceResponseDTO struct {
	UserID     int64             `json:"user_id" example:"42"`
	WalletKind domain.WalletKind `json:"wallet_kind" example:"main"`
	Balance    decimal.Decimal   `json:"balance" swaggertype:"string" example:"12.500000"`
}

type WalletDTO struct {
	Kind       domain.WalletKind   `json:"kind" example:"bonus"`
	Balance    decimal.Decimal     `json:"balance" swaggertype:"string" example:"10.000000"`
	Frozen     decimal.Decimal     `json:"frozen" swaggertype:"string" example:"0"`
	Spendable  decimal.Decimal     `json:"spendable" swaggertype:"string" example:"10.000000"`
	DailyLimit decimal.NullDecimal `json:"daily_limit" swaggertype:"string"`
	DailySpent decimal.Decimal     `json:"daily_spent" swaggertype:"string"`
	ExpiresAt  *time.Time          `json:"expires_at,omitempty"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func NewWalletDTO(w domain.Wallet) WalletDTO {
	return WalletDTO{
		Kind:       w.Kind,
		Balance:    w.Balance,
		Frozen:     w.Frozen,
		Spendable:  w.Spendable(),
		DailyLimit: w.DailyLimit,
		DailySpent: w.DailySpent,
		ExpiresAt:  w.ExpiresAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

type DeductRequestDTO struct {
	Amount      decimal.Decimal   `json:"amount" swaggertype:"string" example:"5.5"`
	Reason      string            `json:"reason" validate:"max=255" example:"premium subscription"`
	Action      string            `json:"action" validate:"max=64" example:"subscribe"`
	WalletKind  domain.WalletKind `json:"wallet_kind" validate:"omitempty,oneof=main bonus" example:"main"`
	ReferenceID *string           `json:"reference_id" validate:"omitempty,max=128"`
}

type CreditRequestDTO struct {
	Amount      decimal.Decimal   `json:"amount" swaggertype:"string" example:"5"`
	Source      string            `json:"source" validate:"omitempty,oneof=payment bonus referral admin service promocode" example:"service"`
	Reason      string            `json:"reason" validate:"max=255"`
	Action      string            `json:"action" validate:"max=64"`
	WalletKind  domain.WalletKind `json:"wallet_kind" validate:"omitempty,oneof=main bonus"`
	ExpiresAt   *time.Time        `json:"expires_at"`
	ReferenceID *string           `json:"reference_id" validate:"omitempty,max=128"`
}

type DepositRequestDTO struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"1000"`
	Currency  string          `json:"currency" validate:"required,currency" example:"RUB"`
	Reference *string         `json:"reference" validate:"omitempty,max=128" example:"invoice-8812"`
}

type TransferRequestDTO struct {
	From   domain.WalletKind `json:"from" validate:"required,oneof=main bonus" example:"bonus"`
	To     domain.WalletKind `json:"to" validate:"required,oneof=main bonus,nefield=From" example:"main"`
	Amount decimal.Decimal   `json:"amount" swaggertype:"string" example:"3"`
}

type FreezeRequestDTO struct {
	Amount     decimal.Decimal   `json:"amount" swaggertype:"string" example:"3"`
	WalletKind domain.WalletKind `json:"wallet_kind" validate:"omitempty,oneof=main bonus"`
}

// DailyLimitRequestDTO sets or, with a null limit, clears the daily debit cap.
type DailyLimitRequestDTO struct {
	Limit      decimal.NullDecimal `json:"limit" swaggertype:"string" example:"50"`
	WalletKind domain.WalletKind   `json:"wallet_kind" validate:"omitempty,oneof=main bonus"`
}

type OperationResponseDTO struct {
	Transaction TransactionDTO  `json:"transaction"`
	Balance     decimal.Decimal `json:"balance" swaggertype:"string"`
}

type TransactionDTO struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	WalletKind      domain.WalletKind   `json:"wallet_kind"`
	Direction       domain.Direction    `json:"direction"`
	Amount          decimal.Decimal     `json:"amount" swaggertype:"string"`
	BalanceBefore   decimal.Decimal     `json:"balance_before" swaggertype:"string"`
	BalanceAfter    decimal.Decimal     `json:"balance_after" swaggertype:"string"`
	Source          string              `json:"source"`
	Action          string              `json:"action"`
	ServiceID       *string             `json:"service_id,omitempty"`
	Description     string              `json:"description,omitempty"`
	ReferralUserID  *int64              `json:"referral_user_id,omitempty"`
	ReferralLevel   *int                `json:"referral_level,omitempty"`
	ReferenceID     *string             `json:"reference_id,omitempty"`
	PaymentAmount   decimal.NullDecimal `json:"payment_amount" swaggertype:"string"`
	PaymentCurrency *string             `json:"payment_currency,omitempty"`
	ExchangeRate    decimal.NullDecimal `json:"exchange_rate" swaggertype:"string"`
	Status          domain.TxStatus     `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
}

func NewTransactionDTO(t domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:              t.ID,
		UserID:          t.UserID,
		WalletKind:      t.WalletKind,
		Direction:       t.Direction,
		Amount:          t.Amount,
		BalanceBefore:   t.BalanceBefore,
		BalanceAfter:    t.BalanceAfter,
		Source:          t.Source,
		Action:          t.Action,
		ServiceID:       t.ServiceID,
		Description:     t.Description,
		ReferralUserID:  t.ReferralUserID,
		ReferralLevel:   t.ReferralLevel,
		ReferenceID:     t.ReferenceID,
		PaymentAmount:   t.PaymentAmount,
		PaymentCurrency: t.PaymentCurrency,
		ExchangeRate:    t.ExchangeRate,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}

func NewTransactionDTOs(txs []domain.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		out = append(out, NewTransactionDTO(t))
	}
	return out
}
