package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WalletKind string

const (
	WalletMain  WalletKind = "main"
	WalletBonus WalletKind = "bonus"
)

func (k WalletKind) Valid() bool {
	return k == WalletMain || k == WalletBonus
}

type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxCompleted TxStatus = "completed"
	TxFailed    TxStatus = "failed"
	TxCancelled TxStatus = "cancelled"
)

const (
	SourcePayment   = "payment"
	SourceBonus     = "bonus"
	SourceReferral  = "referral"
	SourceAdmin     = "admin"
	SourceService   = "service"
	SourcePromocode = "promocode"
)

type User struct {
	ID         int64     `db:"id"`
	ExternalID int64     `db:"external_id"`
	Username   string    `db:"username"`
	CreatedAt  time.Time `db:"created_at"`
}

type Wallet struct {
	ID           int64               `db:"id"`
	UserID       int64               `db:"user_id"`
	Kind         WalletKind          `db:"kind"`
	Balance      decimal.Decimal     `db:"balance"`
	Frozen       decimal.Decimal     `db:"frozen"`
	DailyLimit   decimal.NullDecimal `db:"daily_limit"`
	DailySpent   decimal.Decimal     `db:"daily_spent"`
	DailyResetAt *time.Time          `db:"daily_reset_at"`
	ExpiresAt    *time.Time          `db:"expires_at"`
	Version      int64               `db:"version"`
	UpdatedAt    time.Time           `db:"updated_at"`
}

// Spendable is balance minus frozen, never negative.
func (w *Wallet) Spendable() decimal.Decimal {
	s := w.Balance.Sub(w.Frozen)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// Expired reports whether a bonus wallet's funds are past their expiry at now.
func (w *Wallet) Expired(now time.Time) bool {
	return w.Kind == WalletBonus && w.ExpiresAt != nil && !now.Before(*w.ExpiresAt)
}

// Check enforces balance >= frozen >= 0.
func (w *Wallet) Check() error {
	if w.Frozen.IsNegative() || w.Balance.LessThan(w.Frozen) {
		return NewInsufficientBalance(w.Spendable())
	}
	return nil
}

type Transaction struct {
	ID              int64               `db:"id"`
	UserID          int64               `db:"user_id"`
	WalletID        int64               `db:"wallet_id"`
	WalletKind      WalletKind          `db:"wallet_kind"`
	Direction       Direction           `db:"direction"`
	Amount          decimal.Decimal     `db:"amount"`
	BalanceBefore   decimal.Decimal     `db:"balance_before"`
	BalanceAfter    decimal.Decimal     `db:"balance_after"`
	Source          string              `db:"source"`
	Action          string              `db:"action"`
	ServiceID       *string             `db:"service_id"`
	Description     string              `db:"description"`
	ReferralUserID  *int64              `db:"referral_user_id"`
	ReferralLevel   *int                `db:"referral_level"`
	ReferenceID     *string             `db:"reference_id"`
	PaymentAmount   decimal.NullDecimal `db:"payment_amount"`
	PaymentCurrency *string             `db:"payment_currency"`
	ExchangeRate    decimal.NullDecimal `db:"exchange_rate"`
	Status          TxStatus            `db:"status"`
	CreatedAt       time.Time           `db:"created_at"`
	CompletedAt     *time.Time          `db:"completed_at"`
}

// Signed returns the amount with the sign of its effect on the wallet balance.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Direction == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

type TransactionFilter struct {
	UserID     int64
	WalletKind WalletKind
	Direction  Direction
	Source     string
	Limit      int
	Offset     int
}

type Referral struct {
	ID              int64           `db:"id"`
	ReferrerID      int64           `db:"referrer_id"`
	ReferredID      int64           `db:"referred_id"`
	Level           int             `db:"level"`
	TotalPayments   decimal.Decimal `db:"total_payments"`
	TotalCommission decimal.Decimal `db:"total_commission"`
	IsActive        bool            `db:"is_active"`
	CreatedAt       time.Time       `db:"created_at"`
}

type PartnerStatus string

const (
	PartnerPending  PartnerStatus = "pending"
	PartnerApproved PartnerStatus = "approved"
	PartnerBlocked  PartnerStatus = "blocked"
)

// Partner overrides the global commission percent per level. An unset
// percent inherits the global one; an explicit zero pays nothing.
type Partner struct {
	ID       int64                  `db:"id"`
	UserID   int64                  `db:"user_id"`
	Percents [3]decimal.NullDecimal `db:"-"`
	Status   PartnerStatus          `db:"status"`
}

type Commission struct {
	ID                      int64           `db:"id"`
	ReferrerID              int64           `db:"referrer_id"`
	ReferredID              int64           `db:"referred_id"`
	ReferralID              *int64          `db:"referral_id"`
	SourceAmount            decimal.Decimal `db:"source_amount"`
	CommissionAmount        decimal.Decimal `db:"commission_amount"`
	CommissionPercent       decimal.Decimal `db:"commission_percent"`
	Level                   int             `db:"level"`
	IsPartner               bool            `db:"is_partner"`
	ServiceID               *string         `db:"service_id"`
	Action                  string          `db:"action"`
	SourceTransactionID     int64           `db:"source_transaction_id"`
	CommissionTransactionID int64           `db:"commission_transaction_id"`
	CreatedAt               time.Time       `db:"created_at"`
}

type PromoCode struct {
	ID                 int64               `db:"id"`
	Code               string              `db:"code"`
	Name               string              `db:"name"`
	RewardType         RewardType          `db:"reward_type"`
	RewardValue        decimal.Decimal     `db:"reward_value"`
	SubscriptionSvc    *string             `db:"subscription_service_id"`
	SubscriptionPlan   *string             `db:"subscription_plan"`
	MaxActivations     *int                `db:"max_activations"`
	MaxPerUser         int                 `db:"max_per_user"`
	CurrentActivations int                 `db:"current_activations"`
	MinDeposit         decimal.NullDecimal `db:"min_deposit"`
	OnlyNewUsers       bool                `db:"only_new_users"`
	OnlyFirstDeposit   bool                `db:"only_first_deposit"`
	BoundUserID        *int64              `db:"bound_user_id"`
	PartnerID          *int64              `db:"partner_id"`
	StartsAt           *time.Time          `db:"starts_at"`
	ExpiresAt          *time.Time          `db:"expires_at"`
	IsActive           bool                `db:"is_active"`
}

type PromoActivation struct {
	ID             int64           `db:"id"`
	PromoCodeID    int64           `db:"promocode_id"`
	UserID         int64           `db:"user_id"`
	RewardType     RewardType      `db:"reward_type"`
	RewardValue    decimal.Decimal `db:"reward_value"`
	TransactionID  *int64          `db:"transaction_id"`
	SubscriptionID *int64          `db:"subscription_id"`
	DiscountID     *int64          `db:"discount_id"`
	ActivatedAt    time.Time       `db:"activated_at"`
}

type Subscription struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ServiceID string    `db:"service_id"`
	Plan      string    `db:"plan"`
	StartsAt  time.Time `db:"starts_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

type Discount struct {
	ID          int64               `db:"id"`
	UserID      int64               `db:"user_id"`
	PromoCodeID int64               `db:"promocode_id"`
	Percent     decimal.Decimal     `db:"percent"`
	MinDeposit  decimal.NullDecimal `db:"min_deposit"`
	CreatedAt   time.Time           `db:"created_at"`
}

type DailyBonus struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	CurrentStreak int             `db:"current_streak"`
	MaxStreak     int             `db:"max_streak"`
	LastClaimDate *time.Time      `db:"last_claim_date"`
	TotalClaims   int             `db:"total_claims"`
	TotalRewarded decimal.Decimal `db:"total_rewarded"`
}

type DailyBonusClaim struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	DailyBonusID  int64           `db:"daily_bonus_id"`
	DayNumber     int             `db:"day_number"`
	Reward        decimal.Decimal `db:"reward"`
	Streak        int             `db:"streak"`
	ClaimDate     time.Time       `db:"claim_date"`
	TransactionID int64           `db:"transaction_id"`
	ClaimedAt     time.Time       `db:"claimed_at"`
}

type ExchangeRate struct {
	Base      string          `db:"base"`
	Quote     string          `db:"quote"`
	Rate      decimal.Decimal `db:"rate"`
	Source    string          `db:"source"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// PluginService is a registered caller allowed to move balances.
type PluginService struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	APIKeyHash string `db:"api_key_hash"`
	IsActive   bool   `db:"is_active"`
}

// Conversion is an external amount expressed in GTON through the cached rate chain.
type Conversion struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	GTON     decimal.Decimal `json:"gton"`
	Rate     decimal.Decimal `json:"rate"`
	AsOf     time.Time       `json:"as_of"`
}
