package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type DailyBonusStatusDTO struct {
	Enabled       bool            `json:"enabled"`
	Available     bool            `json:"available"`
	DayNumber     int             `json:"day_number" example:"3"`
	CurrentStreak int             `json:"current_streak" example:"2"`
	WillReset     bool            `json:"will_reset"`
	Reward        decimal.Decimal `json:"reward" swaggertype:"string" example:"0.3"`
	MaxStreak     int             `json:"max_streak"`
	TotalClaims   int             `json:"total_claims"`
	Today         string          `json:"today" example:"2024-05-10"`
	NextClaimAt   time.Time       `json:"next_claim_at"`
}

type DailyBonusClaimDTO struct {
	DayNumber   int             `json:"day_number"`
	Reward      decimal.Decimal `json:"reward" swaggertype:"string"`
	Streak      int             `json:"streak"`
	ClaimDate   string          `json:"claim_date" example:"2024-05-10"`
	Transaction TransactionDTO  `json:"transaction"`
	Balance     decimal.Decimal `json:"balance" swaggertype:"string"`
}
