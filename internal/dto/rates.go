package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RateDTO struct {
	Base      string          `json:"base" example:"USD"`
	Quote     string          `json:"quote" example:"RUB"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string" example:"103.5"`
	Source    string          `json:"source" example:"exchangerate"`
	UpdatedAt time.Time       `json:"updated_at"`
	Stale     bool            `json:"stale"`
}

const (
	DirectionToGTON   = "to_gton"
	DirectionFromGTON = "from_gton"
)

// ConvertRequestDTO carries amount in currency for to_gton (the default) and
// in GTON for from_gton.
type ConvertRequestDTO struct {
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"1000"`
	Currency  string          `json:"currency" validate:"required,currency" example:"RUB"`
	Direction string          `json:"direction" validate:"omitempty,oneof=to_gton from_gton" example:"to_gton"`
}

type ConversionDTO struct {
	Direction string          `json:"direction" example:"to_gton"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
	GTON      decimal.Decimal `json:"gton" swaggertype:"string"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string"`
	AsOf      time.Time       `json:"as_of"`
}
