package dto

import (
	"time"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

type RegisterUserRequestDTO struct {
	ExternalID int64  `json:"external_id" validate:"required,gt=0" example:"123456789"`
	Username   string `json:"username" validate:"max=64" example:"alice"`
	ReferrerID *int64 `json:"referrer_id" validate:"omitempty,gt=0" example:"7"`
}

type UserDTO struct {
	ID         int64     `json:"id"`
	ExternalID int64     `json:"external_id"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReferralDTO struct {
	ReferrerID int64 `json:"referrer_id"`
	Level      int   `json:"level"`
}

type RegisterUserResponseDTO struct {
	User      UserDTO         `json:"user"`
	Created   bool            `json:"created"`
	Referrals []ReferralDTO   `json:"referrals"`
	Welcome   *TransactionDTO `json:"welcome,omitempty"`
}

func NewUserDTO(u domain.User) UserDTO {
	return UserDTO{ID: u.ID, ExternalID: u.ExternalID, Username: u.Username, CreatedAt: u.CreatedAt}
}
