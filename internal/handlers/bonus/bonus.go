package bonus

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/handlers/respond"
	"github.com/GlebRadaev/gtonledger/internal/service/bonusservice"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=bonus.go -destination=mock_bonus.go -package=bonus

type Service interface {
	Status(ctx context.Context, userID int64) (*bonusservice.Status, error)
	Claim(ctx context.Context, userID int64) (*bonusservice.Claim, error)
}

type BonusHandler struct {
	bonusService Service
}

func New(bonusService Service) *BonusHandler {
	return &BonusHandler{
		bonusService: bonusService,
	}
}

// Status godoc
//
//	@Summary		Daily bonus status
//	@Description	Streak state and the reward the next claim would pay.
//	@Tags			Daily bonus
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	dto.DailyBonusStatusDTO
//	@Failure		400		{object}	utils.Response	"Invalid user id"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{userID}/daily-bonus [get]
func (h *BonusHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	st, err := h.bonusService.Status(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DailyBonusStatusDTO{
		Enabled:       st.Enabled,
		Available:     st.Available,
		DayNumber:     st.DayNumber,
		CurrentStreak: st.CurrentStreak,
		WillReset:     st.WillReset,
		Reward:        st.Reward,
		MaxStreak:     st.MaxStreak,
		TotalClaims:   st.TotalClaims,
		Today:         st.Today.Format(time.DateOnly),
		NextClaimAt:   st.NextClaimAt,
	})
}

// Claim godoc
//
//	@Summary		Claim the daily bonus
//	@Tags			Daily bonus
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	dto.DailyBonusClaimDTO
//	@Failure		403		{object}	utils.Response	"Daily bonus disabled"
//	@Failure		409		{object}	utils.Response	"Already claimed today"
//	@Failure		503		{object}	utils.Response	"Store busy"
//	@Router			/api/users/{userID}/daily-bonus/claim [post]
func (h *BonusHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	c, err := h.bonusService.Claim(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bonusservice.ErrDisabled) {
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
			return
		}
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DailyBonusClaimDTO{
		DayNumber:   c.Claim.DayNumber,
		Reward:      c.Claim.Reward,
		Streak:      c.Claim.Streak,
		ClaimDate:   c.Claim.ClaimDate.Format(time.DateOnly),
		Transaction: dto.NewTransactionDTO(c.Transaction),
		Balance:     c.Balance,
	})
}
