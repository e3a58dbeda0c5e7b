package promo

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/handlers/respond"
	"github.com/GlebRadaev/gtonledger/internal/service/promoservice"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=promo.go -destination=mock_promo.go -package=promo

type Service interface {
	Validate(ctx context.Context, code string, userID int64) (*promoservice.Validation, error)
	Activate(ctx context.Context, code string, userID int64) (*promoservice.Activation, error)
}

type PromoHandler struct {
	promoService Service
}

func New(promoService Service) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
	}
}

// Validate godoc
//
//	@Summary		Check a promo code
//	@Description	Runs every activation check without granting the reward.
//	@Tags			Promo codes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PromoRequestDTO	true	"Code and user"
//	@Success		200		{object}	dto.PromoValidationDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Unknown or inactive code"
//	@Failure		409		{object}	utils.Response	"Already used or limit reached"
//	@Failure		410		{object}	utils.Response	"Expired"
//	@Failure		422		{object}	utils.Response	"Not started or user not eligible"
//	@Router			/api/promocodes/validate [post]
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.PromoRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	v, err := h.promoService.Validate(r.Context(), req.Code, req.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.PromoValidationDTO{
		Code:        v.Code,
		Name:        v.Name,
		RewardType:  v.RewardType,
		RewardValue: v.RewardValue,
	})
}

// Activate godoc
//
//	@Summary		Activate a promo code
//	@Description	Grants the reward and records the activation in one transaction.
//	@Tags			Promo codes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PromoRequestDTO	true	"Code and user"
//	@Success		200		{object}	dto.PromoActivationDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Unknown or inactive code"
//	@Failure		409		{object}	utils.Response	"Already used or limit reached"
//	@Failure		410		{object}	utils.Response	"Expired"
//	@Failure		422		{object}	utils.Response	"Not started or user not eligible"
//	@Failure		503		{object}	utils.Response	"Store busy"
//	@Router			/api/promocodes/activate [post]
func (h *PromoHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req dto.PromoRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	a, err := h.promoService.Activate(r.Context(), req.Code, req.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := dto.PromoActivationDTO{
		ID:          a.Activation.ID,
		RewardType:  a.Activation.RewardType,
		RewardValue: a.Activation.RewardValue,
		ActivatedAt: a.Activation.ActivatedAt,
	}
	if a.Transaction != nil {
		tx := dto.NewTransactionDTO(*a.Transaction)
		resp.Transaction = &tx
	}
	if a.Subscription != nil {
		resp.Subscription = &dto.SubscriptionDTO{
			ServiceID: a.Subscription.ServiceID,
			Plan:      a.Subscription.Plan,
			StartsAt:  a.Subscription.StartsAt,
			ExpiresAt: a.Subscription.ExpiresAt,
		}
	}
	if a.Discount != nil {
		resp.Discount = &dto.DiscountDTO{
			Percent:    a.Discount.Percent,
			MinDeposit: a.Discount.MinDeposit,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
