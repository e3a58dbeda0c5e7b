package users

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/handlers/respond"
	"github.com/GlebRadaev/gtonledger/internal/service/userservice"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=users.go -destination=mock_users.go -package=users

type Service interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Register(ctx context.Context, externalID int64, username string, referrerID *int64) (*userservice.Registration, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register godoc
//
//	@Summary		Register a user
//	@Description	Creates the user and the main wallet, links up to three referral levels and credits the welcome bonus. A known external id returns the existing user with 200.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterUserRequestDTO	true	"User"
//	@Success		201		{object}	dto.RegisterUserResponseDTO	"Registered"
//	@Success		200		{object}	dto.RegisterUserResponseDTO	"Already registered"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		404		{object}	utils.Response				"Referrer not found"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}

	reg, err := h.userService.Register(r.Context(), req.ExternalID, req.Username, req.ReferrerID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := dto.RegisterUserResponseDTO{
		User:      dto.NewUserDTO(reg.User),
		Created:   reg.Created,
		Referrals: make([]dto.ReferralDTO, 0, len(reg.Referrals)),
	}
	for _, ref := range reg.Referrals {
		resp.Referrals = append(resp.Referrals, dto.ReferralDTO{ReferrerID: ref.ReferrerID, Level: ref.Level})
	}
	if reg.Welcome != nil {
		tx := dto.NewTransactionDTO(*reg.Welcome)
		resp.Welcome = &tx
	}

	status := http.StatusOK
	if reg.Created {
		status = http.StatusCreated
	}
	utils.RespondWithJSON(w, status, resp)
}

// Get godoc
//
//	@Summary	Get a user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		userID	path		int	true	"User ID"
//	@Success	200		{object}	dto.UserDTO
//	@Failure	404		{object}	utils.Response	"User not found"
//	@Router		/api/users/{userID} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "userID")
	if err != nil {
		respond.Error(w, err)
		return
	}
	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserDTO(*user))
}
