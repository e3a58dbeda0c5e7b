package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/service/authservice"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth

type Service interface {
	Authenticate(ctx context.Context, id string, apiKey string) (*domain.PluginService, error)
	GenerateToken(serviceID string) (string, error)
	TokenTTL() time.Duration
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token godoc
//
//	@Summary		Issue a service token
//	@Description	Exchange a plugin service id and API key for a short-lived JWT
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.TokenRequestDTO	true	"Service credentials"
//	@Success		200		{object}	dto.TokenResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/services/token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	svc, err := h.authService.Authenticate(r.Context(), req.ServiceID, req.APIKey)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	token, err := h.authService.GenerateToken(svc.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.TokenResponseDTO{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(h.authService.TokenTTL().Seconds()),
	})
}
