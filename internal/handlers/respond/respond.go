package respond

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

var statuses = []struct {
	err    error
	status int
}{
	{utils.ErrInvalidBody, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidWalletKind, http.StatusBadRequest},
	{domain.ErrInsufficientBalance, http.StatusPaymentRequired},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrAlreadyUsed, http.StatusConflict},
	{domain.ErrLimitReached, http.StatusConflict},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrExpired, http.StatusGone},
	{domain.ErrNotStarted, http.StatusUnprocessableEntity},
	{domain.ErrNotEligible, http.StatusUnprocessableEntity},
	{domain.ErrUnsupportedCurrency, http.StatusUnprocessableEntity},
	{domain.ErrLimitExceeded, http.StatusTooManyRequests},
	{domain.ErrRatesUnavailable, http.StatusServiceUnavailable},
	{domain.ErrBusy, http.StatusServiceUnavailable},
}

// Status maps an engine error to its HTTP status.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Error writes err as a JSON message. Unknown errors are logged and hidden.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, status, "Internal server error")
		return
	}
	utils.RespondWithError(w, status, err.Error())
}

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", utils.ErrInvalidBody, name)
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter.
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s", utils.ErrInvalidBody, name)
	}
	return v, nil
}
