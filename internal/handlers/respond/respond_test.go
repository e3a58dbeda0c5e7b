package respond

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/gtonledger/internal/domain"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.NewInsufficientBalance(decimal.NewFromInt(3)), http.StatusPaymentRequired},
		{fmt.Errorf("user 1: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrAlreadyUsed, http.StatusConflict},
		{domain.ErrExpired, http.StatusGone},
		{domain.ErrNotEligible, http.StatusUnprocessableEntity},
		{domain.ErrLimitExceeded, http.StatusTooManyRequests},
		{domain.ErrRatesUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, Status(tt.err), tt.err.Error())
	}
}

func TestError_HidesInternalErrors(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())

	w = httptest.NewRecorder()
	Error(w, domain.NewInsufficientBalance(decimal.NewFromInt(3)))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.JSONEq(t, `{"message":"insufficient balance: available 3.000000 GTON"}`, w.Body.String())
}

func withParam(name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	id, err := PathID(withParam("userID", "42"), "userID")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-5"} {
		_, err := PathID(withParam("userID", bad), "userID")
		assert.Equal(t, http.StatusBadRequest, Status(err), bad)
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=20&offset=x", nil)
	v, err := QueryInt(r, "limit")
	assert.NoError(t, err)
	assert.Equal(t, 20, v)

	v, err = QueryInt(r, "missing")
	assert.NoError(t, err)
	assert.Zero(t, v)

	_, err = QueryInt(r, "offset")
	assert.Error(t, err)
}
