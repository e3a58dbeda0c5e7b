package bonus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/service/bonusservice"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

var today = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*BonusHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func request(method, userID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID)
	r := httptest.NewRequest(method, "/api/users/"+userID+"/daily-bonus", nil)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestStatusHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Status(gomock.Any(), int64(42)).Return(&bonusservice.Status{
		StreakStatus: domain.StreakStatus{Available: true, DayNumber: 3, CurrentStreak: 2, Today: today},
		Enabled:      true,
		Reward:       decimal.RequireFromString("0.3"),
		MaxStreak:    5,
		TotalClaims:  12,
		NextClaimAt:  today,
	}, nil)

	w := httptest.NewRecorder()
	handler.Status(w, request(http.MethodGet, "42"))

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.DailyBonusStatusDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Available)
	assert.Equal(t, 3, body.DayNumber)
	assert.Equal(t, "2024-05-10", body.Today)
	assert.True(t, decimal.RequireFromString("0.3").Equal(body.Reward))
}

func TestClaimHandler(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Claimed",
			prepareMock: func(service *MockService) {
				service.EXPECT().Claim(gomock.Any(), int64(42)).Return(&bonusservice.Claim{
					Claim:       domain.DailyBonusClaim{DayNumber: 3, Reward: decimal.RequireFromString("0.3"), Streak: 3, ClaimDate: today},
					Transaction: domain.Transaction{ID: 5, Source: domain.SourceBonus},
					Balance:     decimal.RequireFromString("1.3"),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already claimed",
			prepareMock: func(service *MockService) {
				service.EXPECT().Claim(gomock.Any(), int64(42)).Return(nil, fmt.Errorf("daily bonus of 2024-05-10: %w", domain.ErrAlreadyUsed))
			},
			expectedCode:  http.StatusConflict,
			expectedError: "daily bonus of 2024-05-10: already used",
		},
		{
			name: "Disabled",
			prepareMock: func(service *MockService) {
				service.EXPECT().Claim(gomock.Any(), int64(42)).Return(nil, bonusservice.ErrDisabled)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "daily bonus is disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.Claim(w, request(http.MethodPost, "42"))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
				return
			}
			var body dto.DailyBonusClaimDTO
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "2024-05-10", body.ClaimDate)
			assert.Equal(t, int64(5), body.Transaction.ID)
		})
	}
}
