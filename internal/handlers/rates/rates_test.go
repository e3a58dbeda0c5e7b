package rates

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/rates"
)

func NewMock(t *testing.T) (*RatesHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)
	updated := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	service.EXPECT().Rates().Return([]rates.Quote{
		{ExchangeRate: domain.ExchangeRate{Base: rates.GTON, Quote: rates.TON, Rate: decimal.RequireFromString("1.53"), Source: "settings", UpdatedAt: updated}},
		{ExchangeRate: domain.ExchangeRate{Base: rates.USD, Quote: "RUB", Rate: decimal.RequireFromString("92.5"), Source: "exchangerate", UpdatedAt: updated}, Stale: true},
	})

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []dto.RateDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "settings", body[0].Source)
	assert.False(t, body[0].Stale)
	assert.True(t, body[1].Stale)
	assert.True(t, updated.Equal(body[1].UpdatedAt))
}

func TestConvertHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedDir  string
		expectedGTON string
	}{
		{
			name: "Converted",
			body: `{"amount":"1000","currency":"RUB"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Convert(gomock.Any(), decimal.RequireFromString("1000"), "RUB").Return(&domain.Conversion{
					Currency: "RUB",
					Amount:   decimal.NewFromInt(1000),
					GTON:     decimal.RequireFromString("0.705243"),
					Rate:     decimal.RequireFromString("1417.952"),
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedDir:  "to_gton",
			expectedGTON: "0.705243",
		},
		{
			name: "Converted from GTON",
			body: `{"amount":"2","currency":"RUB","direction":"from_gton"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().ConvertFromGTON(gomock.Any(), decimal.RequireFromString("2"), "RUB").Return(&domain.Conversion{
					Currency: "RUB",
					Amount:   decimal.RequireFromString("2835.904"),
					GTON:     decimal.NewFromInt(2),
					Rate:     decimal.RequireFromString("1417.952"),
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedDir:  "from_gton",
			expectedGTON: "2",
		},
		{
			name: "Stale rates from GTON",
			body: `{"amount":"2","currency":"EUR","direction":"from_gton"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().ConvertFromGTON(gomock.Any(), gomock.Any(), "EUR").Return(nil, domain.ErrRatesUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name:         "Unknown direction",
			body:         `{"amount":"2","currency":"RUB","direction":"sideways"}`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing currency",
			body:         `{"amount":"1000"}`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Non-positive amount",
			body: `{"amount":"0","currency":"RUB"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Convert(gomock.Any(), gomock.Any(), "RUB").Return(nil, domain.ErrInvalidAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Unsupported currency",
			body: `{"amount":"1","currency":"XYZ"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Convert(gomock.Any(), gomock.Any(), "XYZ").Return(nil, domain.ErrUnsupportedCurrency)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Stale rates",
			body: `{"amount":"1","currency":"EUR"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Convert(gomock.Any(), gomock.Any(), "EUR").Return(nil, domain.ErrRatesUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.Convert(w, httptest.NewRequest(http.MethodPost, "/api/rates/convert", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.ConversionDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedDir, body.Direction)
				assert.True(t, decimal.RequireFromString(tt.expectedGTON).Equal(body.GTON))
			}
		})
	}
}
