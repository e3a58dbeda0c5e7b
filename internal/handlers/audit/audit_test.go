package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/service/auditservice"
)

func NewMock(t *testing.T) (*AuditHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func request(feed, query string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("feed", feed)
	r := httptest.NewRequest(http.MethodGet, "/api/audit/"+feed+query, nil)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestFeedHandler(t *testing.T) {
	tests := []struct {
		name         string
		feed         string
		query        string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedNext int64
		expectedLen  int
	}{
		{
			name:  "Transactions page",
			feed:  "transactions",
			query: "?after_id=10&limit=2",
			prepareMock: func(service *MockService) {
				service.EXPECT().Transactions(gomock.Any(), auditservice.Page{AfterID: 10, Limit: 2}).
					Return([]domain.Transaction{{ID: 11}, {ID: 14}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedNext: 14,
			expectedLen:  2,
		},
		{
			name:  "Empty page keeps cursor",
			feed:  "commissions",
			query: "?after_id=30",
			prepareMock: func(service *MockService) {
				service.EXPECT().Commissions(gomock.Any(), auditservice.Page{AfterID: 30}).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedNext: 30,
		},
		{
			name: "Activations",
			feed: "activations",
			prepareMock: func(service *MockService) {
				service.EXPECT().Activations(gomock.Any(), auditservice.Page{}).Return([]domain.PromoActivation{{ID: 3}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedNext: 3,
			expectedLen:  1,
		},
		{
			name: "Claims",
			feed: "claims",
			prepareMock: func(service *MockService) {
				service.EXPECT().Claims(gomock.Any(), auditservice.Page{}).Return([]domain.DailyBonusClaim{{ID: 8}, {ID: 9}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedNext: 9,
			expectedLen:  2,
		},
		{
			name:         "Unknown feed",
			feed:         "orders",
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Bad cursor",
			feed:         "transactions",
			query:        "?after_id=x",
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Store error",
			feed: "claims",
			prepareMock: func(service *MockService) {
				service.EXPECT().Claims(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.Feed(w, request(tt.feed, tt.query))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.Feed[json.RawMessage]
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedNext, body.NextAfterID)
				assert.Len(t, body.Items, tt.expectedLen)
			}
		})
	}
}
