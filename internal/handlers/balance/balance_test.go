package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/dto"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/pkg/auth"
	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func request(method, target, userID, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", userID)
	ctx := context.WithValue(auth.WithServiceID(context.Background(), "shop"), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp utils.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Message
}

func shop() *string {
	s := "shop"
	return &s
}

func TestGetBalanceHandler(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		userID       string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name:   "Main wallet by default",
			target: "/api/users/42/balance",
			userID: "42",
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBalance(gomock.Any(), int64(42), domain.WalletMain).Return(decimal.RequireFromString("12.5"), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{UserID: 42, WalletKind: domain.WalletMain, Balance: decimal.RequireFromString("12.5")},
		},
		{
			name:   "Bonus wallet",
			target: "/api/users/42/balance?kind=bonus",
			userID: "42",
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBalance(gomock.Any(), int64(42), domain.WalletBonus).Return(decimal.Zero, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{UserID: 42, WalletKind: domain.WalletBonus, Balance: decimal.Zero},
		},
		{
			name:         "Bad user id",
			target:       "/api/users/abc/balance",
			userID:       "abc",
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Invalid wallet kind",
			target: "/api/users/42/balance?kind=gold",
			userID: "42",
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBalance(gomock.Any(), int64(42), domain.WalletKind("gold")).Return(decimal.Zero, domain.ErrInvalidWalletKind)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Internal server error",
			target: "/api/users/42/balance",
			userID: "42",
			prepareMock: func(service *MockService) {
				service.EXPECT().GetBalance(gomock.Any(), int64(42), domain.WalletMain).Return(decimal.Zero, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.GetBalance(w, request(http.MethodGet, tt.target, tt.userID, ""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, tt.expectedBody.UserID, body.UserID)
				assert.Equal(t, tt.expectedBody.WalletKind, body.WalletKind)
				assert.True(t, tt.expectedBody.Balance.Equal(body.Balance))
			}
		})
	}
}

func TestGetBalancesHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().GetBalances(gomock.Any(), int64(42)).Return([]domain.Wallet{
		{Kind: domain.WalletMain, Balance: decimal.NewFromInt(10), Frozen: decimal.NewFromInt(4)},
		{Kind: domain.WalletBonus, Balance: decimal.NewFromInt(3)},
	}, nil)

	w := httptest.NewRecorder()
	handler.GetBalances(w, request(http.MethodGet, "/api/users/42/balances", "42", ""))

	require.Equal(t, http.StatusOK, w.Code)
	var body []dto.WalletDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.True(t, decimal.NewFromInt(6).Equal(body[0].Spendable))
	assert.Equal(t, domain.WalletBonus, body[1].Kind)
}

func TestDeductHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful debit",
			body: `{"amount":"5.5","reason":"premium","action":"subscribe","reference_id":"inv-1"}`,
			prepareMock: func(service *MockService) {
				ref := "inv-1"
				service.EXPECT().Deduct(gomock.Any(), balanceservice.Operation{
					UserID:      42,
					Amount:      decimal.RequireFromString("5.5"),
					Action:      "subscribe",
					Reason:      "premium",
					ServiceID:   shop(),
					ReferenceID: &ref,
				}).Return(&balanceservice.Result{
					Transaction: domain.Transaction{ID: 9, UserID: 42, Direction: domain.Debit, Amount: decimal.RequireFromString("5.5")},
					Balance:     decimal.RequireFromString("4.5"),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Unknown field",
			body:          `{"amount":"1","sum":2}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: `invalid request body: json: unknown field "sum"`,
		},
		{
			name:          "Bad wallet kind",
			body:          `{"amount":"1","wallet_kind":"gold"}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body: field WalletKind failed on oneof",
		},
		{
			name: "Insufficient balance",
			body: `{"amount":"50"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(nil, domain.NewInsufficientBalance(decimal.NewFromInt(10)))
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient balance: available 10.000000 GTON",
		},
		{
			name: "Daily limit exceeded",
			body: `{"amount":"50"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(nil, domain.ErrLimitExceeded)
			},
			expectedCode:  http.StatusTooManyRequests,
			expectedError: "daily limit exceeded",
		},
		{
			name: "Busy store",
			body: `{"amount":"1"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Deduct(gomock.Any(), gomock.Any()).Return(nil, domain.ErrBusy)
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "store busy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.Deduct(w, request(http.MethodPost, "/api/users/42/deduct", "42", tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, message(t, w))
				return
			}
			var body dto.OperationResponseDTO
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, int64(9), body.Transaction.ID)
			assert.True(t, decimal.RequireFromString("4.5").Equal(body.Balance))
		})
	}
}

func TestCreditHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Credit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, op balanceservice.Operation) (*balanceservice.Result, error) {
			assert.Equal(t, domain.WalletBonus, op.WalletKind)
			assert.Equal(t, domain.SourceBonus, op.Source)
			require.NotNil(t, op.ExpiresAt)
			assert.Equal(t, 2024, op.ExpiresAt.Year())
			assert.Equal(t, "shop", *op.ServiceID)
			return &balanceservice.Result{Transaction: domain.Transaction{ID: 3}, Balance: op.Amount}, nil
		})

	w := httptest.NewRecorder()
	body := `{"amount":"10","source":"bonus","wallet_kind":"bonus","expires_at":"2024-06-01T00:00:00Z"}`
	handler.Credit(w, request(http.MethodPost, "/api/users/42/credit", "42", body))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreditHandler_BadSource(t *testing.T) {
	handler, _ := NewMock(t)
	w := httptest.NewRecorder()
	handler.Credit(w, request(http.MethodPost, "/api/users/42/credit", "42", `{"amount":"10","source":"gift"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepositHandler(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		prepareMock   func(service *MockService)
		expectedCode  int
		expectedError string
	}{
		{
			name: "Converted deposit",
			body: `{"amount":"1000","currency":"RUB","reference":"invoice-8812"}`,
			prepareMock: func(service *MockService) {
				ref := "invoice-8812"
				service.EXPECT().Deposit(gomock.Any(), balanceservice.Operation{
					UserID:      42,
					ServiceID:   shop(),
					ReferenceID: &ref,
					Reason:      "deposit RUB",
				}, decimal.RequireFromString("1000"), "RUB").Return(&balanceservice.Result{
					Transaction: domain.Transaction{ID: 11, Source: domain.SourcePayment},
					Balance:     decimal.RequireFromString("6.535948"),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Missing currency",
			body:          `{"amount":"1000"}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body: field Currency failed on required",
		},
		{
			name:          "Malformed currency",
			body:          `{"amount":"1000","currency":"R-1"}`,
			prepareMock:   func(service *MockService) {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body: field Currency failed on currency",
		},
		{
			name: "Unsupported currency",
			body: `{"amount":"1000","currency":"XYZ"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any(), "XYZ").Return(nil, domain.ErrUnsupportedCurrency)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "unsupported currency",
		},
		{
			name: "Rates unavailable",
			body: `{"amount":"1000","currency":"RUB"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Deposit(gomock.Any(), gomock.Any(), gomock.Any(), "RUB").Return(nil, domain.ErrRatesUnavailable)
			},
			expectedCode:  http.StatusServiceUnavailable,
			expectedError: "exchange rates unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.Deposit(w, request(http.MethodPost, "/api/users/42/deposit", "42", tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, message(t, w))
			}
		})
	}
}

func TestTransferHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "Bonus to main",
			body: `{"from":"bonus","to":"main","amount":"3"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), int64(42), domain.WalletBonus, domain.WalletMain, decimal.RequireFromString("3"), shop()).
					Return([]domain.Transaction{{ID: 1, Direction: domain.Debit}, {ID: 2, Direction: domain.Credit}}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Same wallet",
			body:         `{"from":"main","to":"main","amount":"3"}`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Source wallet missing",
			body: `{"from":"bonus","to":"main","amount":"3"}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), int64(42), domain.WalletBonus, domain.WalletMain, gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.Transfer(w, request(http.MethodPost, "/api/users/42/transfer", "42", tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.TransactionDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, 2)
			}
		})
	}
}

func TestFreezeAndUnfreezeHandlers(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Freeze(gomock.Any(), int64(42), domain.WalletKind(""), decimal.RequireFromString("3")).
		Return(&domain.Wallet{Kind: domain.WalletMain, Balance: decimal.NewFromInt(10), Frozen: decimal.NewFromInt(3)}, nil)
	service.EXPECT().Unfreeze(gomock.Any(), int64(42), domain.WalletMain, decimal.RequireFromString("5")).
		Return(nil, domain.NewInsufficientBalance(decimal.NewFromInt(3)))

	w := httptest.NewRecorder()
	handler.Freeze(w, request(http.MethodPost, "/api/users/42/freeze", "42", `{"amount":"3"}`))
	require.Equal(t, http.StatusOK, w.Code)
	var wallet dto.WalletDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&wallet))
	assert.True(t, decimal.NewFromInt(7).Equal(wallet.Spendable))

	w = httptest.NewRecorder()
	handler.Unfreeze(w, request(http.MethodPost, "/api/users/42/unfreeze", "42", `{"amount":"5","wallet_kind":"main"}`))
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestSetDailyLimitHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		limit        decimal.NullDecimal
		expectedCode int
	}{
		{
			name:         "Set limit",
			body:         `{"limit":"50"}`,
			limit:        decimal.NewNullDecimal(decimal.RequireFromString("50")),
			expectedCode: http.StatusOK,
		},
		{
			name:         "Clear limit",
			body:         `{"limit":null}`,
			limit:        decimal.NullDecimal{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			service.EXPECT().SetDailyLimit(gomock.Any(), int64(42), domain.WalletKind(""), tt.limit).
				Return(&domain.Wallet{Kind: domain.WalletMain, DailyLimit: tt.limit}, nil)
			w := httptest.NewRecorder()

			handler.SetDailyLimit(w, request(http.MethodPut, "/api/users/42/daily-limit", "42", tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		prepareMock  func(service *MockService)
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Filtered page",
			target: "/api/users/42/transactions?direction=debit&source=service&wallet_kind=main&limit=10&offset=20",
			prepareMock: func(service *MockService) {
				service.EXPECT().History(gomock.Any(), domain.TransactionFilter{
					UserID:     42,
					WalletKind: domain.WalletMain,
					Direction:  domain.Debit,
					Source:     domain.SourceService,
					Limit:      10,
					Offset:     20,
				}).Return([]domain.Transaction{{ID: 5}, {ID: 4}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:   "Empty history",
			target: "/api/users/42/transactions",
			prepareMock: func(service *MockService) {
				service.EXPECT().History(gomock.Any(), domain.TransactionFilter{UserID: 42}).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Bad limit",
			target:       "/api/users/42/transactions?limit=ten",
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Bad direction",
			target:       "/api/users/42/transactions?direction=up",
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)
			w := httptest.NewRecorder()

			handler.GetTransactions(w, request(http.MethodGet, tt.target, "42", ""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.TransactionDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestReconcileHandler(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Reconcile(gomock.Any(), int64(42), domain.WalletBonus).Return(&balanceservice.Reconciliation{
		WalletID:     7,
		Balance:      decimal.NewFromInt(5),
		Replayed:     decimal.NewFromInt(5),
		Transactions: 3,
		Consistent:   true,
	}, nil)
	service.EXPECT().Reconcile(gomock.Any(), int64(43), domain.WalletKind("")).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	handler.Reconcile(w, request(http.MethodGet, "/api/users/42/reconcile?kind=bonus", "42", ""))
	require.Equal(t, http.StatusOK, w.Code)
	var rep balanceservice.Reconciliation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rep))
	assert.True(t, rep.Consistent)
	assert.Equal(t, 3, rep.Transactions)

	w = httptest.NewRecorder()
	handler.Reconcile(w, request(http.MethodGet, "/api/users/43/reconcile", "43", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
