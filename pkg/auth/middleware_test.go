package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := NewMockJWTServiceInterface(ctrl)

	tests := []struct {
		name        string
		header      string
		prepareMock func()
		wantStatus  int
		wantService string
	}{
		{
			name:        "No header",
			prepareMock: func() {},
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:        "Not a bearer token",
			header:      "Basic abc",
			prepareMock: func() {},
			wantStatus:  http.StatusUnauthorized,
		},
		{
			name:   "Rejected token",
			header: "Bearer bad",
			prepareMock: func() {
				jwtService.EXPECT().ValidateToken("bad").Return(nil, errors.New("invalid token"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "Accepted token",
			header: "Bearer good",
			prepareMock: func() {
				jwtService.EXPECT().ValidateToken("good").Return(&Claims{ServiceID: "chat"}, nil)
			},
			wantStatus:  http.StatusOK,
			wantService: "chat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			var seen *string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = ServiceID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/users/1/balance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Middleware(jwtService)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantService != "" {
				assert.Equal(t, tt.wantService, *seen)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}
