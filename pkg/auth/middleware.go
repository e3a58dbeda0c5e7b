package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/gtonledger/pkg/utils"
)

type ContextKey string

const ServiceIDKey ContextKey = "serviceID"

// Middleware admits requests carrying a valid service token and stores the
// service id in the request context.
func Middleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := WithServiceID(r.Context(), claims.ServiceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithServiceID(ctx context.Context, serviceID string) context.Context {
	return context.WithValue(ctx, ServiceIDKey, serviceID)
}

// ServiceID returns the authenticated service of ctx, or nil.
func ServiceID(ctx context.Context) *string {
	id, ok := ctx.Value(ServiceIDKey).(string)
	if !ok || id == "" {
		return nil
	}
	return &id
}
