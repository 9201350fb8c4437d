package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rohits-web03/lyricjournal/internal/utils"
)

type contextKey string

const UsernameKey contextKey = "username"

// TokenVerifier resolves a bearer token to the username it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's username in the request context.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := verifier.VerifyToken(bearerToken(r))
			if err != nil {
				utils.ErrorResponse(w, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the username set by AuthMiddleware.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok && username != ""
}

// bearerToken takes the second word of "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	fields := strings.Fields(r.Header.Get("Authorization"))
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
