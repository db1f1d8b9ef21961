package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/quayside-pos/quayside-pos/internal/platform/httpx"
	"github.com/quayside-pos/quayside-pos/internal/shared"
)

const bearerPrefix = "Bearer "

// Middleware resolves the Authorization header into a principal and stores it
// in the request context. Requests without a valid bearer token are rejected
// before any handler runs.
func Middleware(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "send Authorization: Bearer <token>", nil)
				return
			}
			principal, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				logger.Debug("bearer token rejected", slog.Any("error", err))
				httpx.Fail(w, http.StatusUnauthorized, shared.CodeUnauthenticated, "invalid or expired token", nil)
				return
			}
			ctx := shared.ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
