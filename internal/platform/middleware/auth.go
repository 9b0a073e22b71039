package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"warden/pkg/requestcontext"
)

// TokenValidator resolves a bearer token into an identity. Implemented by the
// jwtauth service; swapped for a stub in handler tests.
type TokenValidator interface {
	ValidateToken(tokenString string) (requestcontext.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved identity in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			identity, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("rejected token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err.Error(),
				)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := requestcontext.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
