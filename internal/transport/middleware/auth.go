package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/chatvault/internal/domain"
	"github.com/heartmarshall/chatvault/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type userChecker interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// Auth requires a valid bearer token and an active account. The user ID is
// stored in the request context. users may be nil to skip the account check.
func Auth(logger *slog.Logger, validator tokenValidator, users userChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if users != nil {
				active, err := users.IsActive(r.Context(), userID)
				switch {
				case errors.Is(err, domain.ErrNotFound):
					writeError(w, http.StatusUnauthorized, "unknown user")
					return
				case err != nil:
					logger.ErrorContext(r.Context(), "auth: user lookup failed",
						slog.String("user_id", userID.String()),
						slog.String("error", err.Error()))
					writeError(w, http.StatusServiceUnavailable, "service unavailable")
					return
				case !active:
					writeError(w, http.StatusForbidden, "account is disabled")
					return
				}
			}

			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
