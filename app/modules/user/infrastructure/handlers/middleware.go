package userhandlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	userservice "github.com/Black-And-White-Club/chainchaser/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
)

// Authenticator validates session tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userdomain.Claims, error)
}

// RoleSource looks up an account's stored role.
type RoleSource interface {
	CurrentRole(ctx context.Context, username string) (userdomain.Role, error)
}

// AuthMiddleware requires a valid session token from the Authorization
// header (Bearer) or the session cookie, and stores the claims on the
// request context.
func AuthMiddleware(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.DebugContext(r.Context(), "Rejected session", attr.Error(err))
				httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(userdomain.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole rejects requests whose account does not hold role. The role is
// read from roles rather than the token, so promotions apply to live
// sessions. It must run after AuthMiddleware.
func RequireRole(roles RoleSource, role userdomain.Role, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := userdomain.ClaimsFromContext(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			current, err := roles.CurrentRole(r.Context(), claims.Username)
			switch {
			case errors.Is(err, userservice.ErrUserNotFound):
				httpx.WriteError(w, http.StatusUnauthorized, "account no longer exists")
				return
			case err != nil:
				logger.ErrorContext(r.Context(), "Failed to load role", attr.Username(claims.Username), attr.Error(err))
				httpx.WriteError(w, http.StatusInternalServerError, "internal error")
				return
			case current != role:
				httpx.WriteError(w, http.StatusForbidden, role.String()+" role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
