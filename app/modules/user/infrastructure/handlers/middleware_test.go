package userhandlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	userservice "github.com/Black-And-White-Club/chainchaser/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	svc := &FakeService{
		AuthenticateFunc: func(ctx context.Context, token string) (*userdomain.Claims, error) {
			switch token {
			case "player-token":
				return &userdomain.Claims{Username: "ace", Role: userdomain.RolePlayer}, nil
			case "dev-token":
				return &userdomain.Claims{Username: "dev", Role: userdomain.RoleDeveloper}, nil
			}
			return nil, userservice.ErrInvalidToken
		},
		CurrentRoleFunc: func(ctx context.Context, username string) (userdomain.Role, error) {
			if username == "dev" {
				return userdomain.RoleDeveloper, nil
			}
			return userdomain.RolePlayer, nil
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := userdomain.ClaimsFromContext(r.Context())
		seen = claims.Username
		w.WriteHeader(http.StatusOK)
	})

	auth := AuthMiddleware(svc, logger)
	devOnly := auth(RequireRole(svc, userdomain.RoleDeveloper, logger)(next))

	tests := []struct {
		name       string
		handler    http.Handler
		header     string
		cookie     string
		wantStatus int
		wantUser   string
	}{
		{name: "no token", handler: auth(next), wantStatus: http.StatusUnauthorized},
		{name: "bad token", handler: auth(next), header: "Bearer junk", wantStatus: http.StatusUnauthorized},
		{name: "bearer header", handler: auth(next), header: "Bearer player-token", wantStatus: http.StatusOK, wantUser: "ace"},
		{name: "session cookie", handler: auth(next), cookie: "player-token", wantStatus: http.StatusOK, wantUser: "ace"},
		{name: "player on developer route", handler: devOnly, header: "Bearer player-token", wantStatus: http.StatusForbidden},
		{name: "developer on developer route", handler: devOnly, header: "Bearer dev-token", wantStatus: http.StatusOK, wantUser: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/api/anything", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			tt.handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}

func TestRequireRole(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stored := map[string]userdomain.Role{
		"promoted": userdomain.RoleDeveloper,
		"demoted":  userdomain.RolePlayer,
	}
	roles := &FakeService{
		CurrentRoleFunc: func(ctx context.Context, username string) (userdomain.Role, error) {
			if username == "flaky" {
				return "", errors.New("connection reset")
			}
			role, ok := stored[username]
			if !ok {
				return "", userservice.ErrUserNotFound
			}
			return role, nil
		},
	}

	tests := []struct {
		name       string
		claims     *userdomain.Claims
		wantStatus int
	}{
		{name: "no claims", wantStatus: http.StatusUnauthorized},
		{name: "promoted after login", claims: &userdomain.Claims{Username: "promoted", Role: userdomain.RolePlayer}, wantStatus: http.StatusOK},
		{name: "demoted after login", claims: &userdomain.Claims{Username: "demoted", Role: userdomain.RoleDeveloper}, wantStatus: http.StatusForbidden},
		{name: "account removed", claims: &userdomain.Claims{Username: "ghost", Role: userdomain.RoleDeveloper}, wantStatus: http.StatusUnauthorized},
		{name: "role lookup fails", claims: &userdomain.Claims{Username: "flaky", Role: userdomain.RoleDeveloper}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			h := RequireRole(roles, userdomain.RoleDeveloper, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPut, "/api/courses/x/layout", nil)
			if tt.claims != nil {
				req = req.WithContext(userdomain.WithClaims(req.Context(), tt.claims))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}
