package userhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	userservice "github.com/Black-And-White-Club/chainchaser/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc *FakeService, secure bool) Handlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewUserHandlers(svc, logger, tracer, secure)
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestUserHandlers_HandleSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(*FakeService)
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			body:       `{"username":"ace","password":"chains"}`,
			setup:      func(s *FakeService) {},
			wantStatus: http.StatusCreated,
		},
		{
			name: "taken",
			body: `{"username":"ace","password":"chains"}`,
			setup: func(s *FakeService) {
				s.SignupFunc = func(ctx context.Context, username, password string) (*userservice.Account, error) {
					return nil, userservice.ErrUsernameTaken
				}
			},
			wantStatus: http.StatusConflict,
			wantError:  "Username taken.",
		},
		{
			name: "missing fields",
			body: `{"username":"ace"}`,
			setup: func(s *FakeService) {
				s.SignupFunc = func(ctx context.Context, username, password string) (*userservice.Account, error) {
					return nil, userservice.ErrMissingCredentials
				}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too long",
			body: `{"username":"ace","password":"chains"}`,
			setup: func(s *FakeService) {
				s.SignupFunc = func(ctx context.Context, username, password string) (*userservice.Account, error) {
					return nil, userservice.ErrPasswordTooLong
				}
			},
			wantStatus: http.StatusBadRequest,
			wantError:  userservice.ErrPasswordTooLong.Error(),
		},
		{
			name:       "unknown field",
			body:       `{"username":"ace","password":"x","admin":true}`,
			setup:      func(s *FakeService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "store failure is hidden",
			body: `{"username":"ace","password":"chains"}`,
			setup: func(s *FakeService) {
				s.SignupFunc = func(ctx context.Context, username, password string) (*userservice.Account, error) {
					return nil, errors.New("pq: connection refused")
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			tt.setup(svc)
			h := newTestHandlers(svc, false)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.HandleSignup(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestUserHandlers_HandleLogin(t *testing.T) {
	expires := time.Now().Add(time.Hour)

	tests := []struct {
		name          string
		secureCookies bool
		setup         func(*FakeService)
		verify        func(t *testing.T, rr *httptest.ResponseRecorder)
	}{
		{
			name: "success sets session cookie",
			setup: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, username, password string) (*userservice.Session, error) {
					return &userservice.Session{Token: "signed", Username: username, Role: userdomain.RolePlayer, ExpiresAt: expires}, nil
				}
			},
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rr.Code)
				c := findCookie(rr, SessionCookie)
				require.NotNil(t, c)
				assert.Equal(t, "signed", c.Value)
				assert.True(t, c.HttpOnly)
				assert.False(t, c.Secure)

				var body map[string]any
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, "signed", body["token"])
				assert.Equal(t, "Logged in!", body["message"])
			},
		},
		{
			name:          "secure cookies",
			secureCookies: true,
			setup: func(s *FakeService) {
				s.LoginFunc = func(ctx context.Context, username, password string) (*userservice.Session, error) {
					return &userservice.Session{Token: "signed", Username: username, ExpiresAt: expires}, nil
				}
			},
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				c := findCookie(rr, SessionCookie)
				require.NotNil(t, c)
				assert.True(t, c.Secure)
			},
		},
		{
			name:  "invalid credentials",
			setup: func(s *FakeService) {},
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rr.Code)
				assert.Nil(t, findCookie(rr, SessionCookie))
				assert.Contains(t, rr.Body.String(), "Invalid credentials.")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			tt.setup(svc)
			h := newTestHandlers(svc, tt.secureCookies)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"ace","password":"chains"}`))
			rr := httptest.NewRecorder()
			h.HandleLogin(rr, req)

			tt.verify(t, rr)
		})
	}
}

func TestUserHandlers_HandleLogout(t *testing.T) {
	h := newTestHandlers(&FakeService{}, false)

	rr := httptest.NewRecorder()
	h.HandleLogout(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	c := findCookie(rr, SessionCookie)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestUserHandlers_HandleMe(t *testing.T) {
	h := newTestHandlers(&FakeService{}, false)

	rr := httptest.NewRecorder()
	h.HandleMe(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(userdomain.WithClaims(req.Context(), &userdomain.Claims{Username: "dev", Role: userdomain.RoleDeveloper}))
	rr = httptest.NewRecorder()
	h.HandleMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "dev", body["username"])
	assert.Equal(t, true, body["developer"])
}
