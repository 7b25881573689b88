package userhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	userservice "github.com/Black-And-White-Club/chainchaser/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SessionCookie carries the signed session token for browser clients.
	SessionCookie = "session"
)

// UserHandlers implements the Handlers interface.
type UserHandlers struct {
	service       userservice.Service
	logger        *slog.Logger
	tracer        trace.Tracer
	secureCookies bool
}

// NewUserHandlers creates a new UserHandlers instance.
func NewUserHandlers(
	service userservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	secureCookies bool,
) Handlers {
	return &UserHandlers{
		service:       service,
		logger:        logger,
		tracer:        tracer,
		secureCookies: secureCookies,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string               `json:"message"`
	Account *userservice.Account `json:"account"`
}

type loginResponse struct {
	Message string `json:"message"`
	*userservice.Session
}

func (h *UserHandlers) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UserHandlers.HandleSignup")
	defer span.End()

	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	acct, err := h.service.Signup(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrMissingCredentials), errors.Is(err, userservice.ErrPasswordTooLong):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, userservice.ErrUsernameTaken):
			httpx.WriteError(w, http.StatusConflict, "Username taken.")
		default:
			h.logger.ErrorContext(ctx, "Signup failed", attr.Username(req.Username), attr.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, signupResponse{
		Message: "Signed up! Now login.",
		Account: acct,
	})
}

func (h *UserHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "UserHandlers.HandleLogin")
	defer span.End()

	var req credentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			h.logger.InfoContext(ctx, "Login rejected", attr.Username(req.Username))
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		h.logger.ErrorContext(ctx, "Login failed", attr.Username(req.Username), attr.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})

	httpx.WriteJSON(w, http.StatusOK, loginResponse{Message: "Logged in!", Session: sess})
}

func (h *UserHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	// Clear cookie
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated session's claims.
func (h *UserHandlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := userdomain.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"username":   claims.Username,
		"role":       claims.Role,
		"developer":  claims.Role.CanEditLayouts(),
		"expires_at": claims.ExpiresAt,
	})
}
