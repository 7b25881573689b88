package user

import (
	"context"
	"log/slog"
	"net/http"

	userservice "github.com/Black-And-White-Club/chainchaser/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	userhandlers "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/handlers"
	userjwt "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the accounts module.
type Module struct {
	Service userservice.Service
	logger  *slog.Logger

	// RequireAuth authenticates a request and stores its claims.
	RequireAuth func(http.Handler) http.Handler
	// RequireDeveloper must be chained after RequireAuth.
	RequireDeveloper func(http.Handler) http.Handler
}

// NewModule creates the accounts module and registers /api/auth.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing user module")

	repo := userdb.NewRepository(db)
	jwtProvider := userjwt.NewProvider(cfg.JWT.Secret)

	service := userservice.NewUserService(
		repo,
		jwtProvider,
		userservice.Config{TokenTTL: cfg.JWT.TTL},
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	if err := service.EnsureDevelopers(ctx, cfg.Auth.Developers); err != nil {
		return nil, err
	}

	// Use secure cookies outside development unless configured explicitly
	secureCookies := cfg.HTTP.SecureCookies || cfg.Observability.Environment == "production"

	handlers := userhandlers.NewUserHandlers(service, logger, tracer, secureCookies)

	module := &Module{
		Service:          service,
		logger:           logger,
		RequireAuth:      userhandlers.AuthMiddleware(service, logger),
		RequireDeveloper: userhandlers.RequireRole(service, userdomain.RoleDeveloper, logger),
	}

	if httpRouter != nil {
		limiter := httpx.NewIPRateLimiter(5, 10)
		httpRouter.Route("/api/auth", func(r chi.Router) {
			r.Use(httpx.RateLimitMiddleware(limiter))

			// Public routes
			r.Post("/signup", handlers.HandleSignup)
			r.Post("/login", handlers.HandleLogin)
			r.Post("/logout", handlers.HandleLogout)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(module.RequireAuth)
				r.Get("/me", handlers.HandleMe)
			})
		})
	}

	return module, nil
}

// Guards returns the middlewares other modules protect their routes with.
func (m *Module) Guards() httpx.Guards {
	return httpx.Guards{
		RequireAuth:      m.RequireAuth,
		RequireDeveloper: m.RequireDeveloper,
	}
}
