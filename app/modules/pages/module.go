package pages

import (
	"context"
	"log/slog"

	pagesservice "github.com/Black-And-White-Club/chainchaser/app/modules/pages/application"
	pageshandlers "github.com/Black-And-White-Club/chainchaser/app/modules/pages/infrastructure/handlers"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
)

// Module represents the page controller module.
type Module struct {
	Service pagesservice.Service
	logger  *slog.Logger
}

// NewModule creates the pages module and registers /api/pages.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	deps pagesservice.Dependencies,
	guards httpx.Guards,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing pages module")

	service := pagesservice.NewPagesService(
		deps,
		geo.Locator{Default: geo.Point{Lat: cfg.Map.DefaultLat, Lon: cfg.Map.DefaultLon}},
		cfg.Map.CourseRadius,
		logger,
		obs.Metrics,
		tracer,
	)
	handlers := pageshandlers.NewPagesHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/pages", func(r chi.Router) {
			r.Use(guards.RequireAuth)

			r.Get("/", handlers.HandleListPages)
			r.Get("/{page}", handlers.HandleGetPage)
		})
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}
