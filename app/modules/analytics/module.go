package analytics

import (
	"context"
	"log/slog"

	analyticsservice "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/application"
	analyticshandlers "github.com/Black-And-White-Club/chainchaser/app/modules/analytics/infrastructure/handlers"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the throw analytics module.
type Module struct {
	Service analyticsservice.Service
	logger  *slog.Logger
}

// NewModule creates the analytics module, registers /api/analytics and, when
// bus is not nil, subscribes the metrics recorder to domain events.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	source analyticsservice.ThrowLogSource,
	bus analyticsservice.Subscriber,
	guards httpx.Guards,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing analytics module")

	service := analyticsservice.NewAnalyticsService(source, analyticsservice.DefaultPalette, logger, obs.Metrics, tracer)
	handlers := analyticshandlers.NewAnalyticsHandlers(service, logger, tracer)

	if bus != nil {
		analyticsservice.NewRecorder(obs.Domain, logger).Register(bus)
	}

	if httpRouter != nil {
		httpRouter.Route("/api/analytics", func(r chi.Router) {
			r.Use(guards.RequireAuth)

			r.Get("/", handlers.HandleSummary)
			r.Get("/histogram.png", handlers.HandleHistogram)
		})
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}
