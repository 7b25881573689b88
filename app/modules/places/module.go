package places

import (
	"context"
	"log/slog"

	placesservice "github.com/Black-And-White-Club/chainchaser/app/modules/places/application"
	placesclient "github.com/Black-And-White-Club/chainchaser/app/modules/places/infrastructure/client"
	placeshandlers "github.com/Black-And-White-Club/chainchaser/app/modules/places/infrastructure/handlers"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
)

// Module represents the nearby-places module.
type Module struct {
	Service placesservice.Service
	logger  *slog.Logger
}

// NewModule creates the places module and registers /api/places.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	guards httpx.Guards,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing places module")

	client := placesclient.New(placesclient.Config{
		BaseURL:           cfg.Places.BaseURL,
		APIKey:            cfg.Places.APIKey,
		Timeout:           cfg.Places.Timeout,
		RequestsPerSecond: cfg.Places.RequestsPerSecond,
	})
	if !client.Configured() {
		logger.WarnContext(ctx, "No places API key configured, nearby searches will return nothing")
	}

	radii := placesservice.Radii{
		Course:   cfg.Map.CourseRadius,
		Retailer: cfg.Map.RetailerRadius,
	}
	service := placesservice.NewPlacesService(
		client,
		radii,
		logger,
		tracer,
		obs.Domain,
	)

	locator := geo.Locator{Default: geo.Point{Lat: cfg.Map.DefaultLat, Lon: cfg.Map.DefaultLon}}
	handlers := placeshandlers.NewPlacesHandlers(service, locator, radii, logger, tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/places", func(r chi.Router) {
			r.Use(guards.RequireAuth)

			r.Get("/nearby", handlers.HandleNearby)
			r.Get("/retailers", handlers.HandleRetailers)
		})
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}
