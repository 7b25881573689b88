package course

import (
	"context"
	"log/slog"

	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	coursehandlers "github.com/Black-And-White-Club/chainchaser/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/chainchaser/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the course and layout module.
type Module struct {
	Service courseservice.Service
	logger  *slog.Logger
}

// NewModule creates the course module and registers /api/courses.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	db *bun.DB,
	publisher eventbus.Publisher,
	rounds courseservice.RoundHistory,
	guards httpx.Guards,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing course module")

	repo := coursedb.NewRepository(db)
	service := courseservice.NewCourseService(
		repo,
		rounds,
		publisher,
		courseservice.MapConfig{
			TileURL:         cfg.Map.TileURL,
			TileAttribution: cfg.Map.TileAttr,
		},
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	handlers := coursehandlers.NewCourseHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/courses", func(r chi.Router) {
			r.Use(guards.RequireAuth)

			r.Get("/", handlers.HandleListCourses)
			r.Post("/", handlers.HandleSaveCourse)
			r.Get("/{name}", handlers.HandleGetCourse)
			r.Get("/{name}/map", handlers.HandleMap)

			// Developer routes
			r.With(guards.RequireDeveloper).Put("/{name}/layout", handlers.HandleEditLayout)
		})
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}
