package review

import (
	"context"
	"log/slog"

	reviewservice "github.com/Black-And-White-Club/chainchaser/app/modules/review/application"
	reviewhandlers "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/handlers"
	reviewdb "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the reviews and lost-disc module.
type Module struct {
	Service reviewservice.Service
	logger  *slog.Logger
}

// NewModule creates the review module and registers /api/reviews and
// /api/lost-disc.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	httpRouter chi.Router,
	db *bun.DB,
	publisher eventbus.Publisher,
	retailers reviewservice.RetailerFinder,
	guards httpx.Guards,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing review module")

	repo := reviewdb.NewRepository(db)
	service := reviewservice.NewReviewService(repo, retailers, publisher, logger, obs.Metrics, tracer, db)
	handlers := reviewhandlers.NewReviewHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/reviews", func(r chi.Router) {
			r.Use(guards.RequireAuth)

			r.Get("/", handlers.HandleListReviews)
			r.Post("/", handlers.HandleSubmitReview)
			r.Get("/export.xlsx", handlers.HandleExportReviews)
		})
		httpRouter.With(guards.RequireAuth).Get("/api/lost-disc", handlers.HandleLostDisc)
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}
