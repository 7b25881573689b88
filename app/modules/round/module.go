package round

import (
	"context"
	"log/slog"

	roundservice "github.com/Black-And-White-Club/chainchaser/app/modules/round/application"
	rounddomain "github.com/Black-And-White-Club/chainchaser/app/modules/round/domain"
	roundhandlers "github.com/Black-And-White-Club/chainchaser/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/chainchaser/app/modules/round/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/httpx"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the round tracking module.
type Module struct {
	Service roundservice.Service
	logger  *slog.Logger
}

// NewModule creates the round module and registers /api/rounds.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	httpRouter chi.Router,
	db *bun.DB,
	publisher eventbus.Publisher,
	guards httpx.Guards,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing round module")

	repo := rounddb.NewRepository(db)
	service := roundservice.NewRoundService(
		repo,
		roundservice.NewSessionStore(cfg.Rounds.SessionIdle),
		rounddomain.NewDateParser(rounddomain.SystemClock{}),
		publisher,
		logger,
		obs.Metrics,
		tracer,
		db,
	)

	handlers := roundhandlers.NewRoundHandlers(service, logger, tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/rounds", func(r chi.Router) {
			r.Use(guards.RequireAuth)

			r.Get("/", handlers.HandleListRounds)
			r.Get("/export.xlsx", handlers.HandleExportRounds)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", handlers.HandleGetSession)
				r.Post("/holes", handlers.HandleStartHole)
				r.Post("/start", handlers.HandleMarkStart)
				r.Post("/landing", handlers.HandleMarkLanding)
				r.Post("/finish", handlers.HandleFinish)
			})
		})
	}

	return &Module{
		Service: service,
		logger:  logger,
	}, nil
}
