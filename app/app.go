package app

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/chainchaser/app/database"
	"github.com/Black-And-White-Club/chainchaser/app/modules/analytics"
	"github.com/Black-And-White-Club/chainchaser/app/modules/course"
	"github.com/Black-And-White-Club/chainchaser/app/modules/pages"
	pagesservice "github.com/Black-And-White-Club/chainchaser/app/modules/pages/application"
	"github.com/Black-And-White-Club/chainchaser/app/modules/places"
	"github.com/Black-And-White-Club/chainchaser/app/modules/review"
	"github.com/Black-And-White-Club/chainchaser/app/modules/round"
	"github.com/Black-And-White-Club/chainchaser/app/modules/user"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/eventbus"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// App holds the process-wide resources and the feature modules.
type App struct {
	Config   *config.Config
	Obs      observability.Observability
	DB       *bun.DB
	EventBus *eventbus.EventBus
	Router   chi.Router
	Modules  Modules
}

// Modules are the initialized feature modules.
type Modules struct {
	User      *user.Module
	Places    *places.Module
	Round     *round.Module
	Course    *course.Module
	Review    *review.Module
	Analytics *analytics.Module
	Pages     *pages.Module
}

// NewApp opens the database, migrates it when configured to and wires every
// module onto a fresh router. Nothing is served until Run.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs := observability.Init(cfg.Observability)
	logger := obs.Logger

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	bus, err := eventbus.NewEventBus(cfg.Events, logger, obs.Registry)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	app := &App{
		Config:   cfg,
		Obs:      obs,
		DB:       db,
		EventBus: bus,
		Router:   newRouter(cfg, obs, db),
	}

	if err := app.initializeModules(ctx); err != nil {
		bus.Close()
		db.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "Application initialized", attr.String("addr", cfg.HTTP.Addr))
	return app, nil
}

// initializeModules builds the modules in dependency order: the user module
// supplies the route guards, places backs retailer suggestions and rounds
// back the map overlay and analytics.
func (app *App) initializeModules(ctx context.Context) error {
	cfg, obs, r, db := app.Config, app.Obs, app.Router, app.DB

	userModule, err := user.NewModule(ctx, cfg, obs, r, db)
	if err != nil {
		return fmt.Errorf("failed to initialize user module: %w", err)
	}
	guards := userModule.Guards()

	placesModule, err := places.NewModule(ctx, cfg, obs, r, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize places module: %w", err)
	}

	roundModule, err := round.NewModule(ctx, app.Config, obs, r, db, app.EventBus, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize round module: %w", err)
	}

	courseModule, err := course.NewModule(ctx, cfg, obs, r, db, app.EventBus, roundModule.Service, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize course module: %w", err)
	}

	reviewModule, err := review.NewModule(ctx, obs, r, db, app.EventBus, placesModule.Service, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize review module: %w", err)
	}

	analyticsModule, err := analytics.NewModule(ctx, obs, r, roundModule.Service, app.EventBus, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize analytics module: %w", err)
	}

	pagesModule, err := pages.NewModule(ctx, cfg, obs, r, pagesservice.Dependencies{
		Courses:   courseModule.Service,
		Places:    placesModule.Service,
		Sessions:  roundModule.Service,
		Reviews:   reviewModule.Service,
		Analytics: analyticsModule.Service,
	}, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize pages module: %w", err)
	}

	app.Modules = Modules{
		User:      userModule,
		Places:    placesModule,
		Round:     roundModule,
		Course:    courseModule,
		Review:    reviewModule,
		Analytics: analyticsModule,
		Pages:     pagesModule,
	}
	return nil
}
