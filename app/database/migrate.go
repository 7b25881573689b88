package database

import (
	"context"
	"fmt"
	"log/slog"

	coursemigrations "github.com/Black-And-White-Club/chainchaser/app/modules/course/infrastructure/repositories/migrations"
	reviewmigrations "github.com/Black-And-White-Club/chainchaser/app/modules/review/infrastructure/repositories/migrations"
	roundmigrations "github.com/Black-And-White-Club/chainchaser/app/modules/round/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations pairs a module name with its migration set.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists every module's migrations in the order they must run.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{"user", usermigrations.Migrations},
		{"course", coursemigrations.Migrations},
		{"review", reviewmigrations.Migrations},
		{"round", roundmigrations.Migrations},
	}
}

// Migrate creates the migration tables and applies all pending module
// migrations. All modules share the bun_migrations table.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	modules := Modules()
	if len(modules) == 0 {
		return nil
	}

	// Initialize migration tables only once - use any migrations to create the table
	if err := migrate.NewMigrator(db, modules[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, mod := range modules {
		migrator := migrate.NewMigrator(db, mod.Migrations)
		group, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.DebugContext(ctx, "No new migrations to run", attr.String("module", mod.Name))
			continue
		}
		logger.InfoContext(ctx, "Migrated module",
			attr.String("module", mod.Name),
			attr.String("group", group.String()),
		)
	}

	return nil
}
