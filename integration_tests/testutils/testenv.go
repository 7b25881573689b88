// Package testutils starts the containers the integration tests run against.
package testutils

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"

	"github.com/Black-And-White-Club/chainchaser/app/database"
	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/config"
	"github.com/Black-And-White-Club/chainchaser/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment is a migrated Postgres database in a container.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	DB          *bun.DB
	Config      *config.Config
	Obs         observability.Observability
}

// NewTestEnvironment starts Postgres, connects through the pgx driver and
// applies every module migration.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: database.DriverPGX, DSN: connStr},
		JWT:      config.JWTConfig{Secret: "integration-secret"},
		Map: config.MapConfig{
			DefaultLat:     35.1983,
			DefaultLon:     -111.6513,
			CourseRadius:   20000,
			RetailerRadius: 10000,
		},
	}
	obs := observability.NewNop()

	db, err := database.Open(ctx, cfg.Database, obs.Logger)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(ctx, db, obs.Logger); err != nil {
		db.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestEnvironment{
		Ctx:         ctx,
		PgContainer: pgContainer,
		DB:          db,
		Config:      cfg,
		Obs:         obs,
	}, nil
}

// Reset empties the user-written tables and restores the seeded course.
func (env *TestEnvironment) Reset(t *testing.T) {
	t.Helper()
	for _, table := range []string{"users", "reviews", "rounds"} {
		if _, err := env.DB.ExecContext(env.Ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY"); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
	if _, err := env.DB.ExecContext(env.Ctx, "DELETE FROM courses WHERE name <> ?", coursedomain.ThorpeParkName); err != nil {
		t.Fatalf("failed to reset courses: %v", err)
	}

	layout, err := coursedomain.EncodeLayout(coursedomain.ThorpeParkLayout())
	if err != nil {
		t.Fatalf("failed to encode seed layout: %v", err)
	}
	if _, err := env.DB.ExecContext(env.Ctx,
		"UPDATE courses SET layout = ?, layout_version = 0 WHERE name = ?",
		layout, coursedomain.ThorpeParkName,
	); err != nil {
		t.Fatalf("failed to reset seed layout: %v", err)
	}
}

// Cleanup closes the pool and stops the container.
func (env *TestEnvironment) Cleanup() {
	if env.DB != nil {
		env.DB.Close()
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(env.Ctx)
	}
}

// RunMain runs m against a fresh environment stored in *env. Tests are
// skipped in -short mode and when Docker is unavailable.
func RunMain(m *testing.M, env **TestEnvironment) int {
	if !flag.Parsed() {
		flag.Parse()
	}
	if testing.Short() || os.Getenv("SKIP_INTEGRATION") != "" {
		return 0
	}

	ctx := context.Background()
	e, err := NewTestEnvironment(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "integration environment unavailable: %v\n", err)
		return 0
	}
	defer e.Cleanup()

	*env = e
	return m.Run()
}
