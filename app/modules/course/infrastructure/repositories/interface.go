package coursedb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for course persistence.
type Repository interface {
	// Upsert inserts a course or updates the coordinates of the course with
	// the same name. An existing layout is never overwritten.
	Upsert(ctx context.Context, db bun.IDB, course *Course) error

	// List returns every course ordered by name.
	List(ctx context.Context, db bun.IDB) ([]*Course, error)

	// GetByName retrieves a course by its unique name.
	GetByName(ctx context.Context, db bun.IDB, name string) (*Course, error)

	// UpdateLayout stores layout when the row is still at expectedVersion and
	// returns the new version.
	UpdateLayout(ctx context.Context, db bun.IDB, name, layout string, expectedVersion int) (int, error)
}
