package rounddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for round persistence. Rounds are
// immutable once created.
type Repository interface {
	// Create inserts a round and sets its ID.
	Create(ctx context.Context, db bun.IDB, round *Round) error

	// ListByUser returns a user's rounds, most recent date first.
	ListByUser(ctx context.Context, db bun.IDB, username string) ([]*Round, error)

	// LatestForCourse returns the user's most recent round on course.
	LatestForCourse(ctx context.Context, db bun.IDB, username, course string) (*Round, error)
}
