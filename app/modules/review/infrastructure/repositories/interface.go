package reviewdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for review persistence. Reviews are
// immutable once created.
type Repository interface {
	Create(ctx context.Context, db bun.IDB, review *Review) error

	// List returns every review, newest first.
	List(ctx context.Context, db bun.IDB) ([]*Review, error)
}
