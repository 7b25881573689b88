package reviewdb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new review repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Create inserts a review.
func (r *Impl) Create(ctx context.Context, db bun.IDB, review *Review) error {
	db = r.resolveDB(db)
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	if _, err := db.NewInsert().Model(review).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// List returns every review ordered by creation, newest first.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*Review, error) {
	db = r.resolveDB(db)
	var reviews []*Review
	err := db.NewSelect().
		Model(&reviews).
		Order("created_at DESC", "id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
