package coursedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new course repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Upsert inserts course or refreshes the coordinates of an existing row.
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, course *Course) error {
	db = r.resolveDB(db)
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	_, err := db.NewInsert().
		Model(course).
		On("CONFLICT (name) DO UPDATE").
		Set("lat = EXCLUDED.lat").
		Set("lon = EXCLUDED.lon").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert course: %w", err)
	}
	return nil
}

// List returns all courses ordered by name.
func (r *Impl) List(ctx context.Context, db bun.IDB) ([]*Course, error) {
	db = r.resolveDB(db)
	var courses []*Course
	err := db.NewSelect().
		Model(&courses).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetByName retrieves a course by name.
func (r *Impl) GetByName(ctx context.Context, db bun.IDB, name string) (*Course, error) {
	db = r.resolveDB(db)
	course := new(Course)
	err := db.NewSelect().
		Model(course).
		Where("name = ?", name).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course by name: %w", err)
	}
	return course, nil
}

// UpdateLayout writes layout guarded by layout_version.
func (r *Impl) UpdateLayout(ctx context.Context, db bun.IDB, name, layout string, expectedVersion int) (int, error) {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Course)(nil)).
		Set("layout = ?", layout).
		Set("layout_version = layout_version + 1").
		Set("updated_at = ?", time.Now().UTC()).
		Where("name = ?", name).
		Where("layout_version = ?", expectedVersion).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to update course layout: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		// Distinguish a missing course from a stale version.
		if _, err := r.GetByName(ctx, db, name); err != nil {
			return 0, err
		}
		return 0, ErrVersionMismatch
	}
	return expectedVersion + 1, nil
}
