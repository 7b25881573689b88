package roundmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type roundV1 struct {
	bun.BaseModel `bun:"table:rounds"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username,notnull"`
	Course        string    `bun:"course,notnull"`
	Date          string    `bun:"date,notnull"`
	Throws        string    `bun:"throws,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rounds table...")

		if _, err := db.NewCreateTable().
			Model((*roundV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create rounds table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*roundV1)(nil)).
			Index("idx_rounds_username_course_date").
			Column("username", "course", "date").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create rounds index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rounds table...")

		if _, err := db.NewDropTable().
			Model((*roundV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop rounds table: %w", err)
		}
		return nil
	})
}
