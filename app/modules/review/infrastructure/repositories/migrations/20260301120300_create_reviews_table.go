package reviewmigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type reviewV1 struct {
	bun.BaseModel `bun:"table:reviews"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username,notnull"`
	Course        string    `bun:"course,notnull"`
	Rating        int       `bun:"rating,notnull"`
	Comment       string    `bun:"comment,notnull"`
	Flagged       *string   `bun:"flagged"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating reviews table...")

		if _, err := db.NewCreateTable().
			Model((*reviewV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create reviews table: %w", err)
		}

		if _, err := db.NewCreateIndex().
			Model((*reviewV1)(nil)).
			Index("idx_reviews_created_at").
			Column("created_at").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create reviews index: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping reviews table...")

		if _, err := db.NewDropTable().
			Model((*reviewV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop reviews table: %w", err)
		}
		return nil
	})
}
