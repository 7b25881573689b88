package coursemigrations

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type courseV1 struct {
	bun.BaseModel `bun:"table:courses"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Name          string    `bun:"name,unique,notnull"`
	Lat           float64   `bun:"lat,notnull"`
	Lon           float64   `bun:"lon,notnull"`
	Layout        string    `bun:"layout,notnull"`
	LayoutVersion int       `bun:"layout_version,notnull,default:0"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating courses table...")

		if _, err := db.NewCreateTable().
			Model((*courseV1)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create courses table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping courses table...")

		if _, err := db.NewDropTable().
			Model((*courseV1)(nil)).
			IfExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop courses table: %w", err)
		}
		return nil
	})
}
