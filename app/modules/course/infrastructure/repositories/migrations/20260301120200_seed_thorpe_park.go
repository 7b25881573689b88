package coursemigrations

import (
	"context"
	"fmt"
	"time"

	coursedomain "github.com/Black-And-White-Club/chainchaser/app/modules/course/domain"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Seeding Thorpe Park layout...")

		layout, err := coursedomain.EncodeLayout(coursedomain.ThorpeParkLayout())
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		seed := &courseV1{
			Name:      coursedomain.ThorpeParkName,
			Lat:       coursedomain.ThorpeParkLocation.Lat,
			Lon:       coursedomain.ThorpeParkLocation.Lon,
			Layout:    layout,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := db.NewInsert().
			Model(seed).
			On("CONFLICT (name) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to seed Thorpe Park: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Removing Thorpe Park seed...")

		if _, err := db.NewDelete().
			Model((*courseV1)(nil)).
			Where("name = ?", coursedomain.ThorpeParkName).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to remove Thorpe Park seed: %w", err)
		}
		return nil
	})
}
