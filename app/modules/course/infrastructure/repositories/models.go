package coursedb

import (
	"time"

	"github.com/uptrace/bun"
)

// Course is a named course marker and its stored layout document.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,unique,notnull" json:"name"`
	Lat           float64   `bun:"lat,notnull" json:"lat"`
	Lon           float64   `bun:"lon,notnull" json:"lon"`
	Layout        string    `bun:"layout,notnull" json:"-"`
	LayoutVersion int       `bun:"layout_version,notnull,default:0" json:"layout_version"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
