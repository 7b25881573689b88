package rounddb

import (
	"time"

	"github.com/uptrace/bun"
)

// Round is a finished round. Course and username are free-text copies.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username,notnull" json:"username"`
	Course        string    `bun:"course,notnull" json:"course"`
	Date          string    `bun:"date,notnull" json:"date"`
	Throws        string    `bun:"throws,notnull" json:"-"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
