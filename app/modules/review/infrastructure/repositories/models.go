package reviewdb

import (
	"time"

	"github.com/uptrace/bun"
)

// Review is a community course review. Flagged holds the lost-disc advisory
// when the comment matched.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:rv"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Username      string    `bun:"username,notnull" json:"username"`
	Course        string    `bun:"course,notnull" json:"course"`
	Rating        int       `bun:"rating,notnull" json:"rating"`
	Comment       string    `bun:"comment,notnull" json:"comment"`
	Flagged       *string   `bun:"flagged" json:"flagged,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
