package userdb

import (
	"time"

	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/uptrace/bun"
)

// User represents an account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	Username      string          `bun:"username,unique,notnull" json:"username"`
	PasswordHash  string          `bun:"password_hash,notnull" json:"-"`
	Role          userdomain.Role `bun:"role,notnull,default:'player'" json:"role"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
