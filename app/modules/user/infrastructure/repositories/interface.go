package userdb

import (
	"context"

	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for account persistence.
type Repository interface {
	// Create inserts a user, leaving an existing row with the same username
	// untouched and returning ErrUsernameExists.
	Create(ctx context.Context, db bun.IDB, user *User) error

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, db bun.IDB, username string) (*User, error)

	// UpdateRole changes a user's role.
	UpdateRole(ctx context.Context, db bun.IDB, username string, role userdomain.Role) error
}
