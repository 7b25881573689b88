package userservice

import (
	"context"
	"time"

	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
)

// Service defines the account service interface.
type Service interface {
	// Signup creates a player account with a salted password hash.
	Signup(ctx context.Context, username, password string) (*Account, error)

	// Login verifies credentials and issues a signed session token.
	Login(ctx context.Context, username, password string) (*Session, error)

	// Authenticate validates a session token.
	Authenticate(ctx context.Context, token string) (*userdomain.Claims, error)

	// CurrentRole returns the role stored for username.
	CurrentRole(ctx context.Context, username string) (userdomain.Role, error)

	// Promote grants the developer role to an existing account.
	Promote(ctx context.Context, username string) (*Account, error)

	// EnsureDevelopers promotes every listed account that exists.
	EnsureDevelopers(ctx context.Context, usernames []string) error
}

// Account is the public view of a user.
type Account struct {
	Username  string          `json:"username"`
	Role      userdomain.Role `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// Session is returned by a successful login.
type Session struct {
	Token     string          `json:"token"`
	Username  string          `json:"username"`
	Role      userdomain.Role `json:"role"`
	ExpiresAt time.Time       `json:"expires_at"`
}
