package userdomain

import (
	"context"
	"time"
)

// Claims represents the domain model for session claims.
type Claims struct {
	Username  string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// HasRole reports whether the claims carry role.
func (c *Claims) HasRole(role Role) bool {
	return c != nil && c.Role == role
}

type claimsKey struct{}

// WithClaims stores the authenticated claims on ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
