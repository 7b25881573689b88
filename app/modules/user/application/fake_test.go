package userservice

import (
	"context"
	"time"

	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	userjwt "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	CreateFunc        func(ctx context.Context, db bun.IDB, user *userdb.User) error
	GetByUsernameFunc func(ctx context.Context, db bun.IDB, username string) (*userdb.User, error)
	UpdateRoleFunc    func(ctx context.Context, db bun.IDB, username string, role userdomain.Role) error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		trace: []string{},
	}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) Create(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepo) GetByUsername(ctx context.Context, db bun.IDB, username string) (*userdb.User, error) {
	f.record("GetByUsername")
	if f.GetByUsernameFunc != nil {
		return f.GetByUsernameFunc(ctx, db, username)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) UpdateRole(ctx context.Context, db bun.IDB, username string, role userdomain.Role) error {
	f.record("UpdateRole")
	if f.UpdateRoleFunc != nil {
		return f.UpdateRoleFunc(ctx, db, username, role)
	}
	return nil
}

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ userdb.Repository = (*FakeUserRepo)(nil)

// ------------------------
// Fake Token Provider
// ------------------------

type FakeTokenProvider struct {
	GenerateTokenFunc func(claims *userdomain.Claims, ttl time.Duration) (string, time.Time, error)
	ValidateTokenFunc func(token string) (*userdomain.Claims, error)
}

func (f *FakeTokenProvider) GenerateToken(claims *userdomain.Claims, ttl time.Duration) (string, time.Time, error) {
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(claims, ttl)
	}
	return "token-" + claims.Username, time.Now().Add(ttl), nil
}

func (f *FakeTokenProvider) ValidateToken(token string) (*userdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(token)
	}
	return nil, userjwt.ErrInvalidToken
}

var _ userjwt.Provider = (*FakeTokenProvider)(nil)
