package userhandlers

import (
	"context"

	userservice "github.com/Black-And-White-Club/chainchaser/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
)

// FakeService is a programmable userservice.Service.
type FakeService struct {
	SignupFunc           func(ctx context.Context, username, password string) (*userservice.Account, error)
	LoginFunc            func(ctx context.Context, username, password string) (*userservice.Session, error)
	AuthenticateFunc     func(ctx context.Context, token string) (*userdomain.Claims, error)
	CurrentRoleFunc      func(ctx context.Context, username string) (userdomain.Role, error)
	PromoteFunc          func(ctx context.Context, username string) (*userservice.Account, error)
	EnsureDevelopersFunc func(ctx context.Context, usernames []string) error
}

func (f *FakeService) Signup(ctx context.Context, username, password string) (*userservice.Account, error) {
	if f.SignupFunc != nil {
		return f.SignupFunc(ctx, username, password)
	}
	return &userservice.Account{Username: username, Role: userdomain.RolePlayer}, nil
}

func (f *FakeService) Login(ctx context.Context, username, password string) (*userservice.Session, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, username, password)
	}
	return nil, userservice.ErrInvalidCredentials
}

func (f *FakeService) Authenticate(ctx context.Context, token string) (*userdomain.Claims, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, token)
	}
	return nil, userservice.ErrInvalidToken
}

func (f *FakeService) CurrentRole(ctx context.Context, username string) (userdomain.Role, error) {
	if f.CurrentRoleFunc != nil {
		return f.CurrentRoleFunc(ctx, username)
	}
	return userdomain.RolePlayer, nil
}

func (f *FakeService) Promote(ctx context.Context, username string) (*userservice.Account, error) {
	if f.PromoteFunc != nil {
		return f.PromoteFunc(ctx, username)
	}
	return nil, userservice.ErrUserNotFound
}

func (f *FakeService) EnsureDevelopers(ctx context.Context, usernames []string) error {
	if f.EnsureDevelopersFunc != nil {
		return f.EnsureDevelopersFunc(ctx, usernames)
	}
	return nil
}

var _ userservice.Service = (*FakeService)(nil)
