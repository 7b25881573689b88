package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	userdomain "github.com/Black-And-White-Club/chainchaser/app/modules/user/domain"
	userjwt "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/chainchaser/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/chainchaser/app/shared/attr"
	"github.com/Black-And-White-Club/chainchaser/app/shared/observability"
	"github.com/Black-And-White-Club/chainchaser/app/shared/operation"
	"github.com/Black-And-White-Club/chainchaser/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

const serviceName = "UserService"

// Config holds session settings.
type Config struct {
	TokenTTL time.Duration
}

// UserService implements the Service interface.
type UserService struct {
	repo   userdb.Repository
	tokens userjwt.Provider
	config Config
	logger *slog.Logger
	deps   operation.Deps
	db     *bun.DB
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	tokens userjwt.Provider,
	config Config,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &UserService{
		repo:   repo,
		tokens: tokens,
		config: config,
		logger: logger,
		deps: operation.Deps{
			Service: serviceName,
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
		},
		db: db,
	}
}

// Signup creates a player account.
func (s *UserService) Signup(ctx context.Context, username, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	return operation.Unwrap(operation.Run(ctx, s.deps, "Signup", username, func(ctx context.Context) (results.OperationResult[*Account, error], error) {
		return operation.InTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*Account, error], error) {
			return s.signupLogic(ctx, db, username, password)
		})
	}))
}

func (s *UserService) signupLogic(ctx context.Context, db bun.IDB, username, password string) (results.OperationResult[*Account, error], error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return results.FailureResult[*Account, error](ErrPasswordTooLong), nil
		}
		return results.OperationResult[*Account, error]{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &userdb.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         userdomain.RolePlayer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, db, user); err != nil {
		if errors.Is(err, userdb.ErrUsernameExists) {
			return results.FailureResult[*Account, error](ErrUsernameTaken), nil
		}
		return results.OperationResult[*Account, error]{}, fmt.Errorf("failed to create user: %w", err)
	}

	return results.SuccessResult[*Account, error](toAccount(user)), nil
}

// Login verifies the password hash and signs a session token.
func (s *UserService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	return operation.Unwrap(operation.Run(ctx, s.deps, "Login", username, func(ctx context.Context) (results.OperationResult[*Session, error], error) {
		return s.loginLogic(ctx, username, password)
	}))
}

func (s *UserService) loginLogic(ctx context.Context, username, password string) (results.OperationResult[*Session, error], error) {
	user, err := s.repo.GetByUsername(ctx, nil, username)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*Session, error](ErrInvalidCredentials), nil
		}
		return results.OperationResult[*Session, error]{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return results.FailureResult[*Session, error](ErrInvalidCredentials), nil
	}

	token, expiresAt, err := s.tokens.GenerateToken(&userdomain.Claims{
		Username: user.Username,
		Role:     user.Role,
	}, s.config.TokenTTL)
	if err != nil {
		return results.OperationResult[*Session, error]{}, fmt.Errorf("failed to issue session: %w", err)
	}

	return results.SuccessResult[*Session, error](&Session{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}), nil
}

// Authenticate validates a session token. It does not hit the database.
func (s *UserService) Authenticate(ctx context.Context, token string) (*userdomain.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		s.logger.DebugContext(ctx, "Session token rejected", attr.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// CurrentRole reads the account's stored role, which may differ from the
// role in an older session token.
func (s *UserService) CurrentRole(ctx context.Context, username string) (userdomain.Role, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "CurrentRole", username, func(ctx context.Context) (results.OperationResult[userdomain.Role, error], error) {
		user, err := s.repo.GetByUsername(ctx, nil, username)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return results.FailureResult[userdomain.Role, error](ErrUserNotFound), nil
			}
			return results.OperationResult[userdomain.Role, error]{}, fmt.Errorf("failed to load role: %w", err)
		}
		return results.SuccessResult[userdomain.Role, error](user.Role), nil
	}))
}

// Promote grants the developer role.
func (s *UserService) Promote(ctx context.Context, username string) (*Account, error) {
	return operation.Unwrap(operation.Run(ctx, s.deps, "Promote", username, func(ctx context.Context) (results.OperationResult[*Account, error], error) {
		return operation.InTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*Account, error], error) {
			return s.promoteLogic(ctx, db, username)
		})
	}))
}

func (s *UserService) promoteLogic(ctx context.Context, db bun.IDB, username string) (results.OperationResult[*Account, error], error) {
	if err := s.repo.UpdateRole(ctx, db, username, userdomain.RoleDeveloper); err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*Account, error](ErrUserNotFound), nil
		}
		return results.OperationResult[*Account, error]{}, fmt.Errorf("failed to promote user: %w", err)
	}

	user, err := s.repo.GetByUsername(ctx, db, username)
	if err != nil {
		return results.OperationResult[*Account, error]{}, fmt.Errorf("failed to reload user: %w", err)
	}
	return results.SuccessResult[*Account, error](toAccount(user)), nil
}

// EnsureDevelopers promotes the configured developer accounts. Accounts that
// do not exist yet are skipped with a warning.
func (s *UserService) EnsureDevelopers(ctx context.Context, usernames []string) error {
	for _, name := range usernames {
		if _, err := s.Promote(ctx, name); err != nil {
			if errors.Is(err, ErrUserNotFound) {
				s.logger.WarnContext(ctx, "Configured developer has no account yet", attr.Username(name))
				continue
			}
			return err
		}
	}
	return nil
}

func toAccount(u *userdb.User) *Account {
	return &Account{
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
