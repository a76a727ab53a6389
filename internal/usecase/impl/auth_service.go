// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const minPasswordLength = 8

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account and signs the new user in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	userName := strings.TrimSpace(input.UserName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if userName == "" || email == "" {
		return nil, domainerrors.NewValidationError("username and email are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domainerrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		ID:           uuid.NewString(),
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		IsHost:       input.IsHost,
		IsActive:     true,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID), slog.Bool("is_host", user.IsHost))

	return srv.issueTokens(user)
}

// Login verifies the credentials and issues a token pair.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByUserName(ctx, strings.TrimSpace(input.UserName))
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("user_id", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}
	if srv.hasher.NeedsRehash(user.PasswordHash) {
		srv.upgradePassword(ctx, user, input.Password)
	}

	return srv.issueTokens(user)
}

// upgradePassword re-hashes with the configured cost. Failures only cost the
// upgrade, never the login.
func (srv *authService) upgradePassword(ctx context.Context, user *entity.User, password string) {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Warn("Password rehash failed", slog.String("user_id", user.ID), slog.Any("error", err))

		return
	}

	previous := user.PasswordHash
	user.PasswordHash = hash
	if err := srv.userRepo.Update(ctx, user); err != nil {
		user.PasswordHash = previous
		srv.log(ctx).Warn("Password rehash not saved", slog.String("user_id", user.ID), slog.Any("error", err))
	}
}

// Refresh exchanges a valid refresh token for a new pair. Roles are reloaded from the user record.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage(err.Error())
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID())
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrUserInactive
	}

	return srv.issueTokens(user)
}

func (srv *authService) issueTokens(user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.UserName, user.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(srv.tokenService.AccessTokenDuration().Seconds()),
		User:         user,
	}, nil
}
