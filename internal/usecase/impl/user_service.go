package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *userService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *userService) UpdatePushToken(ctx context.Context, userID, token string) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to find user")
	}

	user.PushToken = strings.TrimSpace(token)

	return errors.Wrap(srv.userRepo.Update(ctx, user), "failed to update push token")
}

// DeleteAccount checks restricting references first so the caller gets a clear answer;
// the foreign keys still reject the delete if a dependent appears in between.
func (srv *userService) DeleteAccount(ctx context.Context, userID string) error {
	dependents, err := srv.userRepo.CountDependents(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to count user dependents")
	}
	if dependents > 0 {
		return domainerrors.ErrUserHasDependents.WithDetails(strconv.FormatInt(dependents, 10) + " dependent records")
	}

	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("User deleted", slog.String("user_id", userID))

	return nil
}
