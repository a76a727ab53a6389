package postgres

import (
	"context"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUserName retrieves a single user by login name.
func (repo *userRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("user_name = ?", userName).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by user name")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update saves the mutable profile fields of an existing user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"full_name":     user.FullName,
			"phone_number":  user.PhoneNumber,
			"avatar_url":    user.AvatarURL,
			"push_token":    user.PushToken,
			"is_host":       user.IsHost,
			"is_admin":      user.IsAdmin,
			"is_active":     user.IsActive,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

// CountDependents counts the rows that reference the user through a restricting key.
func (repo *userRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	db := repo.db.WithContext(ctx)
	counts := []struct {
		model any
		query string
		args  []any
	}{
		{&model.HomestayModel{}, "host_id = ?", []any{id}},
		{&model.BookingModel{}, "user_id = ?", []any{id}},
		{&model.PaymentModel{}, "user_id = ?", []any{id}},
		{&model.ConversationModel{}, "user1_id = ? OR user2_id = ?", []any{id, id}},
		{&model.MessageModel{}, "sender_id = ? OR receiver_id = ?", []any{id, id}},
	}

	var total int64
	for _, c := range counts {
		var n int64
		if err := db.Model(c.model).Where(c.query, c.args...).Count(&n).Error; err != nil {
			return 0, errors.Wrap(err, "failed to count user dependents")
		}
		total += n
	}

	return total, nil
}

// Delete removes the user. Notifications addressed to the user go with it;
// promotions and notifications that merely mention the user lose the reference.
func (repo *userRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrUserHasDependents
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		UserName:     data.UserName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		PhoneNumber:  data.PhoneNumber,
		AvatarURL:    data.AvatarURL,
		PushToken:    data.PushToken,
		IsHost:       data.IsHost,
		IsAdmin:      data.IsAdmin,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		UserName:     data.UserName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		PhoneNumber:  data.PhoneNumber,
		AvatarURL:    data.AvatarURL,
		PushToken:    data.PushToken,
		IsHost:       data.IsHost,
		IsAdmin:      data.IsAdmin,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
