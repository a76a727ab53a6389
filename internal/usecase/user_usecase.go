// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"homestay/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open an account.
type RegisterInput struct {
	UserName string
	Email    string
	Password string
	FullName string
	IsHost   bool
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	UserName string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the generated tokens after registration, login or refresh.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
	User         *entity.User
}

// AuthUsecase defines account creation and token issuance.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)
}

// UserUsecase defines operations on the caller's own account.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)

	// UpdatePushToken stores the device token; an empty token disables push.
	UpdatePushToken(ctx context.Context, userID, token string) error

	// DeleteAccount removes the user. Fails while bookings, payments, listings or messages reference them.
	DeleteAccount(ctx context.Context, userID string) error
}
