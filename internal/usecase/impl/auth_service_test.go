package impl

import (
	"context"
	"testing"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	mockRepo "homestay/internal/mocks/repository"
	mockSvc "homestay/internal/mocks/service"
	"homestay/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixtures struct {
	service  usecase.AuthUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
	tokens   *mockSvc.MockTokenService
}

func newAuthFixtures(t *testing.T) authFixtures {
	f := authFixtures{
		userRepo: mockRepo.NewMockUserRepository(t),
		hasher:   mockSvc.NewMockPasswordHasher(t),
		tokens:   mockSvc.NewMockTokenService(t),
	}
	f.service = NewAuthService(AuthServiceParams{
		UserRepo:     f.userRepo,
		Hasher:       f.hasher,
		TokenService: f.tokens,
		Logger:       newDiscardLogger(),
	})

	return f
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	f.hasher.On("Hash", "Password123").Return("hashed", nil)
	f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.UserName == "alice" && u.Email == "alice@example.com" && u.PasswordHash == "hashed" && u.IsHost && u.IsActive && u.ID != ""
	})).Return(nil)
	f.tokens.On("GenerateTokens", mock.AnythingOfType("string"), "alice", []string{"guest", "host"}).Return("access", "refresh", nil)
	f.tokens.On("AccessTokenDuration").Return(15 * time.Minute)

	out, err := f.service.Register(ctx, &usecase.RegisterInput{
		UserName: " alice ",
		Email:    "Alice@Example.com",
		Password: "Password123",
		IsHost:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "access", out.AccessToken)
	assert.Equal(t, "refresh", out.RefreshToken)
	assert.Equal(t, int64(900), out.ExpiresIn)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newAuthFixtures(t)

	_, err := f.service.Register(context.Background(), &usecase.RegisterInput{UserName: "bob", Email: "b@example.com", Password: "short"})

	assert.Equal(t, domainerrors.KindValidation, domainerrors.KindOf(err))
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	f := newAuthFixtures(t)
	ctx := context.Background()

	f.hasher.On("Hash", "Password123").Return("hashed", nil)
	f.userRepo.On("Create", ctx, mock.Anything).Return(domainerrors.ErrUserAlreadyExists)

	_, err := f.service.Register(ctx, &usecase.RegisterInput{UserName: "alice", Email: "a@example.com", Password: "Password123"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: "u1", UserName: "alice", PasswordHash: "hashed", IsActive: true}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixtures(t)
		f.userRepo.On("FindByUserName", ctx, "alice").Return(user, nil)
		f.hasher.On("Check", "secret", "hashed").Return(true)
		f.hasher.On("NeedsRehash", "hashed").Return(false)
		f.tokens.On("GenerateTokens", "u1", "alice", []string{"guest"}).Return("a", "r", nil)
		f.tokens.On("AccessTokenDuration").Return(time.Minute)

		out, err := f.service.Login(ctx, &usecase.LoginInput{UserName: "alice", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, user, out.User)
	})

	t.Run("upgrades an outdated hash", func(t *testing.T) {
		f := newAuthFixtures(t)
		stale := *user
		f.userRepo.On("FindByUserName", ctx, "alice").Return(&stale, nil)
		f.hasher.On("Check", "secret", "hashed").Return(true)
		f.hasher.On("NeedsRehash", "hashed").Return(true)
		f.hasher.On("Hash", "secret").Return("rehashed", nil)
		f.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.ID == "u1" && u.PasswordHash == "rehashed"
		})).Return(nil)
		f.tokens.On("GenerateTokens", "u1", "alice", []string{"guest"}).Return("a", "r", nil)
		f.tokens.On("AccessTokenDuration").Return(time.Minute)

		out, err := f.service.Login(ctx, &usecase.LoginInput{UserName: "alice", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "rehashed", out.User.PasswordHash)
	})

	t.Run("failed upgrade keeps the login", func(t *testing.T) {
		f := newAuthFixtures(t)
		stale := *user
		f.userRepo.On("FindByUserName", ctx, "alice").Return(&stale, nil)
		f.hasher.On("Check", "secret", "hashed").Return(true)
		f.hasher.On("NeedsRehash", "hashed").Return(true)
		f.hasher.On("Hash", "secret").Return("rehashed", nil)
		f.userRepo.On("Update", ctx, mock.Anything).Return(errors.New("db down"))
		f.tokens.On("GenerateTokens", "u1", "alice", []string{"guest"}).Return("a", "r", nil)
		f.tokens.On("AccessTokenDuration").Return(time.Minute)

		out, err := f.service.Login(ctx, &usecase.LoginInput{UserName: "alice", Password: "secret"})

		require.NoError(t, err)
		assert.Equal(t, "hashed", out.User.PasswordHash)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixtures(t)
		f.userRepo.On("FindByUserName", ctx, "ghost").Return(nil, domainerrors.ErrUserNotFound)

		_, err := f.service.Login(ctx, &usecase.LoginInput{UserName: "ghost", Password: "secret"})

		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixtures(t)
		f.userRepo.On("FindByUserName", ctx, "alice").Return(user, nil)
		f.hasher.On("Check", "wrong", "hashed").Return(false)

		_, err := f.service.Login(ctx, &usecase.LoginInput{UserName: "alice", Password: "wrong"})

		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})

	t.Run("inactive", func(t *testing.T) {
		f := newAuthFixtures(t)
		inactive := *user
		inactive.IsActive = false
		f.userRepo.On("FindByUserName", ctx, "alice").Return(&inactive, nil)
		f.hasher.On("Check", "secret", "hashed").Return(true)

		_, err := f.service.Login(ctx, &usecase.LoginInput{UserName: "alice", Password: "secret"})

		assert.True(t, errors.Is(err, domainerrors.ErrUserInactive))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixtures(t)

	claims := &service.Claims{UserName: "alice", Type: service.TokenTypeRefresh}
	claims.Subject = "u1"
	f.tokens.On("ValidateRefreshToken", "good").Return(claims, nil)
	f.tokens.On("ValidateRefreshToken", "bad").Return(nil, errors.New("expired"))
	f.userRepo.On("FindByID", ctx, "u1").Return(&entity.User{ID: "u1", UserName: "alice", IsAdmin: true, IsActive: true}, nil)
	f.tokens.On("GenerateTokens", "u1", "alice", []string{"guest", "admin"}).Return("a2", "r2", nil)
	f.tokens.On("AccessTokenDuration").Return(time.Minute)

	out, err := f.service.Refresh(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "a2", out.AccessToken)

	_, err = f.service.Refresh(ctx, "bad")
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}
