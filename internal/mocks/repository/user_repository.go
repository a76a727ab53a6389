package repository

import (
	"context"

	"homestay/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates the mock and asserts its expectations on cleanup
func NewMockUserRepository(t mockT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	args := m.Called(ctx, userName)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) CountDependents(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func userArg(args mock.Arguments, i int) *entity.User {
	if v, ok := args.Get(i).(*entity.User); ok {
		return v
	}

	return nil
}
