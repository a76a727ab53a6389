package repository

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockConversationRepository is a mock of repository.ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// NewMockConversationRepository creates the mock and asserts its expectations on cleanup
func NewMockConversationRepository(t mockT) *MockConversationRepository {
	m := &MockConversationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	return m.Called(ctx, conversation).Error(0)
}

func (m *MockConversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.Conversation); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockConversationRepository) FindByPair(ctx context.Context, user1ID, user2ID string) (*entity.Conversation, error) {
	args := m.Called(ctx, user1ID, user2ID)
	if v, ok := args.Get(0).(*entity.Conversation); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockConversationRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]*entity.Conversation); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockConversationRepository) UpdateLastMessage(ctx context.Context, id uuid.UUID, senderID, content string, at time.Time) error {
	return m.Called(ctx, id, senderID, content, at).Error(0)
}

func (m *MockConversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockMessageRepository is a mock of repository.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// NewMockMessageRepository creates the mock and asserts its expectations on cleanup
func NewMockMessageRepository(t mockT) *MockMessageRepository {
	m := &MockMessageRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *MockMessageRepository) FindByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*entity.Message, error) {
	args := m.Called(ctx, conversationID, limit)
	if v, ok := args.Get(0).([]*entity.Message); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, receiverID string, at time.Time) (int64, error) {
	args := m.Called(ctx, conversationID, receiverID, at)

	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a mock of repository.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

// NewMockNotificationRepository creates the mock and asserts its expectations on cleanup
func NewMockNotificationRepository(t mockT) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.UserNotification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserNotification, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*entity.UserNotification); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*entity.UserNotification, error) {
	args := m.Called(ctx, userID, limit)
	if v, ok := args.Get(0).([]*entity.UserNotification); ok {
		return v, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *entity.UserNotification) error {
	return m.Called(ctx, notification).Error(0)
}
