package repository

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// ConversationRepository persists conversations.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)

	// FindByPair looks the pair up exactly as stored (user1, user2).
	FindByPair(ctx context.Context, user1ID, user2ID string) (*entity.Conversation, error)

	// FindByUser lists conversations of a user, most recent activity first.
	FindByUser(ctx context.Context, userID string) ([]*entity.Conversation, error)

	UpdateLastMessage(ctx context.Context, id uuid.UUID, senderID, content string, at time.Time) error

	// Delete removes the conversation together with its messages.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository persists messages.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// FindByConversation returns messages oldest first.
	FindByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*entity.Message, error)

	// MarkRead marks every unread message addressed to receiverID as read.
	MarkRead(ctx context.Context, conversationID uuid.UUID, receiverID string, at time.Time) (int64, error)
}

// NotificationRepository persists user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.UserNotification) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserNotification, error)

	FindByUser(ctx context.Context, userID string, limit int) ([]*entity.UserNotification, error)

	Update(ctx context.Context, notification *entity.UserNotification) error
}
