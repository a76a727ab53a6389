package usecase

import (
	"context"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// StartConversationInput opens a thread with another user.
type StartConversationInput struct {
	OtherUserID string
	HomestayID  *uuid.UUID
	BookingID   *uuid.UUID
}

// ConversationUsecase manages direct messaging. Only the two participants may access a thread.
type ConversationUsecase interface {
	// Start returns the existing thread between the two users or creates one.
	Start(ctx context.Context, callerID string, input *StartConversationInput) (*entity.Conversation, error)
	List(ctx context.Context, userID string) ([]*entity.Conversation, error)
	Messages(ctx context.Context, callerID string, conversationID uuid.UUID, limit int) ([]*entity.Message, error)
	Send(ctx context.Context, callerID string, conversationID uuid.UUID, content string) (*entity.Message, error)
	MarkRead(ctx context.Context, callerID string, conversationID uuid.UUID) (int64, error)
	Delete(ctx context.Context, callerID string, conversationID uuid.UUID) error
}
