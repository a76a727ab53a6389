package usecase

import (
	"context"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase manages user notifications and connection requests.
type NotificationUsecase interface {
	List(ctx context.Context, userID string, limit int) ([]*entity.UserNotification, error)

	// RequestConnection asks targetUserID to start a conversation with the requester.
	RequestConnection(ctx context.Context, requesterID, targetUserID, message string) (*entity.UserNotification, error)

	// Accept answers a pending request and links the resulting conversation.
	Accept(ctx context.Context, callerID string, id uuid.UUID) (*entity.Conversation, error)

	Decline(ctx context.Context, callerID string, id uuid.UUID) error
}
