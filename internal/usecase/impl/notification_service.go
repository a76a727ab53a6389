package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const defaultNotificationLimit = 50

type notificationService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	outbox           *outbox
	now              func() time.Time
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	Publisher        service.EventPublisher
	Notifier         service.PushNotifier
	Logger           *slog.Logger
}

// NewNotificationService creates the notification use case
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		notificationRepo: params.NotificationRepo,
		outbox:           newOutbox(params.Publisher, params.Notifier, params.Logger),
		now:              time.Now,
	}
}

func (s *notificationService) List(ctx context.Context, userID string, limit int) ([]*entity.UserNotification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	notifications, err := s.notificationRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// RequestConnection files a pending request in the target's inbox and pushes it to their device.
func (s *notificationService) RequestConnection(ctx context.Context, requesterID, targetUserID, message string) (*entity.UserNotification, error) {
	if targetUserID == "" || targetUserID == requesterID {
		return nil, domainerrors.NewValidationError("userId must name another user")
	}

	requester, err := s.userRepo.FindByID(ctx, requesterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find requester")
	}
	target, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	name := requester.FullName
	if name == "" {
		name = requester.UserName
	}
	content := strings.TrimSpace(message)
	if content == "" {
		content = name + " would like to chat with you"
	}

	notification := &entity.UserNotification{
		UserID:          target.ID,
		RequesterID:     &requester.ID,
		RequesterName:   name,
		RequesterAvatar: requester.AvatarURL,
		Type:            entity.NotificationTypeConnectionRequest,
		Title:           "Connection request",
		Content:         content,
		Status:          entity.NotificationStatusPending,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to create notification")
	}

	s.outbox.publish(ctx, service.EventNotificationCreated, notification.ID.String(), []string{target.ID}, map[string]string{
		"type": string(notification.Type),
	})
	s.outbox.push(ctx, target, notification.Title, notification.Content, map[string]string{
		"type":            string(notification.Type),
		"notification_id": notification.ID.String(),
	})

	return notification, nil
}

// Accept links the request to a conversation between the two users, creating it when needed.
func (s *notificationService) Accept(ctx context.Context, callerID string, id uuid.UUID) (*entity.Conversation, error) {
	var conversation *entity.Conversation
	var notification *entity.UserNotification
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		notification, err = s.pending(ctx, repoFactory.NewNotificationRepository(), callerID, id)
		if err != nil {
			return err
		}
		if notification.RequesterID == nil {
			return domainerrors.ErrInvalidOperation.WrapMessage("requester no longer exists")
		}

		conversationRepo := repoFactory.NewConversationRepository()
		conversation, err = findPair(ctx, conversationRepo, *notification.RequesterID, callerID)
		if errors.Is(err, domainerrors.ErrConversationNotFound) {
			conversation = &entity.Conversation{User1ID: *notification.RequesterID, User2ID: callerID}
			err = conversationRepo.Create(ctx, conversation)
		}
		if err != nil {
			return err
		}

		respondedAt := s.now().UTC()
		notification.Status = entity.NotificationStatusAccepted
		notification.IsRead = true
		notification.ConversationID = &conversation.ID
		notification.RespondedAt = &respondedAt

		return repoFactory.NewNotificationRepository().Update(ctx, notification)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to accept request")
	}

	s.answered(ctx, notification)

	return conversation, nil
}

func (s *notificationService) Decline(ctx context.Context, callerID string, id uuid.UUID) error {
	notification, err := s.pending(ctx, s.notificationRepo, callerID, id)
	if err != nil {
		return errors.Wrap(err, "failed to decline request")
	}

	respondedAt := s.now().UTC()
	notification.Status = entity.NotificationStatusDeclined
	notification.IsRead = true
	notification.RespondedAt = &respondedAt
	if err := s.notificationRepo.Update(ctx, notification); err != nil {
		return errors.Wrap(err, "failed to decline request")
	}

	s.answered(ctx, notification)

	return nil
}

// pending loads a notification addressed to the caller that still awaits an answer.
func (s *notificationService) pending(ctx context.Context, repo repository.NotificationRepository, callerID string, id uuid.UUID) (*entity.UserNotification, error) {
	notification, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.UserID != callerID {
		return nil, domainerrors.ErrNotificationNotFound
	}
	if !notification.IsActionable() {
		return nil, domainerrors.ErrNotificationHandled
	}

	return notification, nil
}

func (s *notificationService) answered(ctx context.Context, notification *entity.UserNotification) {
	userIDs := []string{notification.UserID}
	if notification.RequesterID != nil {
		userIDs = append(userIDs, *notification.RequesterID)
	}

	s.outbox.publish(ctx, service.EventNotificationAnswered, notification.ID.String(), userIDs, map[string]string{
		"status":      string(notification.Status),
		"answered_by": notification.UserID,
	})
}
