package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/domain/service"
	"homestay/internal/errors"
	"homestay/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
	maxMessageLength    = 4000
	pushPreviewLength   = 100
)

type conversationService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	outbox           *outbox
	now              func() time.Time
}

// ConversationServiceParams holds dependencies for ConversationService, injected by Fx.
type ConversationServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	ConversationRepo repository.ConversationRepository
	MessageRepo      repository.MessageRepository
	Publisher        service.EventPublisher
	Notifier         service.PushNotifier
	Logger           *slog.Logger
}

// NewConversationService creates the messaging use case
func NewConversationService(params ConversationServiceParams) usecase.ConversationUsecase {
	return &conversationService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		conversationRepo: params.ConversationRepo,
		messageRepo:      params.MessageRepo,
		outbox:           newOutbox(params.Publisher, params.Notifier, params.Logger),
		now:              time.Now,
	}
}

// Start reuses a thread in either stored order before creating (caller, other).
func (srv *conversationService) Start(ctx context.Context, callerID string, input *usecase.StartConversationInput) (*entity.Conversation, error) {
	if input.OtherUserID == "" || input.OtherUserID == callerID {
		return nil, domainerrors.NewValidationError("otherUserId must name another user")
	}
	if _, err := srv.userRepo.FindByID(ctx, input.OtherUserID); err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	var conversation *entity.Conversation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		conversation, err = findPair(ctx, repoFactory.NewConversationRepository(), callerID, input.OtherUserID)
		if err == nil || !errors.Is(err, domainerrors.ErrConversationNotFound) {
			return err
		}

		conversation = &entity.Conversation{
			User1ID:    callerID,
			User2ID:    input.OtherUserID,
			HomestayID: input.HomestayID,
			BookingID:  input.BookingID,
		}

		return repoFactory.NewConversationRepository().Create(ctx, conversation)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start conversation")
	}

	return conversation, nil
}

// findPair looks the two users up in both stored orders.
func findPair(ctx context.Context, repo repository.ConversationRepository, a, b string) (*entity.Conversation, error) {
	conversation, err := repo.FindByPair(ctx, a, b)
	if !errors.Is(err, domainerrors.ErrConversationNotFound) {
		return conversation, err
	}

	return repo.FindByPair(ctx, b, a)
}

func (srv *conversationService) List(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	conversations, err := srv.conversationRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	return conversations, nil
}

func (srv *conversationService) Messages(ctx context.Context, callerID string, conversationID uuid.UUID, limit int) ([]*entity.Message, error) {
	if _, err := srv.participant(ctx, callerID, conversationID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}
	messages, err := srv.messageRepo.FindByConversation(ctx, conversationID, min(limit, maxMessageLimit))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}

	return messages, nil
}

// Send stores the message and the thread's last-message summary together.
func (srv *conversationService) Send(ctx context.Context, callerID string, conversationID uuid.UUID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domainerrors.NewValidationError("content is required")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, domainerrors.NewValidationError("content is too long")
	}

	conversation, err := srv.participant(ctx, callerID, conversationID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       callerID,
		ReceiverID:     conversation.OtherParticipant(callerID),
		HomestayID:     conversation.HomestayID,
		BookingID:      conversation.BookingID,
		Content:        content,
		SentAt:         srv.now().UTC(),
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewMessageRepository().Create(ctx, message); err != nil {
			return err
		}

		return repoFactory.NewConversationRepository().UpdateLastMessage(ctx, conversationID, callerID, content, message.SentAt)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to send message")
	}

	srv.outbox.publish(ctx, service.EventMessageSent, conversationID.String(), []string{callerID, message.ReceiverID}, map[string]string{
		"message_id": message.ID.String(),
	})
	if receiver, err := srv.userRepo.FindByID(ctx, message.ReceiverID); err == nil {
		srv.outbox.push(ctx, receiver, "New message", preview(content), map[string]string{
			"type":            string(entity.NotificationTypeNewMessage),
			"conversation_id": conversationID.String(),
		})
	}

	return message, nil
}

func (srv *conversationService) MarkRead(ctx context.Context, callerID string, conversationID uuid.UUID) (int64, error) {
	if _, err := srv.participant(ctx, callerID, conversationID); err != nil {
		return 0, err
	}

	count, err := srv.messageRepo.MarkRead(ctx, conversationID, callerID, srv.now().UTC())
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark messages read")
	}

	return count, nil
}

// Delete removes the thread and all of its messages.
func (srv *conversationService) Delete(ctx context.Context, callerID string, conversationID uuid.UUID) error {
	if _, err := srv.participant(ctx, callerID, conversationID); err != nil {
		return err
	}

	return errors.Wrap(srv.conversationRepo.Delete(ctx, conversationID), "failed to delete conversation")
}

func (srv *conversationService) participant(ctx context.Context, callerID string, conversationID uuid.UUID) (*entity.Conversation, error) {
	conversation, err := srv.conversationRepo.FindByID(ctx, conversationID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find conversation")
	}
	if !conversation.HasParticipant(callerID) {
		return nil, domainerrors.ErrNotParticipant
	}

	return conversation, nil
}

func preview(content string) string {
	if utf8.RuneCountInString(content) <= pushPreviewLength {
		return content
	}

	return string([]rune(content)[:pushPreviewLength]) + "…"
}
