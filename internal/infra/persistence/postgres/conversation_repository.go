package postgres

import (
	"context"
	"time"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// conversationRepository implements the repository.ConversationRepository interface.
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository is the constructor for conversationRepository.
func NewConversationRepository(db *gorm.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (repo *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	conversationM := &model.ConversationModel{
		ID:         conversation.ID,
		User1ID:    conversation.User1ID,
		User2ID:    conversation.User2ID,
		HomestayID: conversation.HomestayID,
		BookingID:  conversation.BookingID,
	}

	if err := repo.db.WithContext(ctx).Create(conversationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConversationExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid conversation participant")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create conversation")
	}

	conversation.ID = conversationM.ID
	conversation.CreatedAt = conversationM.CreatedAt

	return nil
}

func (repo *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var conversationM model.ConversationModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&conversationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrConversationNotFound
		}

		return nil, errors.Wrap(err, "failed to find conversation by id")
	}

	return toConversationDomain(&conversationM), nil
}

// FindByPair looks the pair up exactly as stored.
func (repo *conversationRepository) FindByPair(ctx context.Context, user1ID, user2ID string) (*entity.Conversation, error) {
	var conversationM model.ConversationModel
	if err := repo.db.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		First(&conversationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrConversationNotFound
		}

		return nil, errors.Wrap(err, "failed to find conversation by pair")
	}

	return toConversationDomain(&conversationM), nil
}

// FindByUser lists conversations of a user, most recent activity first.
func (repo *conversationRepository) FindByUser(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var conversationModels []*model.ConversationModel
	if err := repo.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("COALESCE(last_message_at, created_at) DESC").
		Find(&conversationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find conversations by user")
	}

	conversations := make([]*entity.Conversation, 0, len(conversationModels))
	for _, conversationM := range conversationModels {
		conversations = append(conversations, toConversationDomain(conversationM))
	}

	return conversations, nil
}

func (repo *conversationRepository) UpdateLastMessage(ctx context.Context, id uuid.UUID, senderID, content string, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ConversationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_message":           content,
			"last_message_at":        at,
			"last_message_sender_id": senderID,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update conversation")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConversationNotFound
	}

	return nil
}

// Delete removes the conversation together with its messages.
func (repo *conversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ConversationModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete conversation")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConversationNotFound
	}

	return nil
}

// toConversationDomain converts a GORM ConversationModel to a domain Conversation entity.
func toConversationDomain(data *model.ConversationModel) *entity.Conversation {
	if data == nil {
		return nil
	}

	return &entity.Conversation{
		ID:                  data.ID,
		User1ID:             data.User1ID,
		User2ID:             data.User2ID,
		HomestayID:          data.HomestayID,
		BookingID:           data.BookingID,
		LastMessage:         data.LastMessage,
		LastMessageAt:       data.LastMessageAt,
		LastMessageSenderID: data.LastMessageSenderID,
		CreatedAt:           data.CreatedAt,
	}
}

// messageRepository implements the repository.MessageRepository interface.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	messageM := &model.MessageModel{
		ID:             message.ID,
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		ReceiverID:     message.ReceiverID,
		HomestayID:     message.HomestayID,
		BookingID:      message.BookingID,
		Content:        message.Content,
		IsRead:         message.IsRead,
		SentAt:         message.SentAt,
		ReadAt:         message.ReadAt,
	}

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrConversationNotFound.WrapMessage("invalid message reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create message")
	}

	message.ID = messageM.ID

	return nil
}

// FindByConversation returns the latest messages, oldest first.
func (repo *messageRepository) FindByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]*entity.Message, error) {
	query := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messageModels []*model.MessageModel
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find messages by conversation")
	}

	messages := make([]*entity.Message, len(messageModels))
	for i, messageM := range messageModels {
		messages[len(messageModels)-1-i] = &entity.Message{
			ID:             messageM.ID,
			ConversationID: messageM.ConversationID,
			SenderID:       messageM.SenderID,
			ReceiverID:     messageM.ReceiverID,
			HomestayID:     messageM.HomestayID,
			BookingID:      messageM.BookingID,
			Content:        messageM.Content,
			IsRead:         messageM.IsRead,
			SentAt:         messageM.SentAt,
			ReadAt:         messageM.ReadAt,
		}
	}

	return messages, nil
}

// MarkRead marks every unread message addressed to receiverID as read.
func (repo *messageRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, receiverID string, at time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.MessageModel{}).
		Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversationID, receiverID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": at,
		})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark messages read")
	}

	return result.RowsAffected, nil
}
