package postgres

import (
	"context"
	"encoding/json"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create persists a notification for its recipient.
func (repo *notificationRepository) Create(ctx context.Context, notification *entity.UserNotification) error {
	notificationM, err := fromNotificationDomain(notification)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid notification recipient")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

func (repo *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserNotification, error) {
	var notificationM model.UserNotificationModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&notificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification by id")
	}

	return toNotificationDomain(&notificationM)
}

// FindByUser returns the recipient's notifications, newest first.
func (repo *notificationRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*entity.UserNotification, error) {
	query := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notificationModels []*model.UserNotificationModel
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find notifications by user")
	}

	notifications := make([]*entity.UserNotification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notification, err := toNotificationDomain(notificationM)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// Update saves the response state of a notification.
func (repo *notificationRepository) Update(ctx context.Context, notification *entity.UserNotification) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserNotificationModel{}).
		Where("id = ?", notification.ID).
		Updates(map[string]any{
			"status":          string(notification.Status),
			"is_read":         notification.IsRead,
			"conversation_id": notification.ConversationID,
			"responded_at":    notification.RespondedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update notification")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotificationNotFound
	}

	return nil
}

func toNotificationDomain(data *model.UserNotificationModel) (*entity.UserNotification, error) {
	metadata := map[string]string{}
	if len(data.Metadata) > 0 {
		if err := json.Unmarshal(data.Metadata, &metadata); err != nil {
			return nil, errors.Wrap(err, "failed to decode notification metadata")
		}
	}

	return &entity.UserNotification{
		ID:              data.ID,
		UserID:          data.UserID,
		RequesterID:     data.RequesterID,
		RequesterName:   data.RequesterName,
		RequesterAvatar: data.RequesterAvatar,
		Type:            entity.NotificationType(data.Type),
		Title:           data.Title,
		Content:         data.Content,
		Status:          entity.NotificationStatus(data.Status),
		IsRead:          data.IsRead,
		ConversationID:  data.ConversationID,
		Metadata:        metadata,
		CreatedAt:       data.CreatedAt,
		RespondedAt:     data.RespondedAt,
	}, nil
}

func fromNotificationDomain(data *entity.UserNotification) (*model.UserNotificationModel, error) {
	var metadata datatypes.JSON
	if len(data.Metadata) > 0 {
		raw, err := json.Marshal(data.Metadata)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode notification metadata")
		}
		metadata = datatypes.JSON(raw)
	}

	return &model.UserNotificationModel{
		ID:              data.ID,
		UserID:          data.UserID,
		RequesterID:     data.RequesterID,
		RequesterName:   data.RequesterName,
		RequesterAvatar: data.RequesterAvatar,
		Type:            string(data.Type),
		Title:           data.Title,
		Content:         data.Content,
		Status:          string(data.Status),
		IsRead:          data.IsRead,
		ConversationID:  data.ConversationID,
		Metadata:        metadata,
		RespondedAt:     data.RespondedAt,
	}, nil
}
