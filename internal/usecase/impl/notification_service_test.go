package impl

import (
	"context"
	"testing"

	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/errors"
	mockRepo "homestay/internal/mocks/repository"
	mockSvc "homestay/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationFixtures struct {
	service   *notificationService
	factory   *mockRepo.RepositoryFactory
	publisher *mockSvc.MockEventPublisher
	notifier  *mockSvc.MockPushNotifier
}

func newNotificationFixtures(t *testing.T) notificationFixtures {
	tx, factory := newTx(t)
	f := notificationFixtures{
		factory:   factory,
		publisher: mockSvc.NewMockEventPublisher(t),
		notifier:  mockSvc.NewMockPushNotifier(t),
	}
	f.service = NewNotificationService(NotificationServiceParams{
		TxManager:        tx,
		UserRepo:         factory.Users,
		NotificationRepo: factory.Notifications,
		Publisher:        f.publisher,
		Notifier:         f.notifier,
		Logger:           newDiscardLogger(),
	}).(*notificationService)
	f.service.now = fixedClock(date(2026, 5, 2))

	return f
}

func TestNotificationService_RequestConnection(t *testing.T) {
	f := newNotificationFixtures(t)
	ctx := context.Background()

	f.factory.Users.On("FindByID", ctx, "alice").Return(&entity.User{ID: "alice", UserName: "alice", FullName: "Alice Nguyen"}, nil)
	f.factory.Users.On("FindByID", ctx, "bob").Return(&entity.User{ID: "bob", PushToken: "bob-device"}, nil)
	f.factory.Notifications.On("Create", ctx, mock.MatchedBy(func(n *entity.UserNotification) bool {
		return n.UserID == "bob" && *n.RequesterID == "alice" && n.Status == entity.NotificationStatusPending &&
			n.Content == "Alice Nguyen would like to chat with you"
	})).Return(nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)
	f.notifier.On("Push", ctx, "bob-device", "Connection request", mock.Anything, mock.Anything).Return(nil)

	notification, err := f.service.RequestConnection(ctx, "alice", "bob", "")

	require.NoError(t, err)
	assert.Equal(t, entity.NotificationTypeConnectionRequest, notification.Type)
}

func TestNotificationService_Accept_CreatesConversation(t *testing.T) {
	f := newNotificationFixtures(t)
	ctx := context.Background()
	requester := "alice"
	notification := &entity.UserNotification{ID: uuid.New(), UserID: "bob", RequesterID: &requester, Status: entity.NotificationStatusPending}

	f.factory.Notifications.On("FindByID", ctx, notification.ID).Return(notification, nil)
	f.factory.Conversations.On("FindByPair", ctx, mock.Anything, mock.Anything).Return(nil, domainerrors.ErrConversationNotFound)
	f.factory.Conversations.On("Create", ctx, mock.MatchedBy(func(c *entity.Conversation) bool {
		return c.User1ID == "alice" && c.User2ID == "bob"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Conversation).ID = uuid.New()
	}).Return(nil)
	f.factory.Notifications.On("Update", ctx, mock.MatchedBy(func(n *entity.UserNotification) bool {
		return n.Status == entity.NotificationStatusAccepted && n.ConversationID != nil && n.RespondedAt != nil
	})).Return(nil)
	f.publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

	conversation, err := f.service.Accept(ctx, "bob", notification.ID)

	require.NoError(t, err)
	assert.Equal(t, *notification.ConversationID, conversation.ID)
}

func TestNotificationService_AnswerRules(t *testing.T) {
	ctx := context.Background()

	t.Run("already answered", func(t *testing.T) {
		f := newNotificationFixtures(t)
		n := &entity.UserNotification{ID: uuid.New(), UserID: "bob", Status: entity.NotificationStatusDeclined}
		f.factory.Notifications.On("FindByID", ctx, n.ID).Return(n, nil)

		err := f.service.Decline(ctx, "bob", n.ID)

		assert.True(t, errors.Is(err, domainerrors.ErrNotificationHandled))
	})

	t.Run("someone else's", func(t *testing.T) {
		f := newNotificationFixtures(t)
		n := &entity.UserNotification{ID: uuid.New(), UserID: "bob", Status: entity.NotificationStatusPending}
		f.factory.Notifications.On("FindByID", ctx, n.ID).Return(n, nil)

		_, err := f.service.Accept(ctx, "mallory", n.ID)

		assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
	})

	t.Run("requester deleted", func(t *testing.T) {
		f := newNotificationFixtures(t)
		n := &entity.UserNotification{ID: uuid.New(), UserID: "bob", Status: entity.NotificationStatusPending}
		f.factory.Notifications.On("FindByID", ctx, n.ID).Return(n, nil)

		_, err := f.service.Accept(ctx, "bob", n.ID)

		assert.Equal(t, domainerrors.KindInvalidOperation, domainerrors.KindOf(err))
	})
}
