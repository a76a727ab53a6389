package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/domain/entity"
	"homestay/internal/domain/service"

	"github.com/google/uuid"
)

// outbox publishes domain events and push notifications after a write has
// committed. Delivery failures are logged and never fail the request.
type outbox struct {
	publisher service.EventPublisher
	notifier  service.PushNotifier
	logger    *slog.Logger
}

func newOutbox(publisher service.EventPublisher, notifier service.PushNotifier, logger *slog.Logger) *outbox {
	return &outbox{publisher: publisher, notifier: notifier, logger: logger}
}

func (o *outbox) publish(ctx context.Context, eventType, aggregateID string, userIDs []string, attributes map[string]string) {
	if o.publisher == nil {
		return
	}

	event := &service.DomainEvent{
		ID:          uuid.NewString(),
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		AggregateID: aggregateID,
		UserIDs:     userIDs,
		Attributes:  attributes,
		OccurredAt:  time.Now().UTC(),
	}
	if err := o.publisher.PublishEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, o.logger).WarnContext(ctx, "Failed to publish event",
			slog.String("type", eventType),
			slog.String("aggregate_id", aggregateID),
			slog.Any("error", err),
		)
	}
}

func (o *outbox) push(ctx context.Context, user *entity.User, title, body string, data map[string]string) {
	if o.notifier == nil || user == nil || user.PushToken == "" {
		return
	}

	if err := o.notifier.Push(ctx, user.PushToken, title, body, data); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, o.logger).WarnContext(ctx, "Failed to push notification",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
