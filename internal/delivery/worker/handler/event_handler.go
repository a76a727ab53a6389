// Package handler contains the handlers of the event worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"homestay/config"
	deliverycontext "homestay/internal/delivery/context"
	"homestay/internal/domain/constants"
	"homestay/internal/domain/entity"
	domainerrors "homestay/internal/domain/errors"
	"homestay/internal/domain/repository"
	"homestay/internal/domain/service"
	"homestay/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// pushBatchSize is the largest token batch a single multicast accepts.
const pushBatchSize = 500

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError marks failures Pub/Sub should redeliver.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// pushContent is what one event type sends to its recipients.
type pushContent struct {
	title string
	body  string
	// actorAttr names the attribute holding the user who caused the event; that user is not notified.
	actorAttr string
}

// EventHandler turns domain events delivered by Pub/Sub push into device
// notifications for events the API does not already push inline.
type EventHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	userRepo       repository.UserRepository
	notifier       service.PushNotifier
}

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	UserRepo repository.UserRepository
	Notifier service.PushNotifier
}

// NewEventHandler creates a new Pub/Sub push handler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &EventHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		userRepo:       params.UserRepo,
		notifier:       params.Notifier,
	}
}

// HandlePush acknowledges with 200 unless the failure is worth a redelivery,
// in which case it answers 503.
func (h *EventHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.DomainEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse domain event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	if err := h.Process(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process event",
			slog.String("event_id", event.ID),
			slog.String("type", event.Type),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}
	}

	return c.NoContent(http.StatusOK)
}

// Process pushes the event to every concerned user with a registered device.
func (h *EventHandler) Process(ctx context.Context, event *service.DomainEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	content, ok := contentFor(event)
	if !ok {
		logger.Debug("[Worker] No push for event type", slog.String("type", event.Type))

		return nil
	}

	recipients := recipientsOf(event, content.actorAttr)
	owners := make(map[string]*entity.User, len(recipients))
	tokens := make([]string, 0, len(recipients))
	for _, userID := range recipients {
		user, err := h.userRepo.FindByID(ctx, userID)
		if err != nil {
			if domainerrors.KindOf(err) == domainerrors.KindNotFound {
				continue
			}

			return newRetryableError(err)
		}
		if user.PushToken == "" {
			continue
		}
		if _, seen := owners[user.PushToken]; !seen {
			tokens = append(tokens, user.PushToken)
		}
		owners[user.PushToken] = user
	}

	if len(tokens) == 0 {
		logger.Info("[Worker] No devices to notify", slog.String("event_id", event.ID))

		return nil
	}

	data := map[string]string{
		"type":         event.Type,
		"aggregate_id": event.AggregateID,
	}

	var sent, failed int
	var invalid []string
	for start := 0; start < len(tokens); start += pushBatchSize {
		batch := tokens[start:min(start+pushBatchSize, len(tokens))]
		batchSent, batchFailed, batchInvalid, err := h.notifier.PushBatch(ctx, batch, content.title, content.body, data)
		if err != nil {
			return newRetryableError(err)
		}
		sent += batchSent
		failed += batchFailed
		invalid = append(invalid, batchInvalid...)
	}

	h.clearInvalidTokens(ctx, invalid, owners)

	logger.Info("[Worker] Event pushed",
		slog.String("event_id", event.ID),
		slog.String("type", event.Type),
		slog.Int("sent", sent),
		slog.Int("failed", failed),
		slog.Int("invalid_tokens", len(invalid)),
	)

	return nil
}

func (h *EventHandler) clearInvalidTokens(ctx context.Context, invalid []string, owners map[string]*entity.User) {
	for _, token := range invalid {
		user, ok := owners[token]
		if !ok {
			continue
		}
		user.PushToken = ""
		if err := h.userRepo.Update(ctx, user); err != nil {
			h.logger.Warn("[Worker] Failed to clear invalid push token",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}
}

func contentFor(event *service.DomainEvent) (pushContent, bool) {
	switch event.Type {
	case service.EventBookingCancelled:
		return pushContent{
			title:     "Booking cancelled",
			body:      "A booking you are part of has been cancelled.",
			actorAttr: "cancelled_by",
		}, true
	case service.EventPaymentCompleted:
		method := strings.ReplaceAll(event.Attributes["method"], "_", " ")

		return pushContent{
			title: "Payment received",
			body:  fmt.Sprintf("Your %s payment was received and the booking is confirmed.", method),
		}, true
	case service.EventNotificationAnswered:
		if event.Attributes["status"] != string(entity.NotificationStatusAccepted) {
			return pushContent{}, false
		}

		return pushContent{
			title:     "Request accepted",
			body:      "Your chat request was accepted. Say hello!",
			actorAttr: "answered_by",
		}, true
	default:
		return pushContent{}, false
	}
}

func recipientsOf(event *service.DomainEvent, actorAttr string) []string {
	actor := ""
	if actorAttr != "" {
		actor = event.Attributes[actorAttr]
	}

	recipients := make([]string, 0, len(event.UserIDs))
	for _, id := range event.UserIDs {
		if id == "" || id == actor || slices.Contains(recipients, id) {
			continue
		}
		recipients = append(recipients, id)
	}

	return recipients
}

// extractRequestID prefers message attributes, then the event, then the incoming request.
func extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.DomainEvent) string {
	if requestID := pushMsg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// verifyPubSubToken checks the OIDC token Google attaches to authenticated push requests.
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found || token == "" {
		return errors.New("missing bearer token")
	}

	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
