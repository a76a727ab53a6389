package notification

import (
	"context"
	"log/slog"

	"homestay/config"
	"homestay/internal/domain/service"
	"homestay/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// maxBatchTokens is the Firebase multicast limit.
const maxBatchTokens = 500

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a push notifier backed by Firebase Cloud Messaging
func NewFirebaseService(ctx context.Context, credentialsPath string) (service.PushNotifier, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client}, nil
}

// Push sends a push notification to a single device token
func (s *firebaseService) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	return nil
}

// PushBatch sends push notifications to multiple device tokens
func (s *firebaseService) PushBatch(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error) {
	if len(tokens) == 0 {
		return 0, 0, nil, nil
	}
	if len(tokens) > maxBatchTokens {
		return 0, 0, nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(tokens), maxBatchTokens)
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return 0, 0, nil, errors.Wrap(err, "failed to send multicast notification")
	}

	invalidTokens = make([]string, 0)
	for idx, sendResponse := range response.Responses {
		if sendResponse.Error == nil {
			continue
		}
		if messaging.IsInvalidArgument(sendResponse.Error) || messaging.IsUnregistered(sendResponse.Error) {
			invalidTokens = append(invalidTokens, tokens[idx])
		}
	}

	return response.SuccessCount, response.FailureCount, invalidTokens, nil
}

// logOnlyNotifier records pushes in the log when Firebase is not configured
type logOnlyNotifier struct {
	logger *slog.Logger
}

func (n *logOnlyNotifier) Push(ctx context.Context, token, title, _ string, _ map[string]string) error {
	n.logger.DebugContext(ctx, "Push skipped, Firebase not configured",
		slog.String("title", title),
		slog.Int("token_length", len(token)),
	)

	return nil
}

func (n *logOnlyNotifier) PushBatch(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	for _, token := range tokens {
		_ = n.Push(ctx, token, title, body, data)
	}

	return len(tokens), 0, nil, nil
}

// Params holds the dependencies of the push notifier
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPushNotifier picks Firebase when credentials are configured, the log-only notifier otherwise
func NewPushNotifier(params Params) (service.PushNotifier, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, push notifications are logged only")

		return &logOnlyNotifier{logger: params.Logger}, nil
	}

	notifier, err := NewFirebaseService(params.Ctx, cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	params.Logger.Info("Firebase push notifications enabled", slog.String("project_id", cfg.ProjectID))

	return notifier, nil
}
