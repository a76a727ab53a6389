package service

import (
	"context"
)

// PushNotifier delivers push notifications to user devices.
type PushNotifier interface {
	// Push sends a notification to a single device token
	Push(ctx context.Context, token, title, body string, data map[string]string) error

	// PushBatch sends a notification to many device tokens.
	// Returns success count, failure count and the tokens the provider rejected as invalid.
	PushBatch(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error)
}
