package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"homestay/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPushNotifier_FallsBackToLogOnly(t *testing.T) {
	notifier, err := NewPushNotifier(Params{
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.IsType(t, &logOnlyNotifier{}, notifier)

	require.NoError(t, notifier.Push(context.Background(), "token", "title", "body", nil))

	success, failure, invalid, err := notifier.PushBatch(context.Background(), []string{"a", "b"}, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, success)
	assert.Zero(t, failure)
	assert.Empty(t, invalid)
}
