package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homestay/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var received PushMessage
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	event := &service.DomainEvent{
		ID:          "evt-1",
		RequestID:   "req-1",
		Type:        service.EventBookingCreated,
		AggregateID: "booking-1",
		UserIDs:     []string{"guest", "host"},
		OccurredAt:  time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishEvent(context.Background(), event))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, service.EventBookingCreated, received.Message.Attributes["event_type"])

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)
	var decoded service.DomainEvent
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, event.AggregateID, decoded.AggregateID)
	assert.Equal(t, event.UserIDs, decoded.UserIDs)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := publisher.PublishEvent(context.Background(), &service.DomainEvent{ID: "evt-2", Type: service.EventMessageSent})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
