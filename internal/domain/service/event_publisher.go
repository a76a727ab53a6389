package service

import (
	"context"
	"time"
)

// Domain event types published after a write commits.
const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventPaymentCompleted     = "payment.completed"
	EventMessageSent          = "message.sent"
	EventNotificationCreated  = "notification.created"
	EventNotificationAnswered = "notification.answered"
)

// DomainEvent is an envelope for a change other processes may react to.
type DomainEvent struct {
	ID          string            `json:"id"`
	RequestID   string            `json:"request_id,omitempty"` // For distributed tracing
	Type        string            `json:"type"`
	AggregateID string            `json:"aggregate_id"`
	UserIDs     []string          `json:"user_ids,omitempty"` // Users the event concerns
	Attributes  map[string]string `json:"attributes,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEvent publishes a domain event for async processing
	PublishEvent(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
