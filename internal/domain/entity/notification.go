package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies what a notification is about.
type NotificationType string

const (
	NotificationTypeConnectionRequest NotificationType = "connection_request"
	NotificationTypeBookingCreated    NotificationType = "booking_created"
	NotificationTypeNewMessage        NotificationType = "new_message"
)

// NotificationStatus is the acceptance state of an actionable notification.
type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "pending"
	NotificationStatusAccepted NotificationStatus = "accepted"
	NotificationStatusDeclined NotificationStatus = "declined"
	// NotificationStatusInfo is used for notifications that need no answer.
	NotificationStatusInfo NotificationStatus = "info"
)

// UserNotification is an event addressed to one user, optionally requiring an answer.
type UserNotification struct {
	ID              uuid.UUID
	UserID          string
	RequesterID     *string
	RequesterName   string
	RequesterAvatar string
	Type            NotificationType
	Title           string
	Content         string
	Status          NotificationStatus
	IsRead          bool
	ConversationID  *uuid.UUID
	Metadata        map[string]string
	CreatedAt       time.Time
	RespondedAt     *time.Time
}

// IsActionable reports whether the notification still awaits an answer.
func (n *UserNotification) IsActionable() bool {
	return n.Status == NotificationStatusPending
}
