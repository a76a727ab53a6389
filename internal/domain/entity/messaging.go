package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a direct message thread between two users.
// The pair is stored in the order it was created; (User1ID, User2ID) is unique as stored.
type Conversation struct {
	ID                  uuid.UUID
	User1ID             string
	User2ID             string
	HomestayID          *uuid.UUID
	BookingID           *uuid.UUID
	LastMessage         string
	LastMessageAt       *time.Time
	LastMessageSenderID *string
	CreatedAt           time.Time
}

// HasParticipant reports whether userID is one of the two users.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the counterpart of userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}

	return c.User1ID
}

// Message is a single message inside a conversation.
type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       string
	ReceiverID     string
	HomestayID     *uuid.UUID
	BookingID      *uuid.UUID
	Content        string
	IsRead         bool
	SentAt         time.Time
	ReadAt         *time.Time
}
