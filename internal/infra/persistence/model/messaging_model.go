package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConversationModel mirrors the 'conversations' table. (User1ID, User2ID) is unique as stored.
type ConversationModel struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	User1ID             string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_conversations_pair"`
	User1               *UserModel     `gorm:"foreignKey:User1ID;constraint:OnDelete:RESTRICT"`
	User2ID             string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_conversations_pair;index"`
	User2               *UserModel     `gorm:"foreignKey:User2ID;constraint:OnDelete:RESTRICT"`
	HomestayID          *uuid.UUID     `gorm:"type:uuid"`
	Homestay            *HomestayModel `gorm:"foreignKey:HomestayID;constraint:OnDelete:SET NULL"`
	BookingID           *uuid.UUID     `gorm:"type:uuid"`
	Booking             *BookingModel  `gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL"`
	LastMessage         string         `gorm:"type:text"`
	LastMessageAt       *time.Time     `gorm:"index"`
	LastMessageSenderID *string        `gorm:"type:varchar(36)"`
	LastMessageSender   *UserModel     `gorm:"foreignKey:LastMessageSenderID;constraint:OnDelete:SET NULL"`
	CreatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (ConversationModel) TableName() string {
	return "conversations"
}

// BeforeCreate assigns the primary key.
func (m *ConversationModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// MessageModel mirrors the 'messages' table.
type MessageModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Conversation   *ConversationModel `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	SenderID       string             `gorm:"type:varchar(36);not null;index:idx_messages_sender_receiver,priority:1"`
	Sender         *UserModel         `gorm:"foreignKey:SenderID;constraint:OnDelete:RESTRICT"`
	ReceiverID     string             `gorm:"type:varchar(36);not null;index:idx_messages_sender_receiver,priority:2"`
	Receiver       *UserModel         `gorm:"foreignKey:ReceiverID;constraint:OnDelete:RESTRICT"`
	HomestayID     *uuid.UUID         `gorm:"type:uuid"`
	Homestay       *HomestayModel     `gorm:"foreignKey:HomestayID;constraint:OnDelete:SET NULL"`
	BookingID      *uuid.UUID         `gorm:"type:uuid"`
	Booking        *BookingModel      `gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL"`
	Content        string             `gorm:"type:text;not null"`
	IsRead         bool               `gorm:"not null;index"`
	SentAt         time.Time          `gorm:"not null;index"`
	ReadAt         *time.Time
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "messages"
}

// BeforeCreate assigns the primary key.
func (m *MessageModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// UserNotificationModel mirrors the 'user_notifications' table.
type UserNotificationModel struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey"`
	UserID          string             `gorm:"type:varchar(36);not null;index"`
	User            *UserModel         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RequesterID     *string            `gorm:"type:varchar(36)"`
	Requester       *UserModel         `gorm:"foreignKey:RequesterID;constraint:OnDelete:SET NULL"`
	RequesterName   string             `gorm:"type:varchar(100)"`
	RequesterAvatar string             `gorm:"type:varchar(512)"`
	Type            string             `gorm:"type:varchar(50);not null"`
	Title           string             `gorm:"type:varchar(200);not null"`
	Content         string             `gorm:"type:text"`
	Status          string             `gorm:"type:varchar(20);not null"`
	IsRead          bool               `gorm:"not null;index"`
	ConversationID  *uuid.UUID         `gorm:"type:uuid"`
	Conversation    *ConversationModel `gorm:"foreignKey:ConversationID;constraint:OnDelete:SET NULL"`
	Metadata        datatypes.JSON
	CreatedAt       time.Time
	RespondedAt     *time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserNotificationModel) TableName() string {
	return "user_notifications"
}

// BeforeCreate assigns the primary key.
func (m *UserNotificationModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}
