package model

import (
	"time"
)

// UserModel mirrors the 'users' table. IDs are opaque strings assigned by the application.
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	UserName     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	FullName     string `gorm:"type:varchar(100)"`
	PhoneNumber  string `gorm:"type:varchar(32)"`
	AvatarURL    string `gorm:"type:varchar(512)"`
	PushToken    string `gorm:"type:varchar(512)"`
	IsHost       bool   `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null"`
	IsActive     bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
