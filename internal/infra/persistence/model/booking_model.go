package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PromotionModel mirrors the 'promotions' table.
type PromotionModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code            string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description     string     `gorm:"type:varchar(500)"`
	DiscountPercent float64    `gorm:"type:decimal(5,2);not null"`
	ValidFrom       time.Time  `gorm:"not null"`
	ValidTo         time.Time  `gorm:"not null"`
	IsActive        bool       `gorm:"not null"`
	CreatedByID     *string    `gorm:"type:varchar(36);index"`
	CreatedBy       *UserModel `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (PromotionModel) TableName() string {
	return "promotions"
}

// BeforeCreate assigns the primary key.
func (m *PromotionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// BookingModel mirrors the 'bookings' table.
type BookingModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         string          `gorm:"type:varchar(36);not null;index"`
	User           *UserModel      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	HomestayID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Homestay       *HomestayModel  `gorm:"foreignKey:HomestayID;constraint:OnDelete:RESTRICT"`
	PromotionID    *uuid.UUID      `gorm:"type:uuid;index"`
	Promotion      *PromotionModel `gorm:"foreignKey:PromotionID;constraint:OnDelete:SET NULL"`
	CheckIn        datatypes.Date  `gorm:"not null"`
	CheckOut       datatypes.Date  `gorm:"not null"`
	Guests         int             `gorm:"not null"`
	TotalPrice     float64         `gorm:"type:decimal(18,2);not null"`
	DiscountAmount float64         `gorm:"type:decimal(18,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;index"`
	Note           string          `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the primary key.
func (m *BookingModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	UserID         string        `gorm:"type:varchar(36);not null;index"`
	User           *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	BookingID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	Booking        *BookingModel `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT"`
	Amount         float64       `gorm:"type:decimal(18,2);not null"`
	Method         string        `gorm:"type:varchar(50);not null"`
	Status         string        `gorm:"type:varchar(20);not null"`
	TransactionRef string        `gorm:"type:varchar(100)"`
	PaidAt         *time.Time
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// BeforeCreate assigns the primary key.
func (m *PaymentModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}
