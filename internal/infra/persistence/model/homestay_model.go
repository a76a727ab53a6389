package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HomestayModel mirrors the 'homestays' table.
type HomestayModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HostID      string     `gorm:"type:varchar(36);not null;index"`
	Host        *UserModel `gorm:"foreignKey:HostID;constraint:OnDelete:RESTRICT"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Address     string     `gorm:"type:varchar(300)"`
	City        string     `gorm:"type:varchar(100);index"`
	Country     string     `gorm:"type:varchar(100)"`
	Latitude    float64    `gorm:"type:decimal(10,7)"`
	Longitude   float64    `gorm:"type:decimal(10,7)"`
	BasePrice   float64    `gorm:"type:decimal(18,2);not null"`
	MaxGuests   int        `gorm:"not null"`
	Bedrooms    int
	Bathrooms   int
	IsActive    bool `gorm:"not null;index"`
	IsApproved  bool `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (HomestayModel) TableName() string {
	return "homestays"
}

// BeforeCreate assigns the primary key.
func (m *HomestayModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// AmenityModel mirrors the 'amenities' table.
type AmenityModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Icon string    `gorm:"type:varchar(100)"`
}

// TableName explicitly sets the table name for GORM.
func (AmenityModel) TableName() string {
	return "amenities"
}

// BeforeCreate assigns the primary key.
func (m *AmenityModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// HomestayAmenityModel is the join row between homestays and amenities.
// Its identity is the (HomestayID, AmenityID) pair.
type HomestayAmenityModel struct {
	HomestayID uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Homestay   *HomestayModel `gorm:"foreignKey:HomestayID;constraint:OnDelete:CASCADE"`
	AmenityID  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Amenity    *AmenityModel  `gorm:"foreignKey:AmenityID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (HomestayAmenityModel) TableName() string {
	return "homestay_amenities"
}

// HomestayImageModel mirrors the 'homestay_images' table.
type HomestayImageModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	HomestayID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Homestay   *HomestayModel `gorm:"foreignKey:HomestayID;constraint:OnDelete:CASCADE"`
	URL        string         `gorm:"type:varchar(1024);not null"`
	StorageKey string         `gorm:"type:varchar(512)"`
	IsPrimary  bool           `gorm:"not null"`
	SortOrder  int            `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (HomestayImageModel) TableName() string {
	return "homestay_images"
}

// BeforeCreate assigns the primary key.
func (m *HomestayImageModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// HomestayPricingModel mirrors the 'homestay_pricings' table, one row per (homestay, date).
type HomestayPricingModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	HomestayID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_homestay_pricings_homestay_date"`
	Homestay   *HomestayModel `gorm:"foreignKey:HomestayID;constraint:OnDelete:CASCADE"`
	Date       datatypes.Date `gorm:"not null;uniqueIndex:idx_homestay_pricings_homestay_date"`
	Price      float64        `gorm:"type:decimal(18,2);not null"`
	Note       string         `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (HomestayPricingModel) TableName() string {
	return "homestay_pricings"
}

// BeforeCreate assigns the primary key.
func (m *HomestayPricingModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}

// BlockedDateModel mirrors the 'blocked_dates' table, one row per (homestay, date).
type BlockedDateModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	HomestayID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_blocked_dates_homestay_date"`
	Homestay   *HomestayModel `gorm:"foreignKey:HomestayID;constraint:OnDelete:CASCADE"`
	Date       datatypes.Date `gorm:"not null;uniqueIndex:idx_blocked_dates_homestay_date"`
	Reason     string         `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (BlockedDateModel) TableName() string {
	return "blocked_dates"
}

// BeforeCreate assigns the primary key.
func (m *BlockedDateModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = newID()
	}

	return nil
}
