package entity

import (
	"time"

	"github.com/google/uuid"
)

// Homestay is a listing owned by exactly one host.
type Homestay struct {
	ID          uuid.UUID
	HostID      string
	Title       string
	Description string
	Address     string
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
	BasePrice   float64 // nightly price used when no pricing rule exists for a date
	MaxGuests   int
	Bedrooms    int
	Bathrooms   int
	IsActive    bool
	IsApproved  bool
	Amenities   []*Amenity
	Images      []*HomestayImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsBookable reports whether guests may book the listing.
func (h *Homestay) IsBookable() bool {
	return h.IsActive && h.IsApproved
}

// Amenity is a reusable facility label such as "Wi-Fi".
type Amenity struct {
	ID   uuid.UUID
	Name string
	Icon string
}

// HomestayImage is an uploaded picture of a listing.
type HomestayImage struct {
	ID         uuid.UUID
	HomestayID uuid.UUID
	URL        string
	StorageKey string
	IsPrimary  bool
	SortOrder  int
	CreatedAt  time.Time
}

// HomestayPricing overrides the base price for one date.
type HomestayPricing struct {
	ID         uuid.UUID
	HomestayID uuid.UUID
	Date       time.Time
	Price      float64
	Note       string
}

// BlockedDate marks one date on which the listing cannot be booked.
type BlockedDate struct {
	ID         uuid.UUID
	HomestayID uuid.UUID
	Date       time.Time
	Reason     string
	CreatedAt  time.Time
}

// HomestaySearch filters listings; zero values are ignored.
type HomestaySearch struct {
	City      string
	Latitude  *float64
	Longitude *float64
	RadiusKm  float64
	Limit     int
}
