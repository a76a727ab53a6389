package usecase

import (
	"context"
	"io"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateHomestayInput defines a new listing.
type CreateHomestayInput struct {
	Title       string
	Description string
	Address     string
	City        string
	Country     string
	Latitude    float64
	Longitude   float64
	BasePrice   float64
	MaxGuests   int
	Bedrooms    int
	Bathrooms   int
	AmenityIDs  []uuid.UUID
}

// UploadImageInput carries one uploaded picture.
type UploadImageInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// HomestayUsecase manages listings. Mutations require the caller to own the listing.
type HomestayUsecase interface {
	Create(ctx context.Context, hostID string, input *CreateHomestayInput) (*entity.Homestay, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Homestay, error)
	Search(ctx context.Context, filter entity.HomestaySearch) ([]*entity.Homestay, error)
	ListByHost(ctx context.Context, hostID string) ([]*entity.Homestay, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) error
	SetActive(ctx context.Context, callerID string, id uuid.UUID, active bool) (*entity.Homestay, error)
	Approve(ctx context.Context, id uuid.UUID) (*entity.Homestay, error)
	ReplaceAmenities(ctx context.Context, callerID string, id uuid.UUID, amenityIDs []uuid.UUID) (*entity.Homestay, error)
	UploadImage(ctx context.Context, callerID string, id uuid.UUID, input *UploadImageInput) (*entity.HomestayImage, error)
}

// AmenityUsecase manages the amenity catalogue.
type AmenityUsecase interface {
	List(ctx context.Context) ([]*entity.Amenity, error)
	Create(ctx context.Context, name, icon string) (*entity.Amenity, error)
}

// AvailabilityUsecase manages per-date prices and blocked dates of a listing.
type AvailabilityUsecase interface {
	SetPricing(ctx context.Context, callerID string, homestayID uuid.UUID, date time.Time, price float64, note string) (*entity.HomestayPricing, error)
	BlockDate(ctx context.Context, callerID string, homestayID uuid.UUID, date time.Time, reason string) (*entity.BlockedDate, error)
	UnblockDate(ctx context.Context, callerID string, homestayID uuid.UUID, date time.Time) error
}
