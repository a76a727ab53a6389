package repository

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// HomestayRepository persists listings and their amenity/image children.
type HomestayRepository interface {
	Create(ctx context.Context, homestay *entity.Homestay) error

	// FindByID loads the listing with amenities and images.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Homestay, error)

	// Search returns active, approved listings matching the city filter.
	Search(ctx context.Context, filter entity.HomestaySearch) ([]*entity.Homestay, error)

	FindByHost(ctx context.Context, hostID string) ([]*entity.Homestay, error)

	Update(ctx context.Context, homestay *entity.Homestay) error

	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceAmenities swaps the listing's amenity links for the given set.
	ReplaceAmenities(ctx context.Context, homestayID uuid.UUID, amenityIDs []uuid.UUID) error

	AddImage(ctx context.Context, image *entity.HomestayImage) error
}

// AmenityRepository persists the amenity catalogue.
type AmenityRepository interface {
	List(ctx context.Context) ([]*entity.Amenity, error)
	Create(ctx context.Context, amenity *entity.Amenity) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Amenity, error)
}

// AvailabilityRepository persists per-date pricing rules and blocked dates.
// Both are unique per (homestay, date).
type AvailabilityRepository interface {
	CreatePricing(ctx context.Context, pricing *entity.HomestayPricing) error

	// FindPricing returns rules with from <= date < to.
	FindPricing(ctx context.Context, homestayID uuid.UUID, from, to time.Time) ([]*entity.HomestayPricing, error)

	CreateBlockedDate(ctx context.Context, blocked *entity.BlockedDate) error

	DeleteBlockedDate(ctx context.Context, homestayID uuid.UUID, date time.Time) error

	// FindBlockedDates returns blocked dates with from <= date < to.
	FindBlockedDates(ctx context.Context, homestayID uuid.UUID, from, to time.Time) ([]*entity.BlockedDate, error)
}
