package repository

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository persists bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	FindByUser(ctx context.Context, userID string) ([]*entity.Booking, error)

	// FindOverlapping returns active bookings of the homestay intersecting [checkIn, checkOut).
	FindOverlapping(ctx context.Context, homestayID uuid.UUID, checkIn, checkOut time.Time) ([]*entity.Booking, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

// PaymentRepository persists payments.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error

	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)
}

// PromotionRepository persists promotion codes.
type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error

	FindByCode(ctx context.Context, code string) (*entity.Promotion, error)

	// DeleteByCode removes the promotion; bookings that used it keep existing with a cleared reference.
	DeleteByCode(ctx context.Context, code string) error
}
