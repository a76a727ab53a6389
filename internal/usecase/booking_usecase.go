package usecase

import (
	"context"
	"time"

	"homestay/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateBookingInput requests a stay from CheckIn (inclusive) to CheckOut (exclusive).
type CreateBookingInput struct {
	HomestayID    uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	PromotionCode string
	Note          string
}

// PayInput records a payment for a booking.
type PayInput struct {
	Amount float64
	Method string
}

// CreatePromotionInput defines a percentage discount code.
type CreatePromotionInput struct {
	Code            string
	Description     string
	DiscountPercent float64
	ValidFrom       time.Time
	ValidTo         time.Time
}

// BookingUsecase manages reservations. Guests see their own bookings; hosts see bookings of their listings.
type BookingUsecase interface {
	Create(ctx context.Context, userID string, input *CreateBookingInput) (*entity.Booking, error)
	Get(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, error)
	ListMine(ctx context.Context, userID string) ([]*entity.Booking, error)
	Cancel(ctx context.Context, callerID string, id uuid.UUID) (*entity.Booking, error)

	// QRCode renders the confirmation code of a booking as PNG.
	QRCode(ctx context.Context, callerID string, id uuid.UUID) ([]byte, error)
}

// PaymentUsecase settles bookings.
type PaymentUsecase interface {
	// Pay records a completed payment and confirms the booking.
	Pay(ctx context.Context, callerID string, bookingID uuid.UUID, input *PayInput) (*entity.Payment, error)
}

// PromotionUsecase manages discount codes.
type PromotionUsecase interface {
	Create(ctx context.Context, creatorID string, input *CreatePromotionInput) (*entity.Promotion, error)

	// Delete removes a code; bookings that used it stay with the reference cleared.
	Delete(ctx context.Context, code string) error
}
