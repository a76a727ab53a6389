package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking reserves a homestay for a guest between CheckIn (inclusive) and CheckOut (exclusive).
type Booking struct {
	ID             uuid.UUID
	UserID         string
	HomestayID     uuid.UUID
	PromotionID    *uuid.UUID
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	TotalPrice     float64
	DiscountAmount float64
	Status         BookingStatus
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Nights returns the number of nights covered by the booking.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// IsActive reports whether the booking still occupies its dates.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// StayDates lists every night of the stay, truncated to UTC midnight.
func (b *Booking) StayDates() []time.Time {
	dates := make([]time.Time, 0, b.Nights())
	for d := TruncateDate(b.CheckIn); d.Before(TruncateDate(b.CheckOut)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates
}

// PaymentStatus is the state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment records money received for a booking.
type Payment struct {
	ID             uuid.UUID
	UserID         string
	BookingID      uuid.UUID
	Amount         float64
	Method         string
	Status         PaymentStatus
	TransactionRef string
	PaidAt         *time.Time
	CreatedAt      time.Time
}

// TruncateDate drops the clock part and normalizes to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
