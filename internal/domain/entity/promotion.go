package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Promotion is a percentage discount identified by a human-readable code.
type Promotion struct {
	ID              uuid.UUID
	Code            string
	Description     string
	DiscountPercent float64
	ValidFrom       time.Time
	ValidTo         time.Time
	IsActive        bool
	CreatedByID     *string
	CreatedAt       time.Time
}

// IsApplicable reports whether the code can be redeemed at the given time.
func (p *Promotion) IsApplicable(at time.Time) bool {
	return p.IsActive && !at.Before(p.ValidFrom) && !at.After(p.ValidTo)
}

// Discount returns the amount taken off subtotal, rounded to cents.
func (p *Promotion) Discount(subtotal float64) float64 {
	return math.Round(subtotal*p.DiscountPercent) / 100
}
