package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for booking confirmation QR codes
type QRCodeService interface {
	// GenerateBookingQR renders a PNG encoding the booking reference
	GenerateBookingQR(bookingID uuid.UUID) ([]byte, error)

	// ParseBookingQR parses scanned QR data and returns the booking ID
	ParseBookingQR(qrData string) (uuid.UUID, error)
}
