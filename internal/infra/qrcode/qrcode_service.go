package qrcode

import (
	"encoding/json"

	"homestay/config"
	"homestay/internal/domain/service"
	"homestay/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256

	bookingQRType = "booking"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// QRCodeData is the payload encoded in a booking QR code
type QRCodeData struct {
	BookingID string `json:"booking_id"`
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// NewFromConfig builds the service from the qrcode config section
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M", "")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// GenerateBookingQR renders the booking reference as a PNG
func (s *qrcodeService) GenerateBookingQR(bookingID uuid.UUID) ([]byte, error) {
	data := QRCodeData{
		BookingID: bookingID.String(),
		Type:      bookingQRType,
	}
	if s.baseURL != "" {
		data.URL = s.baseURL + "/api/bookings/" + bookingID.String()
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseBookingQR parses scanned QR data and returns the booking ID
func (s *qrcodeService) ParseBookingQR(qrData string) (uuid.UUID, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != bookingQRType {
		return uuid.Nil, errors.Errorf("invalid QR code type: %s", data.Type)
	}

	bookingID, err := uuid.Parse(data.BookingID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse booking ID")
	}

	return bookingID, nil
}
