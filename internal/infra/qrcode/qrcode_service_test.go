package qrcode

import (
	"encoding/json"
	"testing"

	"homestay/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateBookingQR(t *testing.T) {
	service := NewFromConfig(&config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H", BaseURL: "https://homestay.example"}})

	qrBytes, err := service.GenerateBookingQR(uuid.New())
	require.NoError(t, err)
	require.Greater(t, len(qrBytes), 4)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_ParseBookingQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")
	bookingID := uuid.New()

	tests := []struct {
		name    string
		data    QRCodeData
		raw     string
		wantErr string
	}{
		{name: "valid", data: QRCodeData{BookingID: bookingID.String(), Type: "booking"}},
		{name: "invalid json", raw: "invalid json", wantErr: "failed to unmarshal QR code data"},
		{name: "wrong type", data: QRCodeData{BookingID: bookingID.String(), Type: "subscription"}, wantErr: "invalid QR code type"},
		{name: "invalid uuid", data: QRCodeData{BookingID: "not-a-uuid", Type: "booking"}, wantErr: "failed to parse booking ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.raw
			if raw == "" {
				encoded, err := json.Marshal(tt.data)
				require.NoError(t, err)
				raw = string(encoded)
			}

			parsed, err := service.ParseBookingQR(raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, bookingID, parsed)
		})
	}
}
