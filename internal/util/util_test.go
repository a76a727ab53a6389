package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "single byte", bytes: 1, want: "1 B"},
		{name: "under a kilobyte", bytes: 512, want: "512 B"},
		{name: "fractional kilobytes", bytes: 1536, want: "1.5 KB"},
		{name: "image upload cap", bytes: 5 << 20, want: "5 MB"},
		{name: "request body cap", bytes: 100 << 10, want: "100 KB"},
		{name: "gigabytes", bytes: 5 << 30, want: "5 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "default rate limit window", duration: time.Minute, want: "1m"},
		{name: "rounds up to a minute", duration: 59*time.Second + 500*time.Millisecond, want: "1m"},
		{name: "minutes and seconds", duration: 2*time.Minute + 30*time.Second, want: "2m30s"},
		{name: "access token ttl", duration: time.Hour, want: "1h"},
		{name: "hours and minutes", duration: time.Hour + 30*time.Minute, want: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDuration(tt.duration))
		})
	}
}
