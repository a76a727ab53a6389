// Package util holds small formatting helpers shared by log lines and user messages.
package util

import (
	"strconv"
	"strings"
	"time"
)

// FormatBytes renders a size in binary units for messages shown to hosts,
// e.g. "512 B", "1.5 KB", "5 MB". Whole values drop the decimal.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return strconv.FormatInt(bytes, 10) + " B"
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	value := strconv.FormatFloat(float64(bytes)/float64(div), 'f', 1, 64)

	return strings.TrimSuffix(value, ".0") + " " + string(units[exp]) + "B"
}

// FormatDuration renders a duration to the second without zero parts,
// e.g. "45s", "1m", "2m30s", "1h30m".
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)
	if duration < time.Minute {
		return strconv.Itoa(int(duration.Seconds())) + "s"
	}

	var b strings.Builder
	if h := int(duration.Hours()); h > 0 {
		b.WriteString(strconv.Itoa(h) + "h")
	}
	if m := int(duration.Minutes()) % 60; m > 0 {
		b.WriteString(strconv.Itoa(m) + "m")
	}
	if s := int(duration.Seconds()) % 60; s > 0 {
		b.WriteString(strconv.Itoa(s) + "s")
	}

	return b.String()
}
