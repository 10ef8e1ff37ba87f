package duration

import (
	"fmt"
	"strings"
	"time"
)

// Format renders d as "1d 2h 3m 4s", dropping zero parts. Sub-second
// remainders are truncated; zero renders as "0s".
func Format(d time.Duration) string {
	total := wholeSeconds(d)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatDisplay renders the large readout, e.g. "01 h 02 m 03 s", "02 m 03 s"
// or "03 s". Days fold into hours.
func FormatDisplay(d time.Duration) string {
	total := wholeSeconds(d)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%02d h %02d m %02d s", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%02d m %02d s", minutes, seconds)
	default:
		return fmt.Sprintf("%02d s", seconds)
	}
}

func wholeSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
