package timer

import (
	"fmt"
	"strings"
	"time"
)

// FormatTime renders d as mm:ss, or h:mm:ss from one hour up. Partial seconds
// round up so a running countdown shows 00:01 until it reaches zero.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
