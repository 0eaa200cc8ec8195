// ABOUTME: Display formatting for durations and measurement values.
// ABOUTME: Durations render as HH:MM:SS; values drop trailing zeros.
package calendar

import (
	"fmt"
	"strconv"
)

// FormatDuration renders milliseconds as HH:MM:SS, truncating sub-second
// remainders. Hours are not wrapped at 24.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatValue renders an optional measurement with trailing zeros removed.
// A nil value renders as the empty string.
func FormatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
