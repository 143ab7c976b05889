// Package timefmt formats chunk timestamps for display.
package timefmt

import "fmt"

// Clock renders a millisecond offset as a clock label, e.g. 65000 -> "1:05".
// Offsets of an hour or more include the hour component ("1:02:03").
// Negative offsets are clamped to zero.
func Clock(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	seconds := totalSeconds % 60
	minutes := (totalSeconds / 60) % 60
	hours := totalSeconds / 3600

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
