package utils

import "fmt"

// FormatTime renders a time in seconds as an MM:SS display string.
// Fractional seconds are floored; negative input clamps to "00:00".
// Minutes are not wrapped, so long recordings render as e.g. "125:07".
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	minutes := total / 60
	remaining := total % 60
	return fmt.Sprintf("%02d:%02d", minutes, remaining)
}

// FormatClock renders the "current / total" playback clock shown in the
// review controls.
func FormatClock(current, total float64) string {
	return fmt.Sprintf("%s / %s", FormatTime(current), FormatTime(total))
}
