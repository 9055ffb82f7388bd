package domain

import "fmt"

// FormatTime renders whole seconds as MM:SS. Negative input clamps to 00:00.
// Minutes are not wrapped into hours.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatProgress renders the "elapsed / total" time label.
func FormatProgress(position, duration int) string {
	return FormatTime(position) + " / " + FormatTime(duration)
}
