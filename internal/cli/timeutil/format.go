// Package timeutil formats times and durations for CLI output.
package timeutil

import (
	"fmt"
	"time"
)

// LocalTimeFormat is used for absolute times in tables.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatDuration renders d as "3d 0h 30m 15s", dropping leading zero units.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatSeconds renders a lifespan given in seconds, as realm settings
// store them.
func FormatSeconds(secs int) string {
	return FormatDuration(time.Duration(secs) * time.Second)
}

// FormatUptime formats a Go duration string, returning it unchanged when
// it does not parse.
func FormatUptime(uptime string) string {
	d, err := time.ParseDuration(uptime)
	if err != nil {
		return uptime
	}
	return FormatDuration(d)
}

// FormatExpiry describes an expiry relative to now: the local time plus
// "(in 2h 0m 0s)" or "(expired)".
func FormatExpiry(at, now time.Time) string {
	local := at.Local().Format(LocalTimeFormat)
	if !at.After(now) {
		return local + " (expired)"
	}
	return fmt.Sprintf("%s (in %s)", local, FormatDuration(at.Sub(now)))
}
