package subscriptions

import (
	"math"
	"time"
)

// EndDate derives the expiry from the start plus the duration in calendar
// months. time.AddDate normalizes month overflow, so Jan 31 + 1 month rolls
// into early March.
func EndDate(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, durationMonths, 0)
}

// StartOfDay truncates a timestamp to UTC midnight. End dates carry midnight
// clocks, so day-window queries must anchor at midnight too or a subscription
// ending today slips out of the window once the clock passes 00:00.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsExpiringSoon reports whether the end date falls within the warning window,
// counting whole days rounded up. Already-expired subscriptions are not "soon".
func IsExpiringSoon(end, now time.Time, warningDays int) bool {
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	return days >= 0 && days <= warningDays
}
