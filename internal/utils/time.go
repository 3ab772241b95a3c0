package utils

import (
	"time"

	"github.com/julianstephens/planhub/internal/constants"
)

// Clock returns the current instant. Controllers take one so tests can pin "today".
type Clock func() time.Time

// SystemClock is the device clock.
func SystemClock() time.Time {
	return time.Now()
}

// Today returns the device-local calendar date (YYYY-MM-DD) for the clock's instant.
func Today(clock Clock) string {
	return clock().Local().Format(constants.DateFormat)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateDateFormat checks if the string is a real calendar date in the standard format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimeFormat checks for a zero-padded HH:MM time. Start times sort
// as strings, so "9:05" is rejected.
func ValidateTimeFormat(timeStr string) bool {
	if len(timeStr) != len(constants.TimeFormat) {
		return false
	}
	_, err := ParseTime(timeStr)
	return err == nil
}

// FormatTimestamp renders an instant the way resource addedAt values are stored.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}
