package util

import (
	"time"
)

const ClockTimeFormat = "15:04"

func AddTimeToDate(date time.Time, sourceTime time.Time) time.Time {
	newDateTime := time.Date(date.Year(), date.Month(), date.Day(), sourceTime.Hour(), sourceTime.Minute(), sourceTime.Second(), sourceTime.Nanosecond(), date.Location())

	return newDateTime
}

// ParseClockTime parses a normalized "HH:MM" time of day. The zero value of
// the returned time carries only the clock fields and is meant to be projected
// onto a real date with AddTimeToDate
func ParseClockTime(value string) (time.Time, bool) {
	parsed, err := time.Parse(ClockTimeFormat, value)
	if err != nil {
		return time.Time{}, false
	}

	return parsed, true
}
