package timezone

import (
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "UTC"
	DateLayout      = "2006-01-02"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to UTC for empty or unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today is the calendar date in tz, used as the earliest bookable date.
func Today(tz string, now time.Time) string {
	return now.In(Location(tz)).Format(DateLayout)
}
