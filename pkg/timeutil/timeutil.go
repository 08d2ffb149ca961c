// Package timeutil provides the clock, calendar-date and time-of-day helpers
// shared by the tutee and lesson domains.
// Dates are always calendar days at midnight in the clock's location;
// nothing in this package reads the wall clock except SystemClock.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the dd-MM-yyyy format used for pay-by dates and payment history.
const DateLayout = "02-01-2006"

// Common time-of-day formats.
const (
	// FormatTime is the short time-of-day format (HH:mm).
	FormatTime = "15:04"
	// FormatTimeSeconds includes seconds (HH:mm:ss).
	FormatTimeSeconds = "15:04:05"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock returns a SystemClock for loc, falling back to UTC.
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return SystemClock{Location: loc}
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant. Used by tests and replays.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

// Date creates a calendar date (midnight UTC).
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay strips the time-of-day, keeping the calendar day as seen in t's location.
func StartOfDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date according to clock.
func Today(clock Clock) time.Time {
	return StartOfDay(clock.Now())
}

// ParseDate parses a dd-MM-yyyy date. Day and month must be two digits and the
// day must exist in the month, so 31-04-2021 and 29-02-2021 are rejected.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// FormatDate formats a calendar date as dd-MM-yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeOfDay is a wall-clock time within a day, measured from midnight.
type TimeOfDay time.Duration

var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// NewTimeOfDay builds a TimeOfDay from its fields.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second)
}

// ParseTimeOfDay parses HH:mm or HH:mm:ss with two-digit fields.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if !timeOfDayRegex.MatchString(value) {
		return 0, fmt.Errorf("parse time of day %q: expected HH:mm or HH:mm:ss", value)
	}
	layout := FormatTime
	if len(value) == len(FormatTimeSeconds) {
		layout = FormatTimeSeconds
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", value, err)
	}
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
}

// Hour returns the hour field (0-23).
func (t TimeOfDay) Hour() int {
	return int(time.Duration(t) / time.Hour)
}

// Minute returns the minute field (0-59).
func (t TimeOfDay) Minute() int {
	return int(time.Duration(t) % time.Hour / time.Minute)
}

// Second returns the second field (0-59).
func (t TimeOfDay) Second() int {
	return int(time.Duration(t) % time.Minute / time.Second)
}

// Sub returns the duration t-u.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(t) - time.Duration(u)
}

// String formats as HH:mm, or HH:mm:ss when seconds are set.
func (t TimeOfDay) String() string {
	if t.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
