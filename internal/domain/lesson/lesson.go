// Package lesson models a tutee's recurring weekly lessons.
package lesson

import (
	"fmt"
	"regexp"
	"time"

	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// Constraint messages shown for lesson input.
const (
	SubjectConstraints = "Subject should only contain alphanumeric characters and spaces, and it should not be blank"
	MessageInvalidDay  = "Day of week should be one of MONDAY, TUESDAY, WEDNESDAY, THURSDAY, FRIDAY, SATURDAY or SUNDAY"
	MessageInvalidTime = "Start and end times should be in the format HH:mm, i.e 09:00 or 13:30"
)

// DefaultMinimumDuration is the shortest lesson allowed unless configured otherwise.
const DefaultMinimumDuration = 30 * time.Minute

// MessageInvalidDuration returns the message shown when a lesson is too short.
func MessageInvalidDuration(minimum time.Duration) string {
	return fmt.Sprintf("End time should be at least %d minutes after start time", int(minimum/time.Minute))
}

// ═══════════════════════════════════════════════════════════════════════════
// Subject Value Object
// ═══════════════════════════════════════════════════════════════════════════

var subjectRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)

// Subject is the taught subject, e.g. "Math" or "Physics".
type Subject string

// IsValidSubject reports whether s is a valid subject.
func IsValidSubject(s string) bool {
	return subjectRegex.MatchString(s)
}

// String returns the string representation.
func (s Subject) String() string {
	return string(s)
}

// NewSubject creates a Subject. The input must already be trimmed and valid.
func NewSubject(s string) (Subject, error) {
	if !IsValidSubject(s) {
		return "", shared.NewDomainError("lesson", "NewSubject", shared.ErrPrecondition, SubjectConstraints)
	}
	return Subject(s), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// DayOfWeek
// ═══════════════════════════════════════════════════════════════════════════

// DayOfWeek is one of the seven symbolic day names.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = map[DayOfWeek]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// AllDays returns the days from Monday to Sunday.
func AllDays() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// IsValid reports whether d is one of the seven day names. Matching is case-sensitive.
func (d DayOfWeek) IsValid() bool {
	_, ok := weekdays[d]
	return ok
}

// Weekday converts to the standard library weekday.
func (d DayOfWeek) Weekday() time.Weekday {
	return weekdays[d]
}

// String returns the day name.
func (d DayOfWeek) String() string {
	return string(d)
}

// ═══════════════════════════════════════════════════════════════════════════
// Time Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Time is a weekly lesson slot.
//
// Invariant: End is at least the configured minimum duration after Start.
type Time struct {
	day   DayOfWeek
	start timeutil.TimeOfDay
	end   timeutil.TimeOfDay
}

// IsValidDuration reports whether end is at least minimum after start.
func IsValidDuration(start, end timeutil.TimeOfDay, minimum time.Duration) bool {
	return end.Sub(start) >= minimum
}

// NewTime creates a Time. The parser checks the inputs first; a failure here
// is a programming error.
func NewTime(day DayOfWeek, start, end timeutil.TimeOfDay, minimum time.Duration) (Time, error) {
	if !day.IsValid() {
		return Time{}, shared.NewDomainError("lesson", "NewTime", shared.ErrPrecondition, MessageInvalidDay)
	}
	if !IsValidDuration(start, end, minimum) {
		return Time{}, shared.NewDomainError("lesson", "NewTime", shared.ErrPrecondition, MessageInvalidDuration(minimum))
	}
	return Time{day: day, start: start, end: end}, nil
}

// Day returns the day of week.
func (t Time) Day() DayOfWeek { return t.day }

// Start returns the start time.
func (t Time) Start() timeutil.TimeOfDay { return t.start }

// End returns the end time.
func (t Time) End() timeutil.TimeOfDay { return t.end }

// Duration returns the lesson length.
func (t Time) Duration() time.Duration {
	return t.end.Sub(t.start)
}

// IsZero reports whether t is the zero Time.
func (t Time) IsZero() bool {
	return t == Time{}
}

// Overlaps reports whether both slots share a day and intersect.
func (t Time) Overlaps(other Time) bool {
	return t.day == other.day && t.start < other.end && other.start < t.end
}

// String formats as "MONDAY 09:00-10:00".
func (t Time) String() string {
	return fmt.Sprintf("%s %s-%s", t.day, t.start, t.end)
}

// ═══════════════════════════════════════════════════════════════════════════
// Lesson
// ═══════════════════════════════════════════════════════════════════════════

// Lesson is a subject taught in a weekly slot.
type Lesson struct {
	subject Subject
	time    Time
}

// New creates a Lesson. Both parts are required.
func New(subject Subject, t Time) (Lesson, error) {
	if subject == "" {
		return Lesson{}, shared.NewDomainError("lesson", "New", shared.ErrPrecondition, "subject is required")
	}
	if t.IsZero() {
		return Lesson{}, shared.NewDomainError("lesson", "New", shared.ErrPrecondition, "time is required")
	}
	return Lesson{subject: subject, time: t}, nil
}

// Subject returns the lesson's subject.
func (l Lesson) Subject() Subject { return l.subject }

// Time returns the lesson's slot.
func (l Lesson) Time() Time { return l.time }

// String formats as "Math: MONDAY 09:00-10:00".
func (l Lesson) String() string {
	return fmt.Sprintf("%s: %s", l.subject, l.time)
}
