// Package parser converts raw text tokens into validated domain values.
//
// Every function trims its input, checks the field's predicate and either
// returns the value or a *ParseError carrying the field's constraint message.
// Checks short-circuit; at most one problem is reported per call.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// MessageInvalidIndex is returned for anything but a positive integer index.
const MessageInvalidIndex = "Index is not a non-zero unsigned integer."

// Field names carried by ParseError.
const (
	FieldIndex   = "index"
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
	FieldLevel   = "level"
	FieldTag     = "tag"
	FieldSubject = "subject"
	FieldDay     = "day"
	FieldTime    = "time"
	FieldPayment = "payment"
	FieldPayBy   = "pay_by_date"
)

var unsignedRegex = regexp.MustCompile(`^\d+$`)

// ═══════════════════════════════════════════════════════════════════════════
// Stateless conversions
// ═══════════════════════════════════════════════════════════════════════════

// ParseIndex parses a one-based index such as " 3 ".
func ParseIndex(oneBased string) (shared.Index, error) {
	trimmed := strings.TrimSpace(oneBased)
	if !unsignedRegex.MatchString(trimmed) {
		return shared.Index{}, newParseError(FieldIndex, MessageInvalidIndex)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n == 0 {
		return shared.Index{}, newParseError(FieldIndex, MessageInvalidIndex)
	}
	return shared.FromOneBased(n)
}

// ParseName parses a tutee name.
func ParseName(name string) (tutee.Name, error) {
	trimmed := strings.TrimSpace(name)
	if !tutee.IsValidName(trimmed) {
		return "", newParseError(FieldName, tutee.NameConstraints)
	}
	return tutee.NewName(trimmed)
}

// ParsePhone parses a phone number.
func ParsePhone(phone string) (tutee.Phone, error) {
	trimmed := strings.TrimSpace(phone)
	if !tutee.IsValidPhone(trimmed) {
		return "", newParseError(FieldPhone, tutee.PhoneConstraints)
	}
	return tutee.NewPhone(trimmed)
}

// ParseAddress parses an address.
func ParseAddress(address string) (tutee.Address, error) {
	trimmed := strings.TrimSpace(address)
	if !tutee.IsValidAddress(trimmed) {
		return "", newParseError(FieldAddress, tutee.AddressConstraints)
	}
	return tutee.NewAddress(trimmed)
}

// ParseLevel parses an education level.
func ParseLevel(level string) (tutee.Level, error) {
	trimmed := strings.TrimSpace(level)
	if !tutee.IsValidLevel(trimmed) {
		return "", newParseError(FieldLevel, tutee.LevelConstraints)
	}
	return tutee.NewLevel(trimmed)
}

// ParseTag parses a single tag name.
func ParseTag(tag string) (tutee.Tag, error) {
	trimmed := strings.TrimSpace(tag)
	if !tutee.IsValidTagName(trimmed) {
		return "", newParseError(FieldTag, tutee.TagConstraints)
	}
	return tutee.NewTag(trimmed)
}

// ParseTags parses every tag and collects them into a set.
// The first invalid tag fails the whole call.
func ParseTags(tags []string) (tutee.TagSet, error) {
	set := tutee.NewTagSet()
	for _, raw := range tags {
		tag, err := ParseTag(raw)
		if err != nil {
			return nil, err
		}
		set.Add(tag)
	}
	return set, nil
}

// ParseSubject parses a lesson subject.
func ParseSubject(subject string) (lesson.Subject, error) {
	trimmed := strings.TrimSpace(subject)
	if !lesson.IsValidSubject(trimmed) {
		return "", newParseError(FieldSubject, lesson.SubjectConstraints)
	}
	return lesson.NewSubject(trimmed)
}

// ParseDayOfWeek parses an upper-case day name such as "MONDAY".
func ParseDayOfWeek(day string) (lesson.DayOfWeek, error) {
	d := lesson.DayOfWeek(strings.TrimSpace(day))
	if !d.IsValid() {
		return "", newParseError(FieldDay, lesson.MessageInvalidDay)
	}
	return d, nil
}

// ParsePaymentAmount parses a payment amount. It reports a non-number, a
// number with the wrong decimals and an amount above the cap with distinct
// messages, in that order.
func ParsePaymentAmount(amount string) (string, error) {
	trimmed := strings.TrimSpace(amount)
	switch {
	case !tutee.IsNumberWithAnyDecimals(trimmed):
		return "", newParseError(FieldPayment, tutee.MessageConstraints)
	case !tutee.IsValidPaymentFormat(trimmed):
		return "", newParseError(FieldPayment, tutee.DecimalConstraints)
	case !tutee.IsValidPaymentAmount(trimmed):
		return "", newParseError(FieldPayment, tutee.AmountConstraints)
	}
	return trimmed, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Parser
// ═══════════════════════════════════════════════════════════════════════════

// Config holds the contextual parameters of the conversions that need them.
type Config struct {
	// MinLessonDuration is the shortest accepted lesson.
	MinLessonDuration time.Duration

	// Clock supplies "today" for pay-by dates and overdue snapshots.
	Clock timeutil.Clock
}

// DefaultConfig returns a config with a 30 minute minimum lesson and the
// system clock in UTC.
func DefaultConfig() Config {
	return Config{
		MinLessonDuration: lesson.DefaultMinimumDuration,
		Clock:             timeutil.NewSystemClock(time.UTC),
	}
}

// Parser performs the conversions that depend on configuration.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	minDuration time.Duration
	clock       timeutil.Clock
}

// New creates a Parser. Zero fields of cfg take their defaults.
func New(cfg Config) *Parser {
	def := DefaultConfig()
	if cfg.MinLessonDuration <= 0 {
		cfg.MinLessonDuration = def.MinLessonDuration
	}
	if cfg.Clock == nil {
		cfg.Clock = def.Clock
	}
	return &Parser{minDuration: cfg.MinLessonDuration, clock: cfg.Clock}
}

// MinLessonDuration returns the configured minimum lesson length.
func (p *Parser) MinLessonDuration() time.Duration {
	return p.minDuration
}

// Now returns the current instant of the parser's clock.
func (p *Parser) Now() time.Time {
	return p.clock.Now()
}

// Today returns the current calendar date of the parser's clock.
func (p *Parser) Today() time.Time {
	return timeutil.Today(p.clock)
}

// ParseTime parses a weekly lesson slot. The day is checked first, then both
// time formats, then the minimum duration.
func (p *Parser) ParseTime(day, start, end string) (lesson.Time, error) {
	d, err := ParseDayOfWeek(day)
	if err != nil {
		return lesson.Time{}, err
	}
	from, err := timeutil.ParseTimeOfDay(strings.TrimSpace(start))
	if err != nil {
		return lesson.Time{}, newParseError(FieldTime, lesson.MessageInvalidTime)
	}
	to, err := timeutil.ParseTimeOfDay(strings.TrimSpace(end))
	if err != nil {
		return lesson.Time{}, newParseError(FieldTime, lesson.MessageInvalidTime)
	}
	if !lesson.IsValidDuration(from, to, p.minDuration) {
		return lesson.Time{}, newParseError(FieldTime, lesson.MessageInvalidDuration(p.minDuration))
	}
	return lesson.NewTime(d, from, to, p.minDuration)
}

// ParseLesson parses a subject and a slot into a Lesson.
func (p *Parser) ParseLesson(day, start, end, subject string) (lesson.Lesson, error) {
	s, err := ParseSubject(subject)
	if err != nil {
		return lesson.Lesson{}, err
	}
	t, err := p.ParseTime(day, start, end)
	if err != nil {
		return lesson.Lesson{}, err
	}
	return lesson.New(s, t)
}

// ParsePayByDate parses a dd-MM-yyyy due date. "-" yields the zero time,
// meaning no due date. Dates before today are rejected.
func (p *Parser) ParsePayByDate(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == tutee.NoPayByDate {
		return time.Time{}, nil
	}
	d, err := timeutil.ParseDate(trimmed)
	if err != nil {
		return time.Time{}, newParseError(FieldPayBy, tutee.DateConstraints)
	}
	if d.Before(p.Today()) {
		return time.Time{}, newParseError(FieldPayBy, tutee.DateConstraints)
	}
	return d, nil
}

// ParsePayment parses an amount and a due date into a Payment whose overdue
// status is taken against today.
func (p *Parser) ParsePayment(amount, payByDate string) (*tutee.Payment, error) {
	value, err := ParsePaymentAmount(amount)
	if err != nil {
		return nil, err
	}
	due, err := p.ParsePayByDate(payByDate)
	if err != nil {
		return nil, err
	}
	return tutee.NewPayment(value, due, p.Today())
}
