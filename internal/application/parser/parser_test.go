package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

func newTestParser(minimum time.Duration) *Parser {
	return New(Config{
		MinLessonDuration: minimum,
		Clock:             timeutil.FixedClock{At: time.Date(2021, 10, 20, 15, 0, 0, 0, time.UTC)},
	})
}

func assertParseError(t *testing.T, err error, field, message string) {
	t.Helper()
	require.Error(t, err)
	pe, ok := AsParseError(err)
	require.True(t, ok, "expected *ParseError, got %T", err)
	assert.Equal(t, field, pe.Field)
	assert.Equal(t, message, err.Error())
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{" 3 ", 3, false},
		{"007", 7, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"+1", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"99999999999999999999999", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIndex(tt.input)
			if tt.wantErr {
				assertParseError(t, err, FieldIndex, MessageInvalidIndex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.OneBased())
			assert.Equal(t, tt.want-1, got.ZeroBased())
		})
	}
}

func TestParseSimpleFields(t *testing.T) {
	name, err := ParseName("  Alex Yeoh ")
	require.NoError(t, err)
	assert.Equal(t, tutee.Name("Alex Yeoh"), name)

	_, err = ParseName("Alex*")
	assertParseError(t, err, FieldName, tutee.NameConstraints)

	phone, err := ParsePhone(" 87438807 ")
	require.NoError(t, err)
	assert.Equal(t, tutee.Phone("87438807"), phone)

	_, err = ParsePhone("12")
	assertParseError(t, err, FieldPhone, tutee.PhoneConstraints)

	address, err := ParseAddress(" Blk 30 Geylang Street 29, #06-40 ")
	require.NoError(t, err)
	assert.Equal(t, tutee.Address("Blk 30 Geylang Street 29, #06-40"), address)

	_, err = ParseAddress("   ")
	assertParseError(t, err, FieldAddress, tutee.AddressConstraints)

	level, err := ParseLevel("S3")
	require.NoError(t, err)
	assert.Equal(t, tutee.Level("S3"), level)

	_, err = ParseLevel("u1")
	assertParseError(t, err, FieldLevel, tutee.LevelConstraints)

	subject, err := ParseSubject(" Math ")
	require.NoError(t, err)
	assert.Equal(t, lesson.Subject("Math"), subject)

	_, err = ParseSubject("")
	assertParseError(t, err, FieldSubject, lesson.SubjectConstraints)
}

func TestParseTags(t *testing.T) {
	set, err := ParseTags([]string{"a", "a", "b"})
	require.NoError(t, err)
	assert.Len(t, set, 2)

	set, err = ParseTags(nil)
	require.NoError(t, err)
	assert.Empty(t, set)

	_, err = ParseTags([]string{"ok", "not ok", "#bad"})
	assertParseError(t, err, FieldTag, tutee.TagConstraints)
}

func TestParseDayOfWeek(t *testing.T) {
	d, err := ParseDayOfWeek(" MONDAY ")
	require.NoError(t, err)
	assert.Equal(t, lesson.Monday, d)

	for _, bad := range []string{"monday", "Mon", "", "FUNDAY"} {
		_, err := ParseDayOfWeek(bad)
		assertParseError(t, err, FieldDay, lesson.MessageInvalidDay)
	}
}

func TestParser_ParseTime(t *testing.T) {
	p := newTestParser(30 * time.Minute)

	got, err := p.ParseTime("MONDAY", "09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "MONDAY 09:00-10:00", got.String())

	_, err = p.ParseTime("MONDAY", "09:00", "09:05")
	assertParseError(t, err, FieldTime, lesson.MessageInvalidDuration(30*time.Minute))

	_, err = p.ParseTime("MONDAY", "10:00", "09:00")
	assertParseError(t, err, FieldTime, lesson.MessageInvalidDuration(30*time.Minute))

	withSeconds, err := p.ParseTime("FRIDAY", "09:00:30", "10:00:00")
	require.NoError(t, err)
	assert.Equal(t, "FRIDAY 09:00:30-10:00", withSeconds.String())
}

func TestParser_ParseTime_ShortMinimum(t *testing.T) {
	p := newTestParser(5 * time.Minute)

	_, err := p.ParseTime("MONDAY", "09:00", "09:05")
	assert.NoError(t, err)
}

func TestParser_ParseTime_CheckOrder(t *testing.T) {
	p := newTestParser(30 * time.Minute)

	// Bad day wins over bad times.
	_, err := p.ParseTime("monday", "9am", "25:00")
	assertParseError(t, err, FieldDay, lesson.MessageInvalidDay)

	// Bad format wins over bad duration.
	_, err = p.ParseTime("MONDAY", "09:00", "9:05")
	assertParseError(t, err, FieldTime, lesson.MessageInvalidTime)

	_, err = p.ParseTime("MONDAY", "24:00", "09:05")
	assertParseError(t, err, FieldTime, lesson.MessageInvalidTime)
}

func TestParser_ParseLesson(t *testing.T) {
	p := newTestParser(30 * time.Minute)

	l, err := p.ParseLesson("WEDNESDAY", "13:30", "15:00", "Physics")
	require.NoError(t, err)
	assert.Equal(t, "Physics: WEDNESDAY 13:30-15:00", l.String())

	_, err = p.ParseLesson("WEDNESDAY", "13:30", "15:00", "Phys!cs")
	assertParseError(t, err, FieldSubject, lesson.SubjectConstraints)

	_, err = p.ParseLesson("WEDNESDAY", "13:30", "13:40", "Physics")
	assertParseError(t, err, FieldTime, lesson.MessageInvalidDuration(30*time.Minute))
}

func TestParsePaymentAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		message string
	}{
		{" 74.50 ", "74.50", ""},
		{"100000", "100000", ""},
		{"0", "0", ""},
		{"abc", "", tutee.MessageConstraints},
		{"-5", "", tutee.MessageConstraints},
		{"40.5|", "", tutee.MessageConstraints},
		{"40.5", "", tutee.DecimalConstraints},
		{"40.51", "", tutee.DecimalConstraints},
		{"100000.05", "", tutee.AmountConstraints},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePaymentAmount(tt.input)
			if tt.message != "" {
				assertParseError(t, err, FieldPayment, tt.message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_ParsePayByDate(t *testing.T) {
	p := newTestParser(30 * time.Minute)

	none, err := p.ParsePayByDate(" - ")
	require.NoError(t, err)
	assert.True(t, none.IsZero())

	d, err := p.ParsePayByDate("20-10-2021")
	require.NoError(t, err)
	assert.Equal(t, timeutil.Date(2021, time.October, 20), d)

	for _, bad := range []string{"19-10-2021", "31-11-2021", "2021-10-25", "tomorrow"} {
		_, err := p.ParsePayByDate(bad)
		assertParseError(t, err, FieldPayBy, tutee.DateConstraints)
	}
}

func TestParser_ParsePayment(t *testing.T) {
	p := newTestParser(30 * time.Minute)

	pay, err := p.ParsePayment("120.50", "25-10-2021")
	require.NoError(t, err)
	assert.Equal(t, "120.50", pay.Value())
	assert.Equal(t, "25-10-2021", pay.PayByDateString())
	assert.False(t, pay.IsOverdue())

	pay, err = p.ParsePayment("10", "-")
	require.NoError(t, err)
	assert.Equal(t, "-", pay.PayByDateString())

	_, err = p.ParsePayment("10.1", "-")
	assertParseError(t, err, FieldPayment, tutee.DecimalConstraints)

	_, err = p.ParsePayment("10", "01-01-2000")
	assertParseError(t, err, FieldPayBy, tutee.DateConstraints)
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{})
	assert.Equal(t, lesson.DefaultMinimumDuration, p.MinLessonDuration())
	assert.False(t, p.Today().IsZero())
}
