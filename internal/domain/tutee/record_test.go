package tutee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
)

func TestRecord_RoundTrip(t *testing.T) {
	created := time.Date(2021, 10, 1, 8, 0, 0, 0, time.UTC)
	orig := New("Bernice Yu", "99272758", "Blk 30 Lorong 3 Serangoon Gardens", "p5", NewTagSet("math", "weekend"), created)
	require.NoError(t, orig.AddLesson(mustLesson(t, "Math", lesson.Saturday, 10), created))

	due := today.AddDate(0, 0, -2)
	p, err := NewPayment("250.50", due, created)
	require.NoError(t, err)
	p.CopyPaymentHistory([]string{"Never", "01-09-2021"})
	orig.SetPayment(p, created)

	rec := orig.ToRecord()
	assert.Equal(t, "18-10-2021", rec.Payment.PayByDate)
	assert.Equal(t, []string{"math", "weekend"}, rec.Tags)
	assert.Equal(t, LessonRecord{Subject: "Math", Day: "SATURDAY", Start: "10:00", End: "11:00"}, rec.Lessons[0])

	back, err := FromRecord(rec, today)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, back.ID)
	assert.Equal(t, orig.Name, back.Name)
	assert.Equal(t, orig.Tags, back.Tags)
	assert.Equal(t, orig.Lessons, back.Lessons)
	assert.Equal(t, "250.50", back.Payment.Value())
	assert.Equal(t, []string{"Never", "01-09-2021"}, back.Payment.History())
	// Overdue is re-evaluated against the load date.
	assert.True(t, back.Payment.IsOverdue())
}

func TestFromRecord_RejectsCorruptData(t *testing.T) {
	valid := New("Alex", "123", "Here", "s1", nil, today).ToRecord()

	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{"name", func(r *Record) { r.Name = "" }},
		{"level", func(r *Record) { r.Level = "z9" }},
		{"tag", func(r *Record) { r.Tags = []string{"a b"} }},
		{"lesson day", func(r *Record) {
			r.Lessons = []LessonRecord{{Subject: "Math", Day: "monday", Start: "09:00", End: "10:00"}}
		}},
		{"payment value", func(r *Record) { r.Payment.Value = "1.1" }},
		{"pay-by date", func(r *Record) { r.Payment.PayByDate = "31-02-2021" }},
		{"history", func(r *Record) { r.Payment.History = []string{"01-01-2021"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			rec.Payment.History = append([]string(nil), valid.Payment.History...)
			tt.mutate(&rec)

			_, err := FromRecord(rec, today)
			require.Error(t, err)
			assert.True(t, shared.IsPrecondition(err))
		})
	}
}
