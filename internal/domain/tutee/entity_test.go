package tutee

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

func mustLesson(t *testing.T, subject string, day lesson.DayOfWeek, startHour int) lesson.Lesson {
	t.Helper()
	slot, err := lesson.NewTime(day,
		timeutil.NewTimeOfDay(startHour, 0, 0),
		timeutil.NewTimeOfDay(startHour+1, 0, 0),
		lesson.DefaultMinimumDuration)
	require.NoError(t, err)
	l, err := lesson.New(lesson.Subject(subject), slot)
	require.NoError(t, err)
	return l
}

func TestNew(t *testing.T) {
	now := time.Date(2021, 10, 20, 9, 30, 0, 0, time.UTC)

	tt := New("Alex Yeoh", "87438807", "Blk 30 Geylang Street 29", "s3", nil, now)

	assert.NotEqual(t, uuid.Nil, tt.ID)
	assert.NotNil(t, tt.Tags)
	assert.Equal(t, "0", tt.Payment.Value())
	assert.Equal(t, []string{"Never"}, tt.Payment.History())
	assert.Equal(t, now, tt.CreatedAt)
	assert.Equal(t, now, tt.UpdatedAt)
}

func TestTutee_AddLesson(t *testing.T) {
	created := time.Date(2021, 10, 20, 9, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)
	tt := New("Alex Yeoh", "87438807", "Blk 30", "s3", NewTagSet("math"), created)

	math := mustLesson(t, "Math", lesson.Monday, 9)
	require.NoError(t, tt.AddLesson(math, later))
	assert.Equal(t, later, tt.UpdatedAt)

	err := tt.AddLesson(mustLesson(t, "Math", lesson.Monday, 9), later)
	assert.True(t, errors.Is(err, shared.ErrDuplicateLesson))
	assert.True(t, shared.IsAlreadyExists(err))

	require.NoError(t, tt.AddLesson(mustLesson(t, "Math", lesson.Tuesday, 9), later))
	require.NoError(t, tt.AddLesson(mustLesson(t, "Physics", lesson.Monday, 9), later))
	assert.Len(t, tt.Lessons, 3)
}
