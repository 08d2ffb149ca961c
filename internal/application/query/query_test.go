package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/internal/infrastructure/persistence/memory"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

var clock = timeutil.FixedClock{At: time.Date(2021, 10, 20, 15, 0, 0, 0, time.UTC)}

func seed(t *testing.T, repo *memory.TuteeRepository, name string, created time.Time, payment *tutee.Payment) *tutee.Tutee {
	t.Helper()
	n, err := tutee.NewName(name)
	require.NoError(t, err)
	level, err := tutee.NewLevel("s2")
	require.NoError(t, err)

	tt := tutee.New(n, "91234567", "Jurong West", level, tutee.NewTagSet("physics"), created)
	if payment != nil {
		tt.SetPayment(payment, created)
	}
	require.NoError(t, repo.Create(context.Background(), tt))
	return tt
}

func TestGetTuteeHandler_ByIDUsesCache(t *testing.T) {
	repo := memory.NewTuteeRepository(clock)
	cache := memory.NewTuteeCache(clock)
	created := seed(t, repo, "Alex Yeoh", clock.At, nil)
	h := NewGetTuteeHandler(repo, cache, time.Minute, nil)
	ctx := context.Background()

	view, err := h.Handle(ctx, GetTuteeQuery{Ref: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Alex Yeoh", view.Name)
	assert.Equal(t, "secondary", view.Stage)
	assert.Equal(t, []string{"physics"}, view.Tags)
	assert.Equal(t, "0", view.Payment)
	assert.Equal(t, tutee.NoPayByDate, view.PayByDate)
	assert.Equal(t, "No (Pay-by date not set)", view.OverdueStatus)
	assert.Equal(t, tutee.NeverPaid, view.LastPaid)
	assert.Zero(t, view.Index)
	assert.Equal(t, 1, cache.Misses)
	assert.Equal(t, 1, cache.Len())

	_, err = h.Handle(ctx, GetTuteeQuery{Ref: created.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Hits)
}

func TestGetTuteeHandler_ByIndex(t *testing.T) {
	repo := memory.NewTuteeRepository(clock)
	seed(t, repo, "Alex Yeoh", clock.At.Add(-2*time.Hour), nil)
	second := seed(t, repo, "Bernice Yu", clock.At.Add(-time.Hour), nil)
	h := NewGetTuteeHandler(repo, nil, 0, nil)

	view, err := h.Handle(context.Background(), GetTuteeQuery{Ref: " 2 "})
	require.NoError(t, err)
	assert.Equal(t, second.ID.String(), view.ID)
	assert.Equal(t, 2, view.Index)

	_, err = h.Handle(context.Background(), GetTuteeQuery{Ref: "3"})
	assert.ErrorIs(t, err, shared.ErrInvalidTuteeIndex)
}

func TestGetTuteeHandler_UnknownID(t *testing.T) {
	repo := memory.NewTuteeRepository(clock)
	h := NewGetTuteeHandler(repo, memory.NewTuteeCache(clock), time.Minute, nil)

	_, err := h.Handle(context.Background(), GetTuteeQuery{Ref: "6f1c1f36-3c36-4d43-9a3e-0d5c2b0a0f11"})
	assert.True(t, shared.IsNotFound(err))
}

func TestListTuteesHandler(t *testing.T) {
	repo := memory.NewTuteeRepository(clock)
	today := timeutil.Today(clock)

	overdue, err := tutee.NewPayment("40.50", today.AddDate(0, 0, -5), today)
	require.NoError(t, err)
	notYet, err := tutee.NewPayment("10", today, today)
	require.NoError(t, err)

	seed(t, repo, "Alex Yeoh", clock.At.Add(-3*time.Hour), notYet)
	late := seed(t, repo, "Bernice Yu", clock.At.Add(-2*time.Hour), overdue)
	withLesson := seed(t, repo, "Charlotte Oliveiro", clock.At.Add(-time.Hour), nil)

	subject, err := lesson.NewSubject("Physics")
	require.NoError(t, err)
	slot, err := lesson.NewTime(lesson.Monday, timeutil.NewTimeOfDay(9, 0, 0), timeutil.NewTimeOfDay(10, 0, 0), lesson.DefaultMinimumDuration)
	require.NoError(t, err)
	l, err := lesson.New(subject, slot)
	require.NoError(t, err)
	require.NoError(t, withLesson.AddLesson(l, clock.At))
	require.NoError(t, repo.Update(context.Background(), withLesson))

	h := NewListTuteesHandler(repo)

	all, err := h.Handle(context.Background(), ListTuteesQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].Index, all[1].Index, all[2].Index})
	assert.Equal(t, "No (Next payment date by: 20-10-2021)", all[0].OverdueStatus)
	assert.Equal(t, []string{"Physics: MONDAY 09:00-10:00"}, all[2].Lessons)

	due, err := h.Handle(context.Background(), ListTuteesQuery{OverdueOnly: true})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, late.ID.String(), due[0].ID)
	assert.Equal(t, 2, due[0].Index)
	assert.True(t, due[0].Overdue)
	assert.Equal(t, "Yes (on 15-10-2021)", due[0].OverdueStatus)
}
