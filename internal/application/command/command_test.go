package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/internal/infrastructure/persistence/memory"
)

// tickClock advances one second per reading so creation order is stable.
type tickClock struct {
	at time.Time
}

func (c *tickClock) Now() time.Time {
	c.at = c.at.Add(time.Second)
	return c.at
}

type fixture struct {
	repo  *memory.TuteeRepository
	cache *memory.TuteeCache
	deps  Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &tickClock{at: time.Date(2021, 10, 20, 15, 0, 0, 0, time.UTC)}
	repo := memory.NewTuteeRepository(clock)
	cache := memory.NewTuteeCache(clock)
	return &fixture{
		repo:  repo,
		cache: cache,
		deps: Deps{
			Repo:     repo,
			Cache:    cache,
			CacheTTL: time.Hour,
			Parser:   parser.New(parser.Config{Clock: clock}),
		},
	}
}

func (f *fixture) addTutee(t *testing.T, name string) *tutee.Tutee {
	t.Helper()
	res, err := NewAddTuteeHandler(f.deps).Handle(context.Background(), AddTuteeCommand{
		Name:    name,
		Phone:   "98765432",
		Address: "Blk 123 Clementi Ave 3",
		Level:   "p5",
		Tags:    []string{"math"},
	})
	require.NoError(t, err)
	return res.Tutee
}

// ─────────────────────────────────────────────────────────────────────────────
// Add tutee
// ─────────────────────────────────────────────────────────────────────────────

func TestAddTutee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.addTutee(t, "Alex Yeoh")

	stored, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex Yeoh", stored.Name.String())
	assert.Equal(t, "0", stored.Payment.Value())
	assert.Equal(t, []string{tutee.NeverPaid}, stored.Payment.History())
	assert.True(t, stored.Tags.Contains("math"))

	cached, err := f.cache.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, cached.ID)
}

func TestAddTutee_InvalidField(t *testing.T) {
	f := newFixture(t)

	_, err := NewAddTuteeHandler(f.deps).Handle(context.Background(), AddTuteeCommand{
		Name:    "Alex Yeoh",
		Phone:   "12",
		Address: "Blk 123",
		Level:   "p5",
	})

	require.Error(t, err)
	pe, ok := parser.AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, parser.FieldPhone, pe.Field)
	assert.Equal(t, tutee.PhoneConstraints, err.Error())
}

func TestAddTutee_DuplicateNameIgnoresCase(t *testing.T) {
	f := newFixture(t)
	f.addTutee(t, "Alex Yeoh")

	_, err := NewAddTuteeHandler(f.deps).Handle(context.Background(), AddTuteeCommand{
		Name:    "alex yeoh",
		Phone:   "91234567",
		Address: "Elsewhere",
		Level:   "s1",
	})

	assert.True(t, shared.IsAlreadyExists(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// Add lesson
// ─────────────────────────────────────────────────────────────────────────────

func TestAddLesson(t *testing.T) {
	f := newFixture(t)
	f.addTutee(t, "Alex Yeoh")
	second := f.addTutee(t, "Bernice Yu")
	h := NewAddLessonHandler(f.deps)
	ctx := context.Background()

	cmd := AddLessonCommand{Ref: "2", Subject: "Math", Day: "MONDAY", Start: "12:30", End: "14:30"}
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	require.Len(t, got.Lessons, 1)

	stored, err := f.repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lessons, 1)
	assert.Equal(t, "Math", stored.Lessons[0].Subject().String())

	t.Run("duplicate lesson", func(t *testing.T) {
		_, err := h.Handle(ctx, cmd)
		assert.ErrorIs(t, err, shared.ErrDuplicateLesson)
	})

	t.Run("by id", func(t *testing.T) {
		byID := cmd
		byID.Ref = second.ID.String()
		byID.Day = "FRIDAY"
		got, err := h.Handle(ctx, byID)
		require.NoError(t, err)
		assert.Len(t, got.Lessons, 2)
	})
}

func TestAddLesson_Errors(t *testing.T) {
	f := newFixture(t)
	f.addTutee(t, "Alex Yeoh")
	h := NewAddLessonHandler(f.deps)
	ctx := context.Background()

	t.Run("index past the end", func(t *testing.T) {
		_, err := h.Handle(ctx, AddLessonCommand{Ref: "5", Subject: "Math", Day: "MONDAY", Start: "12:30", End: "14:30"})
		assert.ErrorIs(t, err, shared.ErrInvalidTuteeIndex)
	})

	t.Run("malformed index", func(t *testing.T) {
		_, err := h.Handle(ctx, AddLessonCommand{Ref: "0", Subject: "Math", Day: "MONDAY", Start: "12:30", End: "14:30"})
		require.Error(t, err)
		assert.Equal(t, parser.MessageInvalidIndex, err.Error())
	})

	t.Run("too short", func(t *testing.T) {
		_, err := h.Handle(ctx, AddLessonCommand{Ref: "1", Subject: "Math", Day: "MONDAY", Start: "12:30", End: "12:45"})
		pe, ok := parser.AsParseError(err)
		require.True(t, ok)
		assert.Equal(t, parser.FieldTime, pe.Field)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Payments
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdatePayment(t *testing.T) {
	f := newFixture(t)
	created := f.addTutee(t, "Alex Yeoh")
	h := NewUpdatePaymentHandler(f.deps)
	ctx := context.Background()

	got, err := h.Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "40.50", PayByDate: "25-10-2021"})
	require.NoError(t, err)
	assert.Equal(t, "40.50", got.Payment.Value())
	assert.Equal(t, "25-10-2021", got.Payment.PayByDateString())
	assert.False(t, got.Payment.IsOverdue())

	got, err = h.Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "10"})
	require.NoError(t, err)
	assert.Equal(t, "50.50", got.Payment.Value())
	assert.Equal(t, "25-10-2021", got.Payment.PayByDateString(), "pay-by date is kept")

	got, err = h.Handle(ctx, UpdatePaymentCommand{Ref: "1", PayByDate: "-"})
	require.NoError(t, err)
	assert.Equal(t, "50.50", got.Payment.Value())
	assert.Equal(t, tutee.NoPayByDate, got.Payment.PayByDateString())

	cached, err := f.cache.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.50", cached.Payment.Value())
}

func TestUpdatePayment_Errors(t *testing.T) {
	f := newFixture(t)
	f.addTutee(t, "Alex Yeoh")
	h := NewUpdatePaymentHandler(f.deps)
	ctx := context.Background()

	t.Run("nothing to update", func(t *testing.T) {
		_, err := h.Handle(ctx, UpdatePaymentCommand{Ref: "1"})
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), MessageNothingToUpdate)
	})

	t.Run("past pay-by date", func(t *testing.T) {
		_, err := h.Handle(ctx, UpdatePaymentCommand{Ref: "1", PayByDate: "19-10-2021"})
		require.Error(t, err)
		assert.Equal(t, tutee.DateConstraints, err.Error())
	})

	t.Run("bad decimals", func(t *testing.T) {
		_, err := h.Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "40.51"})
		require.Error(t, err)
		assert.Equal(t, tutee.DecimalConstraints, err.Error())
	})

	t.Run("cap exceeded", func(t *testing.T) {
		_, err := h.Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "100000"})
		require.NoError(t, err)

		_, err = h.Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "0.05"})
		assert.ErrorIs(t, err, shared.ErrPaymentExceedsCap)

		stored, err := f.repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "100000", stored[0].Payment.Value(), "failed update is not saved")
	})
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(t)
	f.addTutee(t, "Alex Yeoh")
	ctx := context.Background()

	_, err := NewUpdatePaymentHandler(f.deps).Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "100", PayByDate: "25-10-2021"})
	require.NoError(t, err)

	h := NewRecordPaymentHandler(f.deps)

	got, err := h.Handle(ctx, RecordPaymentCommand{Ref: "1", Amount: "40"})
	require.NoError(t, err)
	assert.Equal(t, "60", got.Payment.Value())
	assert.Equal(t, "25-10-2021", got.Payment.PayByDateString())
	assert.Equal(t, []string{tutee.NeverPaid, "20-10-2021"}, got.Payment.History())
	assert.Equal(t, "20-10-2021", got.Payment.LastPaid())

	t.Run("more than the balance", func(t *testing.T) {
		_, err := h.Handle(ctx, RecordPaymentCommand{Ref: "1", Amount: "60.05"})
		assert.ErrorIs(t, err, shared.ErrPaymentExceedsBalance)
	})

	t.Run("settling clears the pay-by date", func(t *testing.T) {
		got, err := h.Handle(ctx, RecordPaymentCommand{Ref: "1", Amount: "60"})
		require.NoError(t, err)
		assert.Equal(t, "0", got.Payment.Value())
		assert.Equal(t, tutee.NoPayByDate, got.Payment.PayByDateString())
		assert.Len(t, got.Payment.History(), 3)
	})
}

func TestRecordPayment_NewPayByDate(t *testing.T) {
	f := newFixture(t)
	f.addTutee(t, "Alex Yeoh")
	ctx := context.Background()

	_, err := NewUpdatePaymentHandler(f.deps).Handle(ctx, UpdatePaymentCommand{Ref: "1", Amount: "50"})
	require.NoError(t, err)

	got, err := NewRecordPaymentHandler(f.deps).Handle(ctx, RecordPaymentCommand{Ref: "1", Amount: "50", PayByDate: "20-11-2021"})
	require.NoError(t, err)
	assert.Equal(t, "0", got.Payment.Value())
	assert.Equal(t, "20-11-2021", got.Payment.PayByDateString())
}

func TestRecordPayment_InvalidAmountSkipsLookup(t *testing.T) {
	f := newFixture(t)

	_, err := NewRecordPaymentHandler(f.deps).Handle(context.Background(), RecordPaymentCommand{Ref: "9", Amount: "abc"})

	require.Error(t, err)
	assert.Equal(t, tutee.MessageConstraints, err.Error())
	assert.False(t, errors.Is(err, shared.ErrInvalidTuteeIndex))
}
