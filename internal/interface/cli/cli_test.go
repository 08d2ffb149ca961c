package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracko-hub/tracko/config"
	"github.com/tracko-hub/tracko/internal/application/query"
	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Name = "tracko"
	cfg.App.Location = time.UTC
	cfg.Lesson.MinDuration = lesson.DefaultMinimumDuration
	cfg.Redis.Disabled = true

	clock := timeutil.FixedClock{At: time.Date(2021, 10, 20, 15, 0, 0, 0, time.UTC)}
	app := NewApp(cfg, logger.Discard(), clock)
	app.UseStore(NewMemoryStore(clock))
	return app
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(app)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{"name joins words", []string{"parse", "name", "Alex", "Yeoh"}, "Alex Yeoh\n", ""},
		{"index", []string{"parse", "index", "3"}, "3\n", ""},
		{"tags are sorted", []string{"parse", "tags", "physics", "math"}, "[math, physics]\n", ""},
		{"lesson", []string{"parse", "lesson", "MONDAY", "09:00", "10:30", "Math"}, "Math: MONDAY 09:00-10:30\n", ""},
		{"no pay-by date", []string{"parse", "paybydate", "-"}, "-\n", ""},
		{"payment", []string{"parse", "payment", "40.50", "25-10-2021"},
			"$40.50 (Last paid on: Never)\nOverdue: No (Next payment date by: 25-10-2021)\n", ""},
		{"invalid phone", []string{"parse", "phone", "12"}, "", tutee.PhoneConstraints},
		{"invalid index", []string{"parse", "index", "0"}, "", "Index is not a non-zero unsigned integer."},
		{"short lesson", []string{"parse", "time", "MONDAY", "09:00", "09:15"}, "", lesson.MessageInvalidDuration(30 * time.Minute)},
		{"wrong decimals", []string{"parse", "amount", "40.51"}, "", tutee.DecimalConstraints},
		{"wrong arity", []string{"parse", "time", "MONDAY"}, "", "parse time: expected <DAY> <start> <end>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, app, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		_, err := run(t, app, "parse", "colour", "red")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown field "colour"`)
	})
}

func TestTuteeCommands(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "tutee", "add", "-n", "Alex Yeoh", "-p", "98765432", "-a", "Clementi", "-l", "p5", "-t", "math")
	require.NoError(t, err)

	out, err := run(t, app, "tutee", "lesson", "1", "--subject", "Math", "--day", "MONDAY", "--start", "12:30", "--end", "14:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Math: MONDAY 12:30-14:30")

	_, err = run(t, app, "tutee", "payment", "1", "--amount", "100", "--pay-by", "25-10-2021")
	require.NoError(t, err)

	out, err = run(t, app, "tutee", "paid", "1", "--amount", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded $40 from Alex Yeoh")
	assert.Contains(t, out, "Payment: $60 (Last paid on: 20-10-2021)")

	out, err = run(t, app, "tutee", "list")
	require.NoError(t, err)
	assert.Equal(t, "1. Alex Yeoh  P5  $60\n", out)

	out, err = run(t, app, "tutee", "show", "1", "-o", "json")
	require.NoError(t, err)
	var view query.TuteeView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Index)
	assert.Equal(t, "60", view.Payment)
	assert.Equal(t, "25-10-2021", view.PayByDate)
	assert.Equal(t, []string{"Never", "20-10-2021"}, view.History)

	t.Run("errors surface the constraint message", func(t *testing.T) {
		_, err := run(t, app, "tutee", "paid", "1", "--amount", "100")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds the outstanding balance")

		_, err = run(t, app, "tutee", "show", "2")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "The tutee index provided is invalid")
	})
}

func TestMigrateRequiresDatabase(t *testing.T) {
	_, err := run(t, newTestApp(t), "migrate")
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestFormatTutee(t *testing.T) {
	v := query.TuteeView{
		Index:         2,
		ID:            "id-1",
		Name:          "Bernice Yu",
		Phone:         "91234567",
		Address:       "Jurong West",
		Level:         "s2",
		Stage:         "secondary",
		Tags:          []string{"physics"},
		Payment:       "40.50",
		PayByDate:     "15-10-2021",
		Overdue:       true,
		OverdueStatus: "Yes (on 15-10-2021)",
		LastPaid:      "Never",
	}

	want := "2. Bernice Yu\n" +
		"  ID:      id-1\n" +
		"  Phone:   91234567\n" +
		"  Address: Jurong West\n" +
		"  Level:   S2 (secondary)\n" +
		"  Tags:    [physics]\n" +
		"  Lessons: none\n" +
		"  Payment: $40.50 (Last paid on: Never)\n" +
		"  Overdue: Yes (on 15-10-2021)\n"
	assert.Equal(t, want, FormatTutee(v))
	assert.Equal(t, "2. Bernice Yu  S2  $40.50  OVERDUE since 15-10-2021", FormatTuteeLine(v))
}
