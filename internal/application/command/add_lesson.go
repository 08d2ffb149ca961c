package command

import (
	"context"
	"fmt"

	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD LESSON COMMAND
// Schedules a weekly lesson for an existing tutee.
// ══════════════════════════════════════════════════════════════════════════════

// AddLessonCommand carries the raw user input.
type AddLessonCommand struct {
	// Ref is a one-based list index or a tutee ID.
	Ref string

	Subject string
	Day     string
	Start   string
	End     string
}

// AddLessonHandler handles AddLessonCommand.
type AddLessonHandler struct {
	deps Deps
}

// NewAddLessonHandler creates a new AddLessonHandler.
func NewAddLessonHandler(deps Deps) *AddLessonHandler {
	return &AddLessonHandler{deps: deps.withDefaults()}
}

// Handle adds the lesson. An identical lesson yields shared.ErrDuplicateLesson.
func (h *AddLessonHandler) Handle(ctx context.Context, cmd AddLessonCommand) (*tutee.Tutee, error) {
	t, err := h.deps.find(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}

	l, err := h.deps.Parser.ParseLesson(cmd.Day, cmd.Start, cmd.End, cmd.Subject)
	if err != nil {
		return nil, err
	}

	if err := t.AddLesson(l, h.deps.Parser.Now()); err != nil {
		return nil, err
	}

	if err := h.deps.save(ctx, t); err != nil {
		return nil, fmt.Errorf("add_lesson: %w", err)
	}

	h.deps.Log.Info("lesson added",
		logger.TuteeID(t.ID.String()),
		logger.String("lesson", l.String()),
	)

	return t, nil
}
