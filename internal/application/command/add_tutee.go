// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"

	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD TUTEE COMMAND
// Registers a new tutee with a zero balance and no lessons.
// ══════════════════════════════════════════════════════════════════════════════

// AddTuteeCommand carries the raw user input.
type AddTuteeCommand struct {
	Name    string
	Phone   string
	Address string
	Level   string
	Tags    []string
}

// AddTuteeResult is returned on success.
type AddTuteeResult struct {
	Tutee *tutee.Tutee
}

// AddTuteeHandler handles AddTuteeCommand.
type AddTuteeHandler struct {
	deps Deps
}

// NewAddTuteeHandler creates a new AddTuteeHandler.
func NewAddTuteeHandler(deps Deps) *AddTuteeHandler {
	return &AddTuteeHandler{deps: deps.withDefaults()}
}

// Handle parses the input, stores the tutee and primes the cache.
// Parse failures are returned as *parser.ParseError.
func (h *AddTuteeHandler) Handle(ctx context.Context, cmd AddTuteeCommand) (*AddTuteeResult, error) {
	name, err := parser.ParseName(cmd.Name)
	if err != nil {
		return nil, err
	}
	phone, err := parser.ParsePhone(cmd.Phone)
	if err != nil {
		return nil, err
	}
	address, err := parser.ParseAddress(cmd.Address)
	if err != nil {
		return nil, err
	}
	level, err := parser.ParseLevel(cmd.Level)
	if err != nil {
		return nil, err
	}
	tags, err := parser.ParseTags(cmd.Tags)
	if err != nil {
		return nil, err
	}

	t := tutee.New(name, phone, address, level, tags, h.deps.Parser.Now())

	if err := h.deps.Repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("add_tutee: %w", err)
	}

	h.deps.primeCache(ctx, t)

	h.deps.Log.Info("tutee added",
		logger.TuteeID(t.ID.String()),
		logger.String("level", t.Level.String()),
		logger.Int("tags", len(t.Tags)),
	)

	return &AddTuteeResult{Tutee: t}, nil
}
