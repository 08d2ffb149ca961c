package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PAYMENT COMMAND
// Adds a fee to the outstanding balance and/or changes the pay-by date.
// ══════════════════════════════════════════════════════════════════════════════

// MessageNothingToUpdate is returned when neither field is given.
const MessageNothingToUpdate = "At least one of the payment amount or pay-by date must be provided"

// UpdatePaymentCommand carries the raw user input. Empty fields are left
// unchanged; a pay-by date of "-" clears it.
type UpdatePaymentCommand struct {
	Ref       string
	Amount    string
	PayByDate string
}

// UpdatePaymentHandler handles UpdatePaymentCommand.
type UpdatePaymentHandler struct {
	deps Deps
}

// NewUpdatePaymentHandler creates a new UpdatePaymentHandler.
func NewUpdatePaymentHandler(deps Deps) *UpdatePaymentHandler {
	return &UpdatePaymentHandler{deps: deps.withDefaults()}
}

// Handle applies the update. A resulting balance above tutee.MaximumAmount
// yields shared.ErrPaymentExceedsCap and nothing is saved.
func (h *UpdatePaymentHandler) Handle(ctx context.Context, cmd UpdatePaymentCommand) (*tutee.Tutee, error) {
	amount := strings.TrimSpace(cmd.Amount)
	payBy := strings.TrimSpace(cmd.PayByDate)
	if amount == "" && payBy == "" {
		return nil, shared.NewDomainError("payment", "Update", shared.ErrInvalidInput, MessageNothingToUpdate)
	}

	t, err := h.deps.find(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}
	old := t.Payment

	value := old.Value()
	if amount != "" {
		fee, err := parser.ParsePaymentAmount(amount)
		if err != nil {
			return nil, err
		}
		total := old.Amount().Add(decimal.RequireFromString(fee))
		if total.GreaterThan(tutee.MaximumAmount) {
			return nil, shared.ErrPaymentExceedsCap
		}
		value = tutee.FormatAmount(total)
	}

	due, _ := old.PayByDate()
	if payBy != "" {
		due, err = h.deps.Parser.ParsePayByDate(payBy)
		if err != nil {
			return nil, err
		}
	}

	next, err := rebuildPayment(value, due, h.deps.Parser.Today(), old.History())
	if err != nil {
		return nil, err
	}
	t.SetPayment(next, h.deps.Parser.Now())

	if err := h.deps.save(ctx, t); err != nil {
		return nil, fmt.Errorf("update_payment: %w", err)
	}

	h.deps.Log.Info("payment updated",
		logger.TuteeID(t.ID.String()),
		logger.String("balance", next.Value()),
		logger.String("pay_by", next.PayByDateString()),
	)

	return t, nil
}

// rebuildPayment creates a Payment and carries the history over.
func rebuildPayment(value string, due, today time.Time, history []string) (*tutee.Payment, error) {
	p, err := tutee.NewPayment(value, due, today)
	if err != nil {
		return nil, err
	}
	if !tutee.IsValidPaymentHistory(history) {
		return nil, shared.NewDomainError("payment", "CopyPaymentHistory", shared.ErrPrecondition, tutee.PaymentHistoryConstraints)
	}
	p.CopyPaymentHistory(history)
	return p, nil
}
