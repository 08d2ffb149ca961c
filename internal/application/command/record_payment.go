package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD PAYMENT COMMAND
// Records money received from a tutee: reduces the balance and appends
// today's date to the payment history.
// ══════════════════════════════════════════════════════════════════════════════

// RecordPaymentCommand carries the raw user input. PayByDate is optional.
type RecordPaymentCommand struct {
	Ref       string
	Amount    string
	PayByDate string
}

// RecordPaymentHandler handles RecordPaymentCommand.
type RecordPaymentHandler struct {
	deps Deps
}

// NewRecordPaymentHandler creates a new RecordPaymentHandler.
func NewRecordPaymentHandler(deps Deps) *RecordPaymentHandler {
	return &RecordPaymentHandler{deps: deps.withDefaults()}
}

// Handle records the payment. Paying more than the balance yields
// shared.ErrPaymentExceedsBalance. When the balance reaches zero and no new
// pay-by date is given, the pay-by date is cleared.
func (h *RecordPaymentHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*tutee.Tutee, error) {
	paid, err := parser.ParsePaymentAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	t, err := h.deps.find(ctx, cmd.Ref)
	if err != nil {
		return nil, err
	}
	old := t.Payment

	amount := decimal.RequireFromString(paid)
	balance := old.Amount()
	if amount.GreaterThan(balance) {
		return nil, shared.ErrPaymentExceedsBalance
	}
	remaining := balance.Sub(amount)

	var due time.Time
	switch {
	case cmd.PayByDate != "":
		due, err = h.deps.Parser.ParsePayByDate(cmd.PayByDate)
		if err != nil {
			return nil, err
		}
	case !remaining.IsZero():
		due, _ = old.PayByDate()
	}

	today := h.deps.Parser.Today()
	history := append(old.History(), timeutil.FormatDate(today))

	next, err := rebuildPayment(tutee.FormatAmount(remaining), due, today, history)
	if err != nil {
		return nil, err
	}
	t.SetPayment(next, h.deps.Parser.Now())

	if err := h.deps.save(ctx, t); err != nil {
		return nil, fmt.Errorf("record_payment: %w", err)
	}

	h.deps.Log.Info("payment recorded",
		logger.TuteeID(t.ID.String()),
		logger.String("paid", paid),
		logger.String("balance", next.Value()),
	)

	return t, nil
}
