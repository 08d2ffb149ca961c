package tutee

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// Constraint messages shown for payment input.
const (
	MessageConstraints = "Payment values should only contain non-negative numbers with at least 1 digit, " +
		"allowing 0 or 2 decimals i.e 0, 100 or 74.50"
	DecimalConstraints = "Payment values must have either 0 or 2 decimal places. If it has 2 decimal places, " +
		"it must end with either a 0 or 5, i.e 40.50 or 40.55."
	AmountConstraints = "Payment value should not exceed $100,000"
	DateConstraints   = "Payment due dates should be a valid date in the format of dd-MM-yyyy, i.e 20-10-2021 " +
		"and must equal to or after today's date."
	PaymentHistoryConstraints = "Payment history should only contain dates in the format of dd-MM-yyyy, " +
		"i.e 20-10-2021, and 'Never'."
)

const (
	// NeverPaid is the history sentinel meaning no payment has been made yet.
	NeverPaid = "Never"

	// NoPayByDate is the display form of an unset pay-by date.
	NoPayByDate = "-"
)

// MaximumAmount is the largest balance a tutee may carry.
var MaximumAmount = decimal.NewFromInt(100000)

var (
	anyDecimalsRegex = regexp.MustCompile(`^[0-9]\d*(\.[0-9]+)?$`)

	// Either no fraction or exactly two digits, the second being 0 or 5.
	paymentRegex = regexp.MustCompile(`^[0-9]\d*(\.[0-9][05])?$`)
)

// Payment is a tutee's outstanding balance, due date and payment history.
//
// Every field except the history is fixed at construction. Overdue status is
// a snapshot taken against the "today" passed to NewPayment and is not
// re-evaluated afterwards. A Payment is not safe for concurrent use.
type Payment struct {
	value             string
	payByDate         time.Time
	payByDateAsString string
	overdue           bool
	history           []string
}

// NewPayment creates a Payment. value must satisfy IsValidPaymentFormat; it is
// stored verbatim. A zero payByDate means no due date is set.
func NewPayment(value string, payByDate time.Time, today time.Time) (*Payment, error) {
	if !IsValidPaymentFormat(value) {
		return nil, shared.NewDomainError("payment", "NewPayment", shared.ErrPrecondition, MessageConstraints)
	}

	p := &Payment{
		value:             value,
		payByDateAsString: NoPayByDate,
		history:           []string{NeverPaid},
	}
	if !payByDate.IsZero() {
		p.payByDate = timeutil.StartOfDay(payByDate)
		p.payByDateAsString = timeutil.FormatDate(p.payByDate)
		p.overdue = timeutil.StartOfDay(today).After(p.payByDate)
	}
	return p, nil
}

// InitializePayment returns a zero balance with no due date.
func InitializePayment(today time.Time) *Payment {
	p, err := NewPayment("0", time.Time{}, today)
	if err != nil {
		panic(err) // "0" always matches the grammar
	}
	return p
}

// IsValidPaymentFormat reports whether s matches the strict amount grammar.
func IsValidPaymentFormat(s string) bool {
	return paymentRegex.MatchString(s)
}

// IsNumberWithAnyDecimals reports whether s is a non-negative number with any
// number of decimal places. It may still be an invalid payment.
func IsNumberWithAnyDecimals(s string) bool {
	return anyDecimalsRegex.MatchString(s)
}

// IsValidPaymentAmount reports whether s does not exceed MaximumAmount.
// Callers must check IsValidPaymentFormat first.
func IsValidPaymentAmount(s string) bool {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return amount.LessThanOrEqual(MaximumAmount)
}

// IsValidPayByDate reports whether s is "-" or a strict dd-MM-yyyy date.
func IsValidPayByDate(s string) bool {
	if s == NoPayByDate {
		return true
	}
	_, err := timeutil.ParseDate(s)
	return err == nil
}

// IsValidPaymentHistory reports whether history starts with "Never" and every
// later entry passes IsValidPayByDate.
func IsValidPaymentHistory(history []string) bool {
	if len(history) == 0 || history[0] != NeverPaid {
		return false
	}
	for _, entry := range history[1:] {
		if !IsValidPayByDate(entry) {
			return false
		}
	}
	return true
}

// CopyPaymentHistory replaces the history with a copy of history.
// Invalid input is ignored without error; callers that need to know must
// check IsValidPaymentHistory themselves.
func (p *Payment) CopyPaymentHistory(history []string) {
	if !IsValidPaymentHistory(history) {
		return
	}
	p.history = append(make([]string, 0, len(history)), history...)
}

// Value returns the amount exactly as given at construction.
func (p *Payment) Value() string {
	return p.value
}

// Amount returns the value as a decimal.
func (p *Payment) Amount() decimal.Decimal {
	return decimal.RequireFromString(p.value)
}

// PayByDate returns the due date and whether one is set.
func (p *Payment) PayByDate() (time.Time, bool) {
	return p.payByDate, !p.payByDate.IsZero()
}

// PayByDateString returns the due date as dd-MM-yyyy, or "-" when unset.
func (p *Payment) PayByDateString() string {
	return p.payByDateAsString
}

// IsOverdue reports the overdue snapshot taken at construction.
func (p *Payment) IsOverdue() bool {
	return p.overdue
}

// History returns a copy of the payment history.
func (p *Payment) History() []string {
	return append([]string(nil), p.history...)
}

// LastPaid returns the most recent history entry.
func (p *Payment) LastPaid() string {
	return p.history[len(p.history)-1]
}

// OverdueStatus describes the overdue state for display.
func (p *Payment) OverdueStatus() string {
	switch {
	case p.overdue:
		return "Yes (on " + p.payByDateAsString + ")"
	case p.payByDateAsString == NoPayByDate:
		return "No (Pay-by date not set)"
	default:
		return "No (Next payment date by: " + p.payByDateAsString + ")"
	}
}

// Equal compares payments by value only.
func (p *Payment) Equal(other *Payment) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.value == other.value
}

// String returns a multi-line summary.
func (p *Payment) String() string {
	return fmt.Sprintf("$%s (Last paid on: %s)\nOverdue: %s", p.value, p.LastPaid(), p.OverdueStatus())
}

// FormatAmount renders a decimal in the payment grammar: whole numbers without
// a fraction, everything else with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}
