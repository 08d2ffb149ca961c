// Package query contains read operations (CQRS - Queries).
package query

import (
	"github.com/tracko-hub/tracko/internal/domain/tutee"
)

// TuteeView is the read model of a tutee with its payment fields formatted
// for display.
type TuteeView struct {
	// ─────────────────────────────────────────────────────────────────────────
	// Identity
	// ─────────────────────────────────────────────────────────────────────────

	// Index is the one-based list position; zero when looked up by ID.
	Index int    `json:"index,omitempty"`
	ID    string `json:"id"`
	Name  string `json:"name"`

	// ─────────────────────────────────────────────────────────────────────────
	// Contact and schooling
	// ─────────────────────────────────────────────────────────────────────────

	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Level   string   `json:"level"`
	Stage   string   `json:"stage"`
	Tags    []string `json:"tags"`

	// Lessons are rendered as "Math: MONDAY 09:00-10:00".
	Lessons []string `json:"lessons"`

	// ─────────────────────────────────────────────────────────────────────────
	// Payment
	// ─────────────────────────────────────────────────────────────────────────

	Payment       string   `json:"payment"`
	PayByDate     string   `json:"pay_by_date"`
	Overdue       bool     `json:"overdue"`
	OverdueStatus string   `json:"overdue_status"`
	LastPaid      string   `json:"last_paid"`
	History       []string `json:"history"`
}

// NewTuteeView builds the read model of t.
func NewTuteeView(t *tutee.Tutee) TuteeView {
	lessons := make([]string, len(t.Lessons))
	for i, l := range t.Lessons {
		lessons[i] = l.String()
	}

	return TuteeView{
		ID:            t.ID.String(),
		Name:          t.Name.String(),
		Phone:         t.Phone.String(),
		Address:       t.Address.String(),
		Level:         t.Level.String(),
		Stage:         t.Level.Stage(),
		Tags:          t.Tags.Strings(),
		Lessons:       lessons,
		Payment:       t.Payment.Value(),
		PayByDate:     t.Payment.PayByDateString(),
		Overdue:       t.Payment.IsOverdue(),
		OverdueStatus: t.Payment.OverdueStatus(),
		LastPaid:      t.Payment.LastPaid(),
		History:       t.Payment.History(),
	}
}
