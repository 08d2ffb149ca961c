// Package tutee contains the domain model of a tutee: contact details,
// education level, tags, weekly lessons and payment status.
// It has no infrastructure dependencies.
package tutee

import (
	"time"

	"github.com/google/uuid"

	"github.com/tracko-hub/tracko/internal/domain/lesson"
	"github.com/tracko-hub/tracko/internal/domain/shared"
)

// Tutee is the central entity of the tracker.
type Tutee struct {
	// ID is the internal identifier.
	ID uuid.UUID

	Name    Name
	Phone   Phone
	Address Address
	Level   Level
	Tags    TagSet

	// Lessons are kept in insertion order.
	Lessons []lesson.Lesson

	// Payment is never nil for a tutee built with New.
	Payment *Payment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a tutee with a fresh ID and a zero balance.
func New(name Name, phone Phone, address Address, level Level, tags TagSet, now time.Time) *Tutee {
	if tags == nil {
		tags = NewTagSet()
	}
	return &Tutee{
		ID:        uuid.New(),
		Name:      name,
		Phone:     phone,
		Address:   address,
		Level:     level,
		Tags:      tags,
		Payment:   InitializePayment(now),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// HasLesson reports whether an identical lesson is already scheduled.
func (t *Tutee) HasLesson(l lesson.Lesson) bool {
	for _, existing := range t.Lessons {
		if existing == l {
			return true
		}
	}
	return false
}

// AddLesson schedules a new lesson. Identical lessons are rejected.
func (t *Tutee) AddLesson(l lesson.Lesson, now time.Time) error {
	if t.HasLesson(l) {
		return shared.ErrDuplicateLesson
	}
	t.Lessons = append(t.Lessons, l)
	t.UpdatedAt = now.UTC()
	return nil
}

// SetPayment replaces the payment record.
func (t *Tutee) SetPayment(p *Payment, now time.Time) {
	t.Payment = p
	t.UpdatedAt = now.UTC()
}
