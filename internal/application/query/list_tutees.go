package query

import (
	"context"

	"github.com/tracko-hub/tracko/internal/domain/tutee"
)

// ListTuteesQuery optionally narrows the listing.
type ListTuteesQuery struct {
	// OverdueOnly keeps tutees whose payment is overdue today.
	OverdueOnly bool
}

// ListTuteesHandler handles ListTuteesQuery.
type ListTuteesHandler struct {
	repo tutee.Repository
}

// NewListTuteesHandler creates a new ListTuteesHandler.
func NewListTuteesHandler(repo tutee.Repository) *ListTuteesHandler {
	return &ListTuteesHandler{repo: repo}
}

// Handle returns the views in list order. Index always reflects the position
// in the full list so it can be passed back as a reference.
func (h *ListTuteesHandler) Handle(ctx context.Context, q ListTuteesQuery) ([]TuteeView, error) {
	all, err := h.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]TuteeView, 0, len(all))
	for i, t := range all {
		if q.OverdueOnly && !t.Payment.IsOverdue() {
			continue
		}
		v := NewTuteeView(t)
		v.Index = i + 1
		views = append(views, v)
	}
	return views, nil
}
