package query

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tracko-hub/tracko/internal/application/lookup"
	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TUTEE QUERY
// Reads one tutee by ID or list index. ID lookups go through the cache.
// ══════════════════════════════════════════════════════════════════════════════

// GetTuteeQuery identifies the tutee to read.
type GetTuteeQuery struct {
	// Ref is a one-based list index or a tutee ID.
	Ref string
}

// GetTuteeHandler handles GetTuteeQuery.
type GetTuteeHandler struct {
	repo     tutee.Repository
	cache    tutee.Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewGetTuteeHandler creates a new GetTuteeHandler. cache may be nil.
func NewGetTuteeHandler(repo tutee.Repository, cache tutee.Cache, cacheTTL time.Duration, log *logger.Logger) *GetTuteeHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &GetTuteeHandler{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.With(logger.Component("query")),
	}
}

// Handle returns the tutee's view.
func (h *GetTuteeHandler) Handle(ctx context.Context, q GetTuteeQuery) (*TuteeView, error) {
	if id, err := uuid.Parse(strings.TrimSpace(q.Ref)); err == nil {
		t, err := h.byID(ctx, id)
		if err != nil {
			return nil, err
		}
		view := NewTuteeView(t)
		return &view, nil
	}

	idx, t, err := h.byIndex(ctx, q.Ref)
	if err != nil {
		return nil, err
	}
	view := NewTuteeView(t)
	view.Index = idx
	return &view, nil
}

func (h *GetTuteeHandler) byID(ctx context.Context, id uuid.UUID) (*tutee.Tutee, error) {
	if h.cache != nil {
		if t, err := h.cache.Get(ctx, id); err == nil {
			return t, nil
		}
	}

	t, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, t, h.cacheTTL); err != nil {
			h.log.Warn("cache fill failed", logger.TuteeID(id.String()), logger.Err(err))
		}
	}
	return t, nil
}

func (h *GetTuteeHandler) byIndex(ctx context.Context, ref string) (int, *tutee.Tutee, error) {
	t, err := lookup.Find(ctx, h.repo, ref)
	if err != nil {
		return 0, nil, err
	}
	idx, err := parser.ParseIndex(ref)
	if err != nil {
		return 0, nil, err
	}
	return idx.OneBased(), t, nil
}
