package tutee

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines storage operations for tutees.
type Repository interface {
	// Create stores a new tutee.
	// Returns shared.ErrTuteeAlreadyExists on a duplicate ID or name.
	Create(ctx context.Context, t *Tutee) error

	// GetByID returns a tutee by ID.
	// Returns shared.ErrTuteeNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*Tutee, error)

	// List returns all tutees in display order (oldest first).
	List(ctx context.Context) ([]*Tutee, error)

	// Update persists every field of t.
	// Returns shared.ErrTuteeNotFound if it does not exist.
	Update(ctx context.Context, t *Tutee) error
}

// Cache is a read-through cache in front of Repository.
type Cache interface {
	// Get returns a cached tutee. A miss is reported as an error.
	Get(ctx context.Context, id uuid.UUID) (*Tutee, error)

	// Set caches t for ttl.
	Set(ctx context.Context, t *Tutee, ttl time.Duration) error

	// Invalidate removes t from the cache.
	Invalidate(ctx context.Context, id uuid.UUID) error
}
