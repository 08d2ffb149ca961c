// Package memory provides in-process implementations of the tutee storage
// interfaces. They back the CLI when no database is configured and serve as
// test doubles for the application layer.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// TuteeRepository stores tutee records in a map. Records are copied in and
// out so callers never share state with the store.
type TuteeRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]tutee.Record
	clock   timeutil.Clock
}

// NewTuteeRepository creates an empty repository.
func NewTuteeRepository(clock timeutil.Clock) *TuteeRepository {
	return &TuteeRepository{records: make(map[uuid.UUID]tutee.Record), clock: clock}
}

// Create stores a new tutee. Names are unique, ignoring case.
func (r *TuteeRepository) Create(_ context.Context, t *tutee.Tutee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[t.ID]; ok {
		return shared.ErrTuteeAlreadyExists
	}
	if r.nameTaken(t.ID, t.Name) {
		return shared.ErrTuteeAlreadyExists
	}
	r.records[t.ID] = t.ToRecord()
	return nil
}

// GetByID returns a tutee by ID.
func (r *TuteeRepository) GetByID(_ context.Context, id uuid.UUID) (*tutee.Tutee, error) {
	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return nil, shared.ErrTuteeNotFound
	}
	return tutee.FromRecord(rec, timeutil.Today(r.clock))
}

// List returns all tutees ordered by creation time.
func (r *TuteeRepository) List(_ context.Context) ([]*tutee.Tutee, error) {
	r.mu.RLock()
	recs := make([]tutee.Record, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID.String() < recs[j].ID.String()
		}
		return recs[i].CreatedAt.Before(recs[j].CreatedAt)
	})

	today := timeutil.Today(r.clock)
	out := make([]*tutee.Tutee, 0, len(recs))
	for _, rec := range recs {
		t, err := tutee.FromRecord(rec, today)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Update replaces a stored tutee.
func (r *TuteeRepository) Update(_ context.Context, t *tutee.Tutee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.records[t.ID]
	if !ok {
		return shared.ErrTuteeNotFound
	}
	if r.nameTaken(t.ID, t.Name) {
		return shared.ErrTuteeAlreadyExists
	}
	rec := t.ToRecord()
	rec.CreatedAt = old.CreatedAt
	r.records[t.ID] = rec
	return nil
}

func (r *TuteeRepository) nameTaken(self uuid.UUID, name tutee.Name) bool {
	for id, rec := range r.records {
		if id != self && strings.EqualFold(rec.Name, name.String()) {
			return true
		}
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// CACHE
// ══════════════════════════════════════════════════════════════════════════════

// ErrCacheMiss is returned by TuteeCache.Get for absent or expired entries.
var ErrCacheMiss = shared.NewDomainError("cache", "Get", shared.ErrNotFound, "cache miss")

type cacheEntry struct {
	rec       tutee.Record
	expiresAt time.Time
}

// TuteeCache is a TTL map implementing tutee.Cache.
type TuteeCache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]cacheEntry
	clock   timeutil.Clock

	// Hits and Misses count Get outcomes.
	Hits, Misses int
}

// NewTuteeCache creates an empty cache.
func NewTuteeCache(clock timeutil.Clock) *TuteeCache {
	return &TuteeCache{entries: make(map[uuid.UUID]cacheEntry), clock: clock}
}

// Get returns a cached tutee or ErrCacheMiss.
func (c *TuteeCache) Get(_ context.Context, id uuid.UUID) (*tutee.Tutee, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	now := c.clock.Now()
	if !ok || (!e.expiresAt.IsZero() && !now.Before(e.expiresAt)) {
		delete(c.entries, id)
		c.Misses++
		return nil, ErrCacheMiss
	}
	c.Hits++
	return tutee.FromRecord(e.rec, timeutil.StartOfDay(now))
}

// Set caches t. A zero ttl never expires.
func (c *TuteeCache) Set(_ context.Context, t *tutee.Tutee, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := cacheEntry{rec: t.ToRecord()}
	if ttl > 0 {
		e.expiresAt = c.clock.Now().Add(ttl)
	}
	c.entries[t.ID] = e
	return nil
}

// Invalidate removes a tutee from the cache.
func (c *TuteeCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
	return nil
}

// Len returns the number of cached entries, expired or not.
func (c *TuteeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
