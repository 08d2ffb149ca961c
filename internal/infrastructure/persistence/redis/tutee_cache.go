package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/circuitbreaker"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// TuteeCache implements tutee.Cache on top of Cache.
// Tutees are stored as tutee.Record JSON; the overdue status is recomputed
// against the clock on every read.
type TuteeCache struct {
	cache   *Cache
	clock   timeutil.Clock
	breaker *circuitbreaker.CircuitBreaker
}

// NewTuteeCache creates a new TuteeCache.
func NewTuteeCache(cache *Cache, clock timeutil.Clock) *TuteeCache {
	return &TuteeCache{cache: cache, clock: clock}
}

// WithBreaker routes every call through cb. Misses do not count as failures.
func (c *TuteeCache) WithBreaker(cb *circuitbreaker.CircuitBreaker) *TuteeCache {
	c.breaker = cb
	return c
}

func (c *TuteeCache) guard(ctx context.Context, fn func(context.Context) error) error {
	if c.breaker == nil {
		return fn(ctx)
	}
	miss := false
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, ErrCacheMiss) {
			miss = true
			return nil
		}
		return err
	})
	if miss {
		return ErrCacheMiss
	}
	return err
}

// Get returns a cached tutee or ErrCacheMiss.
func (c *TuteeCache) Get(ctx context.Context, id uuid.UUID) (*tutee.Tutee, error) {
	var rec tutee.Record
	err := c.guard(ctx, func(ctx context.Context) error {
		return c.cache.Get(ctx, TuteeKey(id.String()), &rec)
	})
	if err != nil {
		return nil, err
	}
	return tutee.FromRecord(rec, timeutil.Today(c.clock))
}

// Set caches a tutee. A zero ttl uses TTLTuteeCache.
func (c *TuteeCache) Set(ctx context.Context, t *tutee.Tutee, ttl time.Duration) error {
	if t == nil {
		return ErrCacheNilValue
	}
	if ttl == 0 {
		ttl = TTLTuteeCache
	}
	return c.guard(ctx, func(ctx context.Context) error {
		return c.cache.Set(ctx, TuteeKey(t.ID.String()), t.ToRecord(), ttl)
	})
}

// Invalidate removes a tutee from the cache.
func (c *TuteeCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.guard(ctx, func(ctx context.Context) error {
		return c.cache.Delete(ctx, TuteeKey(id.String()))
	})
}

// InvalidateAll clears every cached tutee.
func (c *TuteeCache) InvalidateAll(ctx context.Context) error {
	return c.guard(ctx, func(ctx context.Context) error {
		return c.cache.DeleteByPattern(ctx, PrefixTutee+"*")
	})
}
