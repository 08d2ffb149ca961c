package command

import (
	"context"
	"time"

	"github.com/tracko-hub/tracko/internal/application/lookup"
	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/logger"
)

// Deps holds the collaborators shared by every command handler.
type Deps struct {
	Repo   tutee.Repository
	Parser *parser.Parser
	Log    *logger.Logger

	// Cache is optional. Writes refresh it; failures are logged and ignored.
	Cache    tutee.Cache
	CacheTTL time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Parser == nil {
		d.Parser = parser.New(parser.DefaultConfig())
	}
	if d.Log == nil {
		d.Log = logger.Discard()
	}
	d.Log = d.Log.With(logger.Component("command"))
	return d
}

func (d Deps) find(ctx context.Context, ref string) (*tutee.Tutee, error) {
	return lookup.Find(ctx, d.Repo, ref)
}

func (d Deps) primeCache(ctx context.Context, t *tutee.Tutee) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.Set(ctx, t, d.CacheTTL); err != nil {
		d.Log.Warn("cache refresh failed", logger.TuteeID(t.ID.String()), logger.Err(err))
	}
}

// save persists t and refreshes the cache.
func (d Deps) save(ctx context.Context, t *tutee.Tutee) error {
	if err := d.Repo.Update(ctx, t); err != nil {
		if d.Cache != nil {
			_ = d.Cache.Invalidate(ctx, t.ID)
		}
		return err
	}
	d.primeCache(ctx, t)
	return nil
}
