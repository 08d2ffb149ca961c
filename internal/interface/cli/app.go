// Package cli is the command-line interface of the tracker.
//
// It wires configuration, logging, storage and the application handlers
// together and exposes them as cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tracko-hub/tracko/config"
	"github.com/tracko-hub/tracko/internal/application/command"
	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/application/query"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/internal/infrastructure/persistence/memory"
	"github.com/tracko-hub/tracko/internal/infrastructure/persistence/postgres"
	"github.com/tracko-hub/tracko/internal/infrastructure/persistence/redis"
	"github.com/tracko-hub/tracko/pkg/circuitbreaker"
	"github.com/tracko-hub/tracko/pkg/logger"
	"github.com/tracko-hub/tracko/pkg/retry"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// ErrNoDatabase is returned by commands that need PostgreSQL when
// DATABASE_URL is not set.
var ErrNoDatabase = errors.New("DATABASE_URL is not set")

// ══════════════════════════════════════════════════════════════════════════════
// APP
// ══════════════════════════════════════════════════════════════════════════════

// App holds everything a command needs. Storage is opened on first use so
// that commands such as "parse" run without a database.
type App struct {
	Config *config.Config
	Log    *logger.Logger
	Clock  timeutil.Clock
	Parser *parser.Parser

	store *Store
}

// NewApp creates an App. A nil clock reads the wall clock in the configured
// timezone.
func NewApp(cfg *config.Config, log *logger.Logger, clock timeutil.Clock) *App {
	if clock == nil {
		clock = timeutil.NewSystemClock(cfg.App.Location)
	}
	if log == nil {
		log = logger.Discard()
	}
	return &App{
		Config: cfg,
		Log:    log,
		Clock:  clock,
		Parser: parser.New(parser.Config{
			MinLessonDuration: cfg.Lesson.MinDuration,
			Clock:             clock,
		}),
	}
}

// UseStore replaces the storage backend. The App takes ownership of s.
func (a *App) UseStore(s *Store) {
	a.store = s
}

// Store returns the storage backend, opening it on first call.
func (a *App) Store(ctx context.Context) (*Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

// Close releases the storage backend, if opened.
func (a *App) Close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) commandDeps(s *Store) command.Deps {
	return command.Deps{
		Repo:     s.Repo,
		Cache:    s.Cache,
		CacheTTL: s.CacheTTL,
		Parser:   a.Parser,
		Log:      a.Log,
	}
}

func (a *App) getTutee(s *Store) *query.GetTuteeHandler {
	return query.NewGetTuteeHandler(s.Repo, s.Cache, s.CacheTTL, a.Log)
}

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store bundles the tutee repository with its optional cache.
type Store struct {
	Repo     tutee.Repository
	Cache    tutee.Cache
	CacheTTL time.Duration

	conn  *postgres.Connection
	redis *redis.Cache
}

// NewMemoryStore returns a process-local store.
func NewMemoryStore(clock timeutil.Clock) *Store {
	return &Store{Repo: memory.NewTuteeRepository(clock)}
}

// Persistent reports whether the store is backed by PostgreSQL.
func (s *Store) Persistent() bool {
	return s.conn != nil
}

// Close closes the underlying connections.
func (s *Store) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}

func (a *App) openStore(ctx context.Context) (*Store, error) {
	if a.Config.Database.URL == "" {
		a.Log.Warn("DATABASE_URL not set, using in-memory storage; data is lost on exit")
		return NewMemoryStore(a.Clock), nil
	}

	conn, err := a.connectPostgres(ctx)
	if err != nil {
		return nil, err
	}

	applied, err := postgres.NewMigrator(conn).Migrate(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		a.Log.Info("migrations applied", logger.Int("count", applied))
	}

	s := &Store{
		Repo:     postgres.NewTuteeRepository(conn, a.Clock),
		CacheTTL: a.Config.Redis.TuteeTTL,
		conn:     conn,
	}

	if rc := a.connectRedis(ctx); rc != nil {
		s.redis = rc
		breaker := circuitbreaker.CacheBreaker(func(name string, from, to circuitbreaker.State) {
			a.Log.Warn("circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		})
		s.Cache = redis.NewTuteeCache(rc, a.Clock).WithBreaker(breaker)
	}
	return s, nil
}

func (a *App) connectPostgres(ctx context.Context) (*postgres.Connection, error) {
	db := a.Config.Database
	pgCfg := postgres.Config{
		URL:             db.URL,
		MaxConns:        db.MaxConns,
		MinConns:        db.MinConns,
		MaxConnLifetime: db.ConnMaxLifetime,
		QueryTimeout:    db.QueryTimeout,
	}
	if _, err := pgCfg.PoolConfig(); err != nil {
		return nil, err
	}

	r := retry.ConnectRetrier(db.ConnectRetries, func(attempt int, err error, delay time.Duration) {
		a.Log.Warn("database connection failed, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(err),
		)
	})

	start := time.Now()
	conn, err := retry.DoWithData(ctx, r, func(ctx context.Context) (*postgres.Connection, error) {
		return postgres.NewConnection(ctx, pgCfg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.Log.Debug("database connection established", logger.Latency(time.Since(start)))
	return conn, nil
}

// connectRedis returns nil when Redis is disabled or unreachable; the cache
// is optional.
func (a *App) connectRedis(ctx context.Context) *redis.Cache {
	rc := a.Config.Redis
	if rc.Disabled {
		return nil
	}

	cfg := redis.DefaultConfig()
	cfg.Host = rc.Host
	cfg.Port = rc.Port
	cfg.Password = rc.Password
	cfg.DB = rc.DB

	r := retry.ConnectRetrier(2, nil)
	cache, err := retry.DoWithData(ctx, r, func(ctx context.Context) (*redis.Cache, error) {
		return redis.NewCache(ctx, cfg)
	})
	if err != nil {
		a.Log.Warn("redis unavailable, continuing without cache",
			logger.String("addr", cfg.Addr()),
			logger.Err(err),
		)
		return nil
	}
	return cache
}
