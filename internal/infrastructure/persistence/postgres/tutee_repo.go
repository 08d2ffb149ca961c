package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
	"github.com/tracko-hub/tracko/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// TUTEE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// TuteeRepository implements tutee.Repository for PostgreSQL.
type TuteeRepository struct {
	conn  *Connection
	clock timeutil.Clock
}

// NewTuteeRepository creates a new TuteeRepository. clock decides the overdue
// snapshot of loaded payments.
func NewTuteeRepository(conn *Connection, clock timeutil.Clock) *TuteeRepository {
	return &TuteeRepository{conn: conn, clock: clock}
}

const tuteeColumns = `
	id, name, phone, address, level, tags, lessons,
	payment_value, pay_by_date, payment_history, created_at, updated_at
`

func (r *TuteeRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := r.conn.QueryTimeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create inserts a new tutee.
func (r *TuteeRepository) Create(ctx context.Context, t *tutee.Tutee) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args, err := tuteeArgs(t)
	if err != nil {
		return err
	}

	query := `INSERT INTO tutees (` + tuteeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrTuteeAlreadyExists
		}
		return fmt.Errorf("failed to create tutee: %w", err)
	}
	return nil
}

// GetByID returns a tutee by ID.
func (r *TuteeRepository) GetByID(ctx context.Context, id uuid.UUID) (*tutee.Tutee, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.conn.QueryRow(ctx, `SELECT `+tuteeColumns+` FROM tutees WHERE id = $1`, id)
	return r.scanTutee(row)
}

// List returns all tutees, oldest first.
func (r *TuteeRepository) List(ctx context.Context) ([]*tutee.Tutee, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.conn.Query(ctx, `SELECT `+tuteeColumns+` FROM tutees ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tutees: %w", err)
	}
	defer rows.Close()

	var out []*tutee.Tutee
	for rows.Next() {
		t, err := r.scanTutee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update overwrites every mutable column of the tutee.
func (r *TuteeRepository) Update(ctx context.Context, t *tutee.Tutee) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args, err := tuteeArgs(t)
	if err != nil {
		return err
	}

	query := `
		UPDATE tutees SET
			name = $2, phone = $3, address = $4, level = $5, tags = $6, lessons = $7,
			payment_value = $8, pay_by_date = $9, payment_history = $10, updated_at = $11
		WHERE id = $1
	`

	// Drop created_at; it never changes.
	args = append(args[:10], args[11])

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrTuteeAlreadyExists
		}
		return fmt.Errorf("failed to update tutee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrTuteeNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helper Methods
// ─────────────────────────────────────────────────────────────────────────────

func tuteeArgs(t *tutee.Tutee) ([]any, error) {
	rec := t.ToRecord()

	lessonsJSON, err := json.Marshal(rec.Lessons)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lessons: %w", err)
	}

	var payBy *time.Time
	if d, ok := t.Payment.PayByDate(); ok {
		payBy = &d
	}

	return []any{
		rec.ID,
		rec.Name,
		rec.Phone,
		rec.Address,
		rec.Level,
		rec.Tags,
		lessonsJSON,
		rec.Payment.Value,
		payBy,
		rec.Payment.History,
		rec.CreatedAt,
		rec.UpdatedAt,
	}, nil
}

func (r *TuteeRepository) scanTutee(row pgx.Row) (*tutee.Tutee, error) {
	var (
		rec         tutee.Record
		lessonsJSON []byte
		payBy       *time.Time
	)

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Phone,
		&rec.Address,
		&rec.Level,
		&rec.Tags,
		&lessonsJSON,
		&rec.Payment.Value,
		&payBy,
		&rec.Payment.History,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrTuteeNotFound
		}
		return nil, fmt.Errorf("failed to scan tutee: %w", err)
	}

	if err := json.Unmarshal(lessonsJSON, &rec.Lessons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lessons: %w", err)
	}

	rec.Payment.PayByDate = tutee.NoPayByDate
	if payBy != nil {
		rec.Payment.PayByDate = timeutil.FormatDate(*payBy)
	}

	return tutee.FromRecord(rec, timeutil.Today(r.clock))
}
