// Package lookup resolves the tutee references typed by users.
package lookup

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tracko-hub/tracko/internal/application/parser"
	"github.com/tracko-hub/tracko/internal/domain/shared"
	"github.com/tracko-hub/tracko/internal/domain/tutee"
)

// Reader is the part of tutee.Repository needed to resolve references.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*tutee.Tutee, error)
	List(ctx context.Context) ([]*tutee.Tutee, error)
}

// Find resolves ref, either a tutee UUID or a one-based index into the
// displayed list. An index past the end yields shared.ErrInvalidTuteeIndex.
func Find(ctx context.Context, repo Reader, ref string) (*tutee.Tutee, error) {
	if id, err := uuid.Parse(strings.TrimSpace(ref)); err == nil {
		return repo.GetByID(ctx, id)
	}

	idx, err := parser.ParseIndex(ref)
	if err != nil {
		return nil, err
	}

	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if idx.ZeroBased() >= len(all) {
		return nil, shared.ErrInvalidTuteeIndex
	}
	return all[idx.ZeroBased()], nil
}

// IsUUID reports whether ref names a tutee by ID rather than by index.
func IsUUID(ref string) bool {
	_, err := uuid.Parse(strings.TrimSpace(ref))
	return err == nil
}
