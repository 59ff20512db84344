package pgsql

import (
	"context"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/ohada_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a sequence store backed by the entry_sequences table.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue increments the counter of a scope in a single statement. The row lock taken by
// the upsert serialises concurrent callers, so every caller observes a distinct value.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, scopeKey string) (int64, error) {
	query := `
		INSERT INTO entry_sequences (scope_key, last_value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (scope_key)
		DO UPDATE SET last_value = entry_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value;
	`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, scopeKey).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence "+scopeKey, err)
	}
	return value, nil
}
