package pgsql

import (
	"context"
	"fmt"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// documentPrefixes maps entry types to the prefix of their document numbers.
var documentPrefixes = map[domain.EntryType]string{
	domain.Standard: "JE",
	domain.Reversal: "RV",
	domain.Clearing: "CL",
	domain.Invoice:  "IN",
}

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for document number sequences.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceGenerator {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSequenceRepository implements portsrepo.SequenceGenerator
var _ portsrepo.SequenceGenerator = (*PgxSequenceRepository)(nil)

// NextDocumentNo claims the next number in one round trip. The upsert keeps
// the counter row-locked for the instant of the increment, so concurrent
// callers get distinct numbers.
func (r *PgxSequenceRepository) NextDocumentNo(ctx context.Context, companyID string, entryType domain.EntryType) (string, error) {
	prefix, ok := documentPrefixes[entryType]
	if !ok {
		prefix = "JE"
	}

	query := `
		INSERT INTO document_sequences (company_id, entry_type, next_value)
		VALUES ($1, $2, 2)
		ON CONFLICT (company_id, entry_type)
		DO UPDATE SET next_value = document_sequences.next_value + 1
		RETURNING next_value - 1;
	`
	var n int64
	if err := r.Pool.QueryRow(ctx, query, companyID, string(entryType)).Scan(&n); err != nil {
		return "", apperrors.NewAppError(500, "failed to claim document number for company "+companyID, err)
	}

	return fmt.Sprintf("%s-%06d", prefix, n), nil
}
