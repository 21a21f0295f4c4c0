package repositories

import (
	"context"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
)

// SequenceGenerator issues document numbers, monotonic per company and entry
// type. Injected so tests can use a deterministic implementation.
type SequenceGenerator interface {
	NextDocumentNo(ctx context.Context, companyID string, entryType domain.EntryType) (string, error)
}
