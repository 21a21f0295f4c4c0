package repositories

import (
	"context"
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier, without lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByReference retrieves the entry with an exact reference match within a company.
	FindEntryByReference(ctx context.Context, companyID string, reference string) (*domain.JournalEntry, error)

	// SearchEntriesByDescription retrieves entries whose description contains the fragment.
	// Legacy lookup path for reversal; exact keys are always tried first.
	SearchEntriesByDescription(ctx context.Context, companyID string, fragment string) ([]domain.JournalEntry, error)

	// ListEntriesByCompany retrieves a paginated list of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists an entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// SaveEntryInTx persists an entry and its lines as part of a caller-owned transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error

	// UpdateEntryStatus transitions an entry's status only when it currently has the
	// expected status. A concurrent transition surfaces as apperrors.ErrConflict.
	UpdateEntryStatus(ctx context.Context, entryID string, from domain.EntryStatus, to domain.EntryStatus, updatedBy string, updatedAt time.Time) error

	// UpdateEntryStatusInTx is UpdateEntryStatus inside a caller-owned transaction,
	// additionally recording the reversal linkage when reversingEntryID is non-nil.
	UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, from domain.EntryStatus, to domain.EntryStatus, reversingEntryID *string, updatedBy string, updatedAt time.Time) error
}

// LineReader defines read operations for journal line data
type LineReader interface {
	// FindLinesByEntryID retrieves all lines belonging to a single entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindOpenItemsByPartner retrieves posted, uncleared lines for a business partner,
	// ordered by posting date ascending with insertion order as tiebreak.
	FindOpenItemsByPartner(ctx context.Context, companyID string, businessPartnerID string) ([]domain.OpenItem, error)
}

// ClearingWriter defines the transactional line operations used by the clearing engine
type ClearingWriter interface {
	// FindLinesByIDsForUpdate loads the requested lines and locks their rows for the
	// duration of the transaction. Missing ids surface as apperrors.ErrNotFound.
	FindLinesByIDsForUpdate(ctx context.Context, tx pgx.Tx, lineIDs []string) ([]domain.JournalLine, error)

	// FindEntriesByIDsInTx loads entry headers for the given ids inside the transaction.
	FindEntriesByIDsInTx(ctx context.Context, tx pgx.Tx, entryIDs []string) (map[string]domain.JournalEntry, error)

	// AssignClearingID stamps the clearing group id on the given lines.
	AssignClearingID(ctx context.Context, tx pgx.Tx, lineIDs []string, clearingID string, updatedBy string, updatedAt time.Time) error
}

// TransactionManager runs a function within a single database transaction.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
// This is a facade for clients that need access to all operations.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	LineReader
	ClearingWriter
	TransactionManager
}
