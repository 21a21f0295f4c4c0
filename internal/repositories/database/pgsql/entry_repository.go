package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	"github.com/corefin/gl_ledger_app/internal/models"
	"github.com/corefin/gl_ledger_app/internal/utils/mapping"
	"github.com/corefin/gl_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// descriptionSearchLimit caps how many fuzzy matches are fetched; callers only
// need to distinguish zero, one and many.
const descriptionSearchLimit = 5

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry and line data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, company_id, document_no, entry_type, status, posting_date, document_date,
	       description, reference, original_entry_id, reversing_entry_id,
	       created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, amount, direction, cost_center_id, business_partner_id,
	       clearing_id, created_at, created_by, last_updated_at, last_updated_by`

// scanEntry scans one journal_entries row into a model.
func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var originalID, reversingID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.DocumentNo,
		&m.EntryType,
		&m.Status,
		&m.PostingDate,
		&m.DocumentDate,
		&m.Description,
		&m.Reference,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}

	if originalID.Valid {
		m.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}
	return m, nil
}

// scanLine scans one journal_lines row into a model.
func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	var clearingID sql.NullString

	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Amount,
		&m.Direction,
		&m.CostCenterID,
		&m.BusinessPartnerID,
		&clearingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}

	if clearingID.Valid {
		m.ClearingID = &clearingID.String
	}
	return m, nil
}

// SaveEntry persists an entry and its lines in a transaction of its own.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		return r.SaveEntryInTx(ctx, tx, entry, lines)
	})
}

// SaveEntryInTx persists an entry and its lines as part of a caller-owned transaction.
func (r *PgxEntryRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	modelEntry := mapping.ToModelEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, company_id, document_no, entry_type, status, posting_date, document_date,
			description, reference, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.CompanyID,
		modelEntry.DocumentNo,
		modelEntry.EntryType,
		modelEntry.Status,
		modelEntry.PostingDate,
		modelEntry.DocumentDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (
			line_id, entry_id, account_id, amount, direction, cost_center_id, business_partner_id,
			clearing_id, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Amount,
			modelLine.Direction,
			modelLine.CostCenterID,
			modelLine.BusinessPartnerID,
			modelLine.ClearingID,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+modelEntry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry by its ID, without lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// FindEntryByReference retrieves the newest entry with an exact reference match.
func (r *PgxEntryRepository) FindEntryByReference(ctx context.Context, companyID string, reference string) (*domain.JournalEntry, error) {
	if reference == "" {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND reference = $2
		ORDER BY created_at DESC
		LIMIT 1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by reference in company "+companyID, err)
	}

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// SearchEntriesByDescription retrieves entries whose description contains the
// fragment, case-insensitively.
func (r *PgxEntryRepository) SearchEntriesByDescription(ctx context.Context, companyID string, fragment string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND description ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC
		LIMIT $3;`

	rows, err := r.Pool.Query(ctx, query, companyID, fragment, descriptionSearchLimit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search entries in company "+companyID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

// ListEntriesByCompany retrieves a paginated list of entries using token-based pagination.
func (r *PgxEntryRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1`
	if !includeReversals {
		baseQuery += ` AND entry_type <> 'REVERSAL'`
	}
	// Ordering must be stable: posting_date DESC with created_at DESC as tiebreak
	orderByClause := `ORDER BY posting_date DESC, created_at DESC`

	args := []interface{}{companyID}
	if nextToken != nil && *nextToken != "" {
		lastPostingDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		baseQuery += ` AND (posting_date, created_at) < ($2, $3)`
		args = append(args, lastPostingDate, lastCreatedAt)
	}
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var newNextToken *string
	if len(modelEntries) == fetchLimit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.PostingDate, last.CreatedAt)
		newNextToken = &token
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, newNextToken, nil
}

// UpdateEntryStatus transitions an entry's status with an optimistic guard on
// the expected current status.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from domain.EntryStatus, to domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	return r.updateStatus(ctx, r.Pool, entryID, from, to, nil, updatedBy, updatedAt)
}

// UpdateEntryStatusInTx is UpdateEntryStatus inside a caller-owned transaction.
func (r *PgxEntryRepository) UpdateEntryStatusInTx(ctx context.Context, tx pgx.Tx, entryID string, from domain.EntryStatus, to domain.EntryStatus, reversingEntryID *string, updatedBy string, updatedAt time.Time) error {
	return r.updateStatus(ctx, tx, entryID, from, to, reversingEntryID, updatedBy, updatedAt)
}

// execer covers both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func (r *PgxEntryRepository) updateStatus(ctx context.Context, db execer, entryID string, from, to domain.EntryStatus, reversingEntryID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1,
		    reversing_entry_id = COALESCE($2, reversing_entry_id),
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $5 AND status = $6;
	`
	tag, err := db.Exec(ctx, query, string(to), reversingEntryID, updatedAt, updatedBy, entryID, string(from))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the entry is missing or its status changed underneath us
		var current string
		err := r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to check status for entry "+entryID, err)
		}
		return apperrors.NewAppError(409, "entry "+entryID+" has status "+current+", expected "+string(from), apperrors.ErrConflict)
	}
	return nil
}

// FindLinesByEntryID retrieves all lines belonging to a single entry.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainLineSlice(lines), nil
}

// FindOpenItemsByPartner retrieves posted, uncleared lines for a business
// partner, oldest posting date first.
func (r *PgxEntryRepository) FindOpenItemsByPartner(ctx context.Context, companyID string, businessPartnerID string) ([]domain.OpenItem, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.business_partner_id, e.description, e.posting_date, e.reference,
		       l.amount, l.direction, e.entry_type, a.name
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.company_id = $1
		  AND l.business_partner_id = $2
		  AND e.status = 'POSTED'
		  AND l.clearing_id IS NULL
		ORDER BY e.posting_date ASC, l.created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, businessPartnerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open items for partner "+businessPartnerID, err)
	}
	defer rows.Close()

	items := []domain.OpenItem{}
	for rows.Next() {
		var item domain.OpenItem
		err := rows.Scan(
			&item.LineID,
			&item.EntryID,
			&item.BusinessPartnerID,
			&item.Description,
			&item.PostingDate,
			&item.Reference,
			&item.Amount,
			&item.Direction,
			&item.EntryType,
			&item.AccountName,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open item rows", err)
	}
	return items, nil
}

// FindLinesByIDsForUpdate loads the requested lines and locks their rows.
func (r *PgxEntryRepository) FindLinesByIDsForUpdate(ctx context.Context, tx pgx.Tx, lineIDs []string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE line_id = ANY($1)
		ORDER BY line_id
		FOR UPDATE;`

	rows, err := tx.Query(ctx, query, lineIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock lines for update", err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(lineIDs))
	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked line row", err)
		}
		found[m.LineID] = struct{}{}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked line rows", err)
	}

	for _, id := range lineIDs {
		if _, ok := found[id]; !ok {
			return nil, apperrors.NewNotFoundError("line " + id + " not found")
		}
	}
	return mapping.ToDomainLineSlice(lines), nil
}

// FindEntriesByIDsInTx loads entry headers for the given ids inside the transaction.
func (r *PgxEntryRepository) FindEntriesByIDsInTx(ctx context.Context, tx pgx.Tx, entryIDs []string) (map[string]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = ANY($1);`

	rows, err := tx.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries by ids", err)
	}
	defer rows.Close()

	entries := make(map[string]domain.JournalEntry, len(entryIDs))
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries[m.EntryID] = mapping.ToDomainEntry(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

// AssignClearingID stamps the clearing group id on the given lines. The guard
// on clearing_id IS NULL makes the loser of a concurrent clearing fail here.
func (r *PgxEntryRepository) AssignClearingID(ctx context.Context, tx pgx.Tx, lineIDs []string, clearingID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_lines
		SET clearing_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE line_id = ANY($4) AND clearing_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query, clearingID, updatedAt, updatedBy, lineIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to assign clearing id "+clearingID, err)
	}
	if tag.RowsAffected() != int64(len(lineIDs)) {
		return apperrors.NewAppError(409, "some lines were cleared concurrently", apperrors.ErrConflict)
	}
	return nil
}
