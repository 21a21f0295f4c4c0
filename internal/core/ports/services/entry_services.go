package services

import (
	"context"
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineInput carries one line of a new entry.
type CreateLineInput struct {
	AccountID         string
	Amount            decimal.Decimal
	Direction         domain.Direction
	CostCenterID      string
	BusinessPartnerID string
}

// CreateEntryInput carries the data needed to create a draft entry.
type CreateEntryInput struct {
	CompanyID    string
	EntryType    domain.EntryType
	PostingDate  time.Time
	DocumentDate time.Time
	Description  string
	Reference    string
	Lines        []CreateLineInput
}

// EntrySvcFacade defines the journal entry lifecycle operations.
type EntrySvcFacade interface {
	// CreateEntry persists a new draft entry with its lines.
	CreateEntry(ctx context.Context, input CreateEntryInput, createdBy string) (*domain.JournalEntry, error)

	// CreatePostedEntry persists a new entry already posted, in one write.
	CreatePostedEntry(ctx context.Context, input CreateEntryInput, createdBy string) (*domain.JournalEntry, error)

	// PostEntry transitions a balanced draft entry to posted.
	PostEntry(ctx context.Context, entryID string, postedBy string) (*domain.JournalEntry, error)

	// CancelEntry transitions a draft or posted entry to cancelled.
	CancelEntry(ctx context.Context, entryID string, cancelledBy string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines populated.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries for a company, newest posting date first.
	ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// ReversalSvcFacade defines the reversal operation.
type ReversalSvcFacade interface {
	// ReverseEntry posts a mirror of the referenced entry and cancels the original.
	// The reference is resolved as exact document reference, then entry id, then
	// description substring.
	ReverseEntry(ctx context.Context, companyID string, entryRef string, reason string, reversedBy string) (*domain.JournalEntry, error)
}
