package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/middleware"
)

var (
	ErrNotReversible      = errors.New("entry is not in a reversible state")
	ErrAmbiguousReference = errors.New("reference matches more than one entry")
	ErrReasonMissing      = errors.New("reversal reason is required")
)

// reversalService posts mirror entries for posted originals.
type reversalService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	sequences portsrepo.SequenceGenerator
	now       func() time.Time
}

// NewReversalService creates a new ReversalService.
func NewReversalService(entryRepo portsrepo.EntryRepositoryFacade, sequences portsrepo.SequenceGenerator) portssvc.ReversalSvcFacade {
	return &reversalService{
		entryRepo: entryRepo,
		sequences: sequences,
		now:       time.Now,
	}
}

var _ portssvc.ReversalSvcFacade = (*reversalService)(nil)

// resolveEntry locates the entry to reverse. Exact document reference wins,
// then exact entry id. The description substring search exists for callers
// migrated from the legacy free-text lookup and errors when ambiguous.
func (s *reversalService) resolveEntry(ctx context.Context, companyID string, entryRef string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByReference(ctx, companyID, entryRef)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	entry, err = s.entryRepo.FindEntryByID(ctx, entryRef)
	if err == nil {
		if entry.CompanyID != companyID {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryRef))
		}
		return entry, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	matches, err := s.entryRepo.SearchEntriesByDescription(ctx, companyID, entryRef)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no entry matches reference %q", entryRef))
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousReference, entryRef)
	}
}

// ReverseEntry posts a mirror of the referenced entry and cancels the
// original, atomically. Only posted entries can be reversed; reversing an
// already reversed entry fails.
func (s *reversalService) ReverseEntry(ctx context.Context, companyID string, entryRef string, reason string, reversedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, ErrReasonMissing
	}

	original, err := s.resolveEntry(ctx, companyID, entryRef)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: entry %s has status %s", ErrNotReversible, original.EntryID, original.Status)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, original.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", original.EntryID, err)
	}

	documentNo, err := s.sequences.NextDocumentNo(ctx, companyID, domain.Reversal)
	if err != nil {
		return nil, fmt.Errorf("failed to generate document number: %w", err)
	}

	now := s.now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     reversedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: reversedBy,
	}

	reversal := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       companyID,
		DocumentNo:      documentNo,
		EntryType:       domain.Reversal,
		Status:          domain.Posted,
		PostingDate:     now,
		DocumentDate:    original.DocumentDate,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.DocumentNo, reason),
		Reference:       original.DocumentNo,
		OriginalEntryID: &original.EntryID,
		AuditFields:     audit,
	}

	// Mirror every line with the opposite direction. Amounts, accounts and
	// partner assignments are carried over unchanged.
	reversal.Lines = make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		reversal.Lines[i] = domain.JournalLine{
			LineID:            uuid.NewString(),
			EntryID:           reversal.EntryID,
			AccountID:         line.AccountID,
			Amount:            line.Amount,
			Direction:         line.Direction.Opposite(),
			CostCenterID:      line.CostCenterID,
			BusinessPartnerID: line.BusinessPartnerID,
			AuditFields:       audit,
		}
	}

	err = s.entryRepo.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.entryRepo.SaveEntryInTx(ctx, tx, reversal, reversal.Lines); err != nil {
			return fmt.Errorf("failed to save reversal entry: %w", err)
		}
		err := s.entryRepo.UpdateEntryStatusInTx(ctx, tx, original.EntryID, domain.Posted, domain.Cancelled, &reversal.EntryID, reversedBy, now)
		if errors.Is(err, apperrors.ErrConflict) {
			// Another reversal or cancellation won the race
			return fmt.Errorf("%w: entry %s", ErrNotReversible, original.EntryID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Entry reversed", "originalEntryID", original.EntryID, "reversalEntryID", reversal.EntryID)
	return &reversal, nil
}
