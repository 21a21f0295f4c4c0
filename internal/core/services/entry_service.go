package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/middleware"
)

var (
	ErrDescriptionMissing       = errors.New("entry description is required")
	ErrAccountNotFound          = errors.New("account not found")
	ErrAccountInactive          = errors.New("account is inactive")
	ErrAccountWrongCompany      = errors.New("account belongs to a different company")
	ErrEntryMinDistinctAccounts = errors.New("entry must affect at least two different accounts")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// entryService provides the journal entry lifecycle operations.
type entryService struct {
	entryRepo  portsrepo.EntryRepositoryFacade
	accountSvc portssvc.AccountSvcFacade
	sequences  portsrepo.SequenceGenerator
	now        func() time.Time
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade, sequences portsrepo.SequenceGenerator) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:  entryRepo,
		accountSvc: accountSvc,
		sequences:  sequences,
		now:        time.Now,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// validateLineAccounts checks that every referenced account exists, is active,
// and belongs to the entry's company.
func (s *entryService) validateLineAccounts(ctx context.Context, companyID string, lines []portssvc.CreateLineInput) error {
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}
	if len(accountIDs) < 2 {
		return ErrEntryMinDistinctAccounts
	}

	accounts, err := s.accountSvc.GetAccountByIDs(ctx, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}

	for _, accountID := range accountIDs {
		account, ok := accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
		}
		if account.CompanyID != companyID {
			return fmt.Errorf("%w: %s", ErrAccountWrongCompany, accountID)
		}
	}
	return nil
}

// assembleEntry validates the input and builds the draft entry with its lines
// and a fresh document number. Nothing is persisted.
func (s *entryService) assembleEntry(ctx context.Context, input portssvc.CreateEntryInput, createdBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if input.Description == "" {
		return nil, ErrDescriptionMissing
	}
	if len(input.Lines) < 2 {
		return nil, domain.ErrEntryMinLines
	}
	if err := s.validateLineAccounts(ctx, input.CompanyID, input.Lines); err != nil {
		return nil, err
	}

	entryType := input.EntryType
	if entryType == "" {
		entryType = domain.Standard
	}

	documentNo, err := s.sequences.NextDocumentNo(ctx, input.CompanyID, entryType)
	if err != nil {
		logger.Error("Failed to generate document number", "error", err)
		return nil, fmt.Errorf("failed to generate document number: %w", err)
	}

	now := s.now()
	documentDate := input.DocumentDate
	if documentDate.IsZero() {
		documentDate = input.PostingDate
	}

	entry := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		CompanyID:    input.CompanyID,
		DocumentNo:   documentNo,
		EntryType:    entryType,
		Status:       domain.Draft,
		PostingDate:  input.PostingDate,
		DocumentDate: documentDate,
		Description:  input.Description,
		Reference:    input.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	for _, lineInput := range input.Lines {
		line := domain.JournalLine{
			LineID:            uuid.NewString(),
			EntryID:           entry.EntryID,
			AccountID:         lineInput.AccountID,
			Amount:            lineInput.Amount,
			Direction:         lineInput.Direction,
			CostCenterID:      lineInput.CostCenterID,
			BusinessPartnerID: lineInput.BusinessPartnerID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		}
		if err := entry.AppendLine(line); err != nil {
			return nil, err
		}
	}

	return &entry, nil
}

// CreateEntry persists a new draft entry with its lines.
func (s *entryService) CreateEntry(ctx context.Context, input portssvc.CreateEntryInput, createdBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.assembleEntry(ctx, input, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, *entry, entry.Lines); err != nil {
		logger.Error("Failed to save entry", "error", err)
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry created", "entryID", entry.EntryID, "documentNo", entry.DocumentNo)
	return entry, nil
}

// CreatePostedEntry persists a new entry that is posted on arrival. The balance
// check runs before the single insert, so a failure leaves nothing behind;
// there is never a stray draft to clean up.
func (s *entryService) CreatePostedEntry(ctx context.Context, input portssvc.CreateEntryInput, createdBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.assembleEntry(ctx, input, createdBy)
	if err != nil {
		return nil, err
	}
	if err := entry.Post(); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, *entry, entry.Lines); err != nil {
		logger.Error("Failed to save posted entry", "error", err)
		return nil, fmt.Errorf("failed to save posted entry: %w", err)
	}

	logger.Info("Entry created and posted", "entryID", entry.EntryID, "documentNo", entry.DocumentNo)
	return entry, nil
}

// PostEntry transitions a balanced draft entry to posted.
func (s *entryService) PostEntry(ctx context.Context, entryID string, postedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := entry.Post(); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Draft, domain.Posted, postedBy, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost a race against another transition
			return nil, &domain.InvalidStateTransitionError{EntryID: entryID, From: entry.Status, Op: "post"}
		}
		logger.Error("Failed to post entry", "entryID", entryID, "error", err)
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	entry.AuditFields.LastUpdatedAt = now
	entry.AuditFields.LastUpdatedBy = postedBy
	logger.Info("Entry posted", "entryID", entryID)
	return entry, nil
}

// CancelEntry transitions a draft or posted entry to cancelled.
func (s *entryService) CancelEntry(ctx context.Context, entryID string, cancelledBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	from := entry.Status
	if err := entry.Cancel(); err != nil {
		return nil, err
	}

	now := s.now()
	err = s.entryRepo.UpdateEntryStatus(ctx, entryID, from, domain.Cancelled, cancelledBy, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, &domain.InvalidStateTransitionError{EntryID: entryID, From: from, Op: "cancel"}
		}
		logger.Error("Failed to cancel entry", "entryID", entryID, "error", err)
		return nil, fmt.Errorf("failed to cancel entry: %w", err)
	}

	entry.AuditFields.LastUpdatedAt = now
	entry.AuditFields.LastUpdatedBy = cancelledBy
	logger.Info("Entry cancelled", "entryID", entryID)
	return entry, nil
}

// GetEntryByID retrieves an entry with its lines populated.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entries for a company, newest posting date first.
func (s *entryService) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.entryRepo.ListEntriesByCompany(ctx, companyID, limit, nextToken, includeReversals)
}
