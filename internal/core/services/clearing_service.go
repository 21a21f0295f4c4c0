package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/middleware"
	"github.com/corefin/gl_ledger_app/internal/utils/accounting"
)

var (
	ErrNoLinesToClear       = errors.New("clearing requires at least one line")
	ErrLineAlreadyCleared   = errors.New("line is already part of a clearing group")
	ErrLineNotPosted        = errors.New("only lines of posted entries can be cleared")
	ErrPartnerMissing       = errors.New("a residual entry needs a business partner on every line")
	ErrMultiPartnerClearing = errors.New("a residual entry needs the lines to share one business partner")
)

// clearingService manages open items and clearing groups.
type clearingService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	sequences portsrepo.SequenceGenerator
	now       func() time.Time
}

// NewClearingService creates a new ClearingService.
func NewClearingService(entryRepo portsrepo.EntryRepositoryFacade, sequences portsrepo.SequenceGenerator) portssvc.ClearingSvcFacade {
	return &clearingService{
		entryRepo: entryRepo,
		sequences: sequences,
		now:       time.Now,
	}
}

var _ portssvc.ClearingSvcFacade = (*clearingService)(nil)

// GetOpenItems retrieves the posted, uncleared lines for a business partner,
// oldest posting date first.
func (s *clearingService) GetOpenItems(ctx context.Context, companyID string, businessPartnerID string) ([]domain.OpenItem, error) {
	return s.entryRepo.FindOpenItemsByPartner(ctx, companyID, businessPartnerID)
}

// validateClearingGroup checks every locked line against its entry header.
// Lines must belong to posted entries of this company and be uncleared.
func (s *clearingService) validateClearingGroup(companyID string, lines []domain.JournalLine, entries map[string]domain.JournalEntry) error {
	for _, line := range lines {
		entry, ok := entries[line.EntryID]
		if !ok || entry.CompanyID != companyID {
			return fmt.Errorf("entry for line %s: %w", line.LineID, apperrors.ErrNotFound)
		}
		if entry.Status != domain.Posted {
			return fmt.Errorf("%w: line %s (entry status %s)", ErrLineNotPosted, line.LineID, entry.Status)
		}
		if line.ClearingID != nil {
			return fmt.Errorf("%w: line %s", ErrLineAlreadyCleared, line.LineID)
		}
	}
	return nil
}

// validateResidualPartner applies only when a residual entry is needed: the
// residual line carries the group's business partner forward, so the lines
// must share exactly one non-empty partner. A balanced group clears without
// any partner condition.
func validateResidualPartner(lines []domain.JournalLine) error {
	partnerID := ""
	for _, line := range lines {
		if line.BusinessPartnerID == "" {
			return fmt.Errorf("%w: line %s", ErrPartnerMissing, line.LineID)
		}
		if partnerID == "" {
			partnerID = line.BusinessPartnerID
		} else if line.BusinessPartnerID != partnerID {
			return ErrMultiPartnerClearing
		}
	}
	return nil
}

// lineByID returns the line with the given id. Locked rows come back in lock
// order, not selection order, so position in the slice means nothing.
func lineByID(lines []domain.JournalLine, lineID string) domain.JournalLine {
	for _, line := range lines {
		if line.LineID == lineID {
			return line
		}
	}
	return domain.JournalLine{}
}

// buildResidualEntry synthesizes the two-line entry that absorbs a non-zero
// group balance. The line opposing the net balance joins the clearing group;
// its counterpart carries the residual forward as a new open item.
func (s *clearingService) buildResidualEntry(ctx context.Context, companyID string, template domain.JournalLine, balance decimal.Decimal, clearedBy string) (domain.JournalEntry, string, error) {
	documentNo, err := s.sequences.NextDocumentNo(ctx, companyID, domain.Clearing)
	if err != nil {
		return domain.JournalEntry{}, "", fmt.Errorf("failed to generate document number: %w", err)
	}

	now := s.now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     clearedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: clearedBy,
	}

	// A net debit balance needs a credit to close the group, and vice versa.
	closingDirection := domain.Credit
	if balance.IsNegative() {
		closingDirection = domain.Debit
	}

	entry := domain.JournalEntry{
		EntryID:      uuid.NewString(),
		CompanyID:    companyID,
		DocumentNo:   documentNo,
		EntryType:    domain.Clearing,
		Status:       domain.Posted,
		PostingDate:  now,
		DocumentDate: now,
		Description:  fmt.Sprintf("Residual from clearing, partner %s", template.BusinessPartnerID),
		AuditFields:  audit,
	}

	closingLine := domain.JournalLine{
		LineID:            uuid.NewString(),
		EntryID:           entry.EntryID,
		AccountID:         template.AccountID,
		Amount:            balance.Abs(),
		Direction:         closingDirection,
		BusinessPartnerID: template.BusinessPartnerID,
		AuditFields:       audit,
	}
	residualLine := domain.JournalLine{
		LineID:            uuid.NewString(),
		EntryID:           entry.EntryID,
		AccountID:         template.AccountID,
		Amount:            balance.Abs(),
		Direction:         closingDirection.Opposite(),
		BusinessPartnerID: template.BusinessPartnerID,
		AuditFields:       audit,
	}
	entry.Lines = []domain.JournalLine{closingLine, residualLine}

	return entry, closingLine.LineID, nil
}

// ClearLines groups the given open lines under a new clearing id, synthesizing
// a residual entry when the group balance exceeds the tolerance. The whole
// operation runs in one transaction with the affected line rows locked.
func (s *clearingService) ClearLines(ctx context.Context, companyID string, lineIDs []string, clearedBy string) (*portssvc.ClearingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	distinct := make([]string, 0, len(lineIDs))
	seen := make(map[string]struct{}, len(lineIDs))
	for _, id := range lineIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) == 0 {
		return nil, ErrNoLinesToClear
	}

	result := &portssvc.ClearingResult{
		ClearingID:     uuid.NewString(),
		ClearedLineIDs: distinct,
	}

	err := s.entryRepo.WithTx(ctx, func(tx pgx.Tx) error {
		lines, err := s.entryRepo.FindLinesByIDsForUpdate(ctx, tx, distinct)
		if err != nil {
			return err
		}

		entryIDs := make([]string, 0, len(lines))
		seenEntries := make(map[string]struct{}, len(lines))
		for _, line := range lines {
			if _, ok := seenEntries[line.EntryID]; ok {
				continue
			}
			seenEntries[line.EntryID] = struct{}{}
			entryIDs = append(entryIDs, line.EntryID)
		}
		entries, err := s.entryRepo.FindEntriesByIDsInTx(ctx, tx, entryIDs)
		if err != nil {
			return err
		}

		if err := s.validateClearingGroup(companyID, lines, entries); err != nil {
			return err
		}

		balance := accounting.ComputeBalance(lines)

		now := s.now()
		groupLineIDs := append([]string(nil), distinct...)
		if balance.Abs().GreaterThan(domain.BalanceTolerance) {
			if err := validateResidualPartner(lines); err != nil {
				return err
			}
			// The residual lands on the account of the first selected line.
			residual, closingLineID, err := s.buildResidualEntry(ctx, companyID, lineByID(lines, distinct[0]), balance, clearedBy)
			if err != nil {
				return err
			}
			if err := s.entryRepo.SaveEntryInTx(ctx, tx, residual, residual.Lines); err != nil {
				return fmt.Errorf("failed to save residual entry: %w", err)
			}
			groupLineIDs = append(groupLineIDs, closingLineID)
			result.ResidualEntryID = &residual.EntryID
			residualLineID := residual.Lines[1].LineID
			result.ResidualLineID = &residualLineID
		}

		return s.entryRepo.AssignClearingID(ctx, tx, groupLineIDs, result.ClearingID, clearedBy, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Lines cleared", "clearingID", result.ClearingID, "lineCount", len(result.ClearedLineIDs), "residual", result.ResidualEntryID != nil)
	return result, nil
}
