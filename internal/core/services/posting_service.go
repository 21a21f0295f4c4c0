package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/middleware"
)

var (
	ErrAccountResolution       = errors.New("could not resolve a required posting account")
	ErrInvoiceDirectionMissing = errors.New("linked invoice direction is required for payments against an invoice")
)

// postingService translates invoice and payment events into posted entries.
type postingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	entrySvc    portssvc.EntrySvcFacade
}

// NewPostingService creates a new PostingService.
func NewPostingService(accountRepo portsrepo.AccountRepositoryFacade, entrySvc portssvc.EntrySvcFacade) portssvc.PostingSvcFacade {
	return &postingService{
		accountRepo: accountRepo,
		entrySvc:    entrySvc,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// selectAccountByKeyword picks the posting account for a category. An account
// whose name contains the keyword wins; otherwise the first account of the
// category is used, or the last for REVENUE and EXPENSE. The fallback ordering
// is load-bearing for installations with generic chart-of-accounts names, so
// changing it silently reroutes postings.
func (s *postingService) selectAccountByKeyword(ctx context.Context, companyID string, accountType domain.AccountType, keyword string) (*domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByType(ctx, companyID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s accounts: %w", accountType, err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: no %s account with name containing %q", ErrAccountResolution, accountType, keyword)
	}

	for i := range accounts {
		if strings.Contains(strings.ToLower(accounts[i].Name), keyword) {
			return &accounts[i], nil
		}
	}

	if accountType == domain.Revenue || accountType == domain.Expense {
		return &accounts[len(accounts)-1], nil
	}
	return &accounts[0], nil
}

// buildTwoLineEntry assembles the create input shared by all posting rules.
func buildTwoLineEntry(companyID string, entryType domain.EntryType, postingDate time.Time, description, reference string, debit, credit portssvc.CreateLineInput) portssvc.CreateEntryInput {
	debit.Direction = domain.Debit
	credit.Direction = domain.Credit
	return portssvc.CreateEntryInput{
		CompanyID:   companyID,
		EntryType:   entryType,
		PostingDate: postingDate,
		Description: description,
		Reference:   reference,
		Lines:       []portssvc.CreateLineInput{debit, credit},
	}
}

// createAndPost writes the entry already posted in one transaction. Account
// resolution and the balance check both run before anything is written, so a
// failure leaves no stray draft behind.
func (s *postingService) createAndPost(ctx context.Context, input portssvc.CreateEntryInput, postedBy string) (*domain.JournalEntry, error) {
	return s.entrySvc.CreatePostedEntry(ctx, input, postedBy)
}

// PostInvoiceEvent builds and posts the entry for a finalized invoice.
func (s *postingService) PostInvoiceEvent(ctx context.Context, event portssvc.InvoicePostedEvent, postedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var debit, credit portssvc.CreateLineInput
	switch event.Direction {
	case portssvc.OutboundInvoice:
		receivable, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Asset, "receivable")
		if err != nil {
			return nil, err
		}
		revenue, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Revenue, "revenue")
		if err != nil {
			return nil, err
		}
		debit = portssvc.CreateLineInput{AccountID: receivable.AccountID, Amount: event.GrossTotal, BusinessPartnerID: event.BusinessPartnerID}
		credit = portssvc.CreateLineInput{AccountID: revenue.AccountID, Amount: event.GrossTotal}
	case portssvc.InboundInvoice:
		expense, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Expense, "expense")
		if err != nil {
			return nil, err
		}
		payable, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Liability, "payable")
		if err != nil {
			return nil, err
		}
		debit = portssvc.CreateLineInput{AccountID: expense.AccountID, Amount: event.GrossTotal}
		credit = portssvc.CreateLineInput{AccountID: payable.AccountID, Amount: event.GrossTotal, BusinessPartnerID: event.BusinessPartnerID}
	default:
		return nil, fmt.Errorf("unknown invoice direction %q", event.Direction)
	}

	input := buildTwoLineEntry(
		event.CompanyID,
		domain.Invoice,
		event.PostingDate,
		fmt.Sprintf("Invoice %s", event.InvoiceNo),
		event.InvoiceNo,
		debit, credit,
	)

	entry, err := s.createAndPost(ctx, input, postedBy)
	if err != nil {
		return nil, err
	}
	logger.Info("Invoice entry posted", "invoiceID", event.InvoiceID, "entryID", entry.EntryID)
	return entry, nil
}

// PostPaymentEvent builds and posts the entry for a completed payment. A
// payment with no linked invoice produces no entry; that is a deliberate
// no-op, not an error.
func (s *postingService) PostPaymentEvent(ctx context.Context, event portssvc.PaymentPostedEvent, postedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.LinkedInvoiceID == nil {
		logger.Info("Payment without linked invoice, no entry posted", "paymentID", event.PaymentID)
		return nil, nil
	}
	if event.LinkedInvoiceDirection == nil {
		return nil, ErrInvoiceDirectionMissing
	}

	bank, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Asset, "bank")
	if err != nil {
		return nil, err
	}

	var debit, credit portssvc.CreateLineInput
	switch *event.LinkedInvoiceDirection {
	case portssvc.OutboundInvoice:
		// Customer payment: money in, receivable down
		receivable, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Asset, "receivable")
		if err != nil {
			return nil, err
		}
		debit = portssvc.CreateLineInput{AccountID: bank.AccountID, Amount: event.Amount}
		credit = portssvc.CreateLineInput{AccountID: receivable.AccountID, Amount: event.Amount, BusinessPartnerID: event.BusinessPartnerID}
	case portssvc.InboundInvoice:
		// Supplier payment: payable down, money out
		payable, err := s.selectAccountByKeyword(ctx, event.CompanyID, domain.Liability, "payable")
		if err != nil {
			return nil, err
		}
		debit = portssvc.CreateLineInput{AccountID: payable.AccountID, Amount: event.Amount, BusinessPartnerID: event.BusinessPartnerID}
		credit = portssvc.CreateLineInput{AccountID: bank.AccountID, Amount: event.Amount}
	default:
		return nil, fmt.Errorf("unknown invoice direction %q", *event.LinkedInvoiceDirection)
	}

	reference := event.BankReference
	if reference == "" {
		reference = event.PaymentID
	}
	input := buildTwoLineEntry(
		event.CompanyID,
		domain.Standard,
		event.PostingDate,
		fmt.Sprintf("Payment %s for invoice %s", event.PaymentID, *event.LinkedInvoiceID),
		reference,
		debit, credit,
	)

	entry, err := s.createAndPost(ctx, input, postedBy)
	if err != nil {
		return nil, err
	}
	logger.Info("Payment entry posted", "paymentID", event.PaymentID, "entryID", entry.EntryID)
	return entry, nil
}
