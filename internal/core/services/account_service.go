package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/middleware"
)

// accountService provides account management operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount inserts a new active account.
func (s *accountService) CreateAccount(ctx context.Context, input portssvc.CreateAccountInput, createdBy string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   input.CompanyID,
		Name:        input.Name,
		AccountType: input.AccountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", "error", err)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", "accountID", account.AccountID, "name", account.Name)
	return &account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountByIDs retrieves multiple accounts keyed by id.
func (s *accountService) GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves a page of active accounts for a company.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
}
