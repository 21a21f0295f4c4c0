package services

import (
	"context"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
)

// CreateAccountInput carries the data needed to create an account.
type CreateAccountInput struct {
	CompanyID   string
	Name        string
	AccountType domain.AccountType
}

// AccountSvcFacade defines account management operations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, input CreateAccountInput, createdBy string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
}
