package models

// AccountType defines the fundamental accounting category of an account row.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts row model.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	CompanyID   string      `json:"companyID"` // Tenant scoping key (Not Null)
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
