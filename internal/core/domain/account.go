package domain

// AccountType defines the fundamental accounting category of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the ledger's view of a GL account. Account master data is owned
// elsewhere; the engine only resolves accounts by id and by category.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	CompanyID   string      `json:"companyID"` // Tenant scoping key (Not Null)
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
