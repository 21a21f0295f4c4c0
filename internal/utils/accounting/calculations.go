package accounting

import (
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeBalance sums a set of lines as debit total minus credit total.
// The clearing engine uses this to decide whether a group needs a
// residual entry.
func ComputeBalance(lines []domain.JournalLine) decimal.Decimal {
	balance := decimal.Zero
	for _, line := range lines {
		balance = balance.Add(line.SignedAmount())
	}
	return balance
}

// IsBalanced reports whether the lines net to zero within domain.BalanceTolerance.
func IsBalanced(lines []domain.JournalLine) bool {
	return ComputeBalance(lines).Abs().LessThanOrEqual(domain.BalanceTolerance)
}
