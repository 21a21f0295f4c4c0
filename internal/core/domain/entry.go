package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// EntryType classifies how a journal entry came to exist.
type EntryType string

const (
	Standard EntryType = "STANDARD"
	Reversal EntryType = "REVERSAL"
	Clearing EntryType = "CLEARING"
	Invoice  EntryType = "INVOICE"
)

// BalanceTolerance is the maximum absolute difference between debits and
// credits for an entry to be considered balanced. Amounts are fixed-precision
// decimals, so this only absorbs rounding of externally supplied totals.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalEntry is the double-entry aggregate. Lines are owned exclusively by
// the entry; once posted, line composition is immutable and only the status
// and per-line clearing id may change.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`    // Primary key (UUID)
	CompanyID        string        `json:"companyID"`  // Tenant scoping key (Not Null)
	DocumentNo       string        `json:"documentNo"` // Human readable sequence number
	EntryType        EntryType     `json:"entryType"`
	Status           EntryStatus   `json:"status"`
	PostingDate      time.Time     `json:"postingDate"`
	DocumentDate     time.Time     `json:"documentDate"`
	Description      string        `json:"description"`
	Reference        string        `json:"reference"` // Free text, used as reversal lookup key
	OriginalEntryID  *string       `json:"originalEntryID,omitempty"`  // Set on reversal entries
	ReversingEntryID *string       `json:"reversingEntryID,omitempty"` // Set on reversed originals
	Lines            []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// AppendLine adds a line to a draft entry. Amounts must be strictly positive;
// direction normalisation happens at the boundary, not here.
func (e *JournalEntry) AppendLine(line JournalLine) error {
	if e.Status != Draft {
		return &InvalidStateTransitionError{EntryID: e.EntryID, From: e.Status, Op: "append line"}
	}
	if line.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: line amount %s for account %s", ErrInvalidAmount, line.Amount.String(), line.AccountID)
	}
	line.EntryID = e.EntryID
	e.Lines = append(e.Lines, line)
	return nil
}

// Balance returns the entry's debit total minus its credit total.
func (e *JournalEntry) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, line := range e.Lines {
		if line.Direction == Debit {
			balance = balance.Add(line.Amount)
		} else {
			balance = balance.Sub(line.Amount)
		}
	}
	return balance
}

// IsBalanced reports whether debits equal credits within BalanceTolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.Balance().Abs().LessThanOrEqual(BalanceTolerance)
}

// Post validates the balance invariant and transitions Draft -> Posted.
func (e *JournalEntry) Post() error {
	if e.Status != Draft {
		return &InvalidStateTransitionError{EntryID: e.EntryID, From: e.Status, Op: "post"}
	}
	if len(e.Lines) < 2 {
		return fmt.Errorf("%w: entry %s has %d line(s)", ErrEntryMinLines, e.EntryID, len(e.Lines))
	}
	if delta := e.Balance(); delta.Abs().GreaterThan(BalanceTolerance) {
		return &UnbalancedEntryError{EntryID: e.EntryID, Delta: delta}
	}
	e.Status = Posted
	return nil
}

// Cancel transitions the entry to Cancelled. Cancelling does not undo the GL
// effect by itself; callers that need the financial effect neutralised must
// reverse the entry explicitly.
func (e *JournalEntry) Cancel() error {
	if e.Status == Cancelled {
		return &InvalidStateTransitionError{EntryID: e.EntryID, From: e.Status, Op: "cancel"}
	}
	e.Status = Cancelled
	return nil
}
