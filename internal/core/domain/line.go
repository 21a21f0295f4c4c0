package domain

import "github.com/shopspring/decimal"

// Direction indicates whether a journal line is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Opposite returns the other side of the ledger.
func (d Direction) Opposite() Direction {
	if d == Debit {
		return Credit
	}
	return Debit
}

// JournalLine is a single line item within a JournalEntry, affecting one
// account. A nil ClearingID marks the line as an open item once its parent
// entry is posted.
type JournalLine struct {
	LineID            string          `json:"lineID"`  // Primary key (UUID)
	EntryID           string          `json:"entryID"` // FK -> JournalEntry.entryID (Not Null)
	AccountID         string          `json:"accountID"`
	Amount            decimal.Decimal `json:"amount"` // Positive value, fixed precision
	Direction         Direction       `json:"direction"`
	CostCenterID      string          `json:"costCenterID,omitempty"`
	BusinessPartnerID string          `json:"businessPartnerID,omitempty"`
	ClearingID        *string         `json:"clearingID,omitempty"` // Nil means open item
	AuditFields
}

// IsOpen reports whether the line has not yet been assigned to a clearing group.
func (l JournalLine) IsOpen() bool {
	return l.ClearingID == nil
}

// SignedAmount returns the amount as debit-positive / credit-negative.
func (l JournalLine) SignedAmount() decimal.Decimal {
	if l.Direction == Debit {
		return l.Amount
	}
	return l.Amount.Neg()
}
