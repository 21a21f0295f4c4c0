package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a line amount is zero or negative.
	ErrInvalidAmount = errors.New("line amount must be positive")

	// ErrEntryMinLines is returned when an entry is posted with fewer than two lines.
	ErrEntryMinLines = errors.New("entry must have at least two lines")
)

// UnbalancedEntryError reports a violated balance invariant. Delta is the
// debit total minus the credit total at the moment of posting.
type UnbalancedEntryError struct {
	EntryID string
	Delta   decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("entry %s does not balance: debit-credit delta is %s", e.EntryID, e.Delta.String())
}

// InvalidStateTransitionError reports an operation attempted against an entry
// in the wrong lifecycle state.
type InvalidStateTransitionError struct {
	EntryID string
	From    EntryStatus
	Op      string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot %s entry %s in status %s", e.Op, e.EntryID, e.From)
}
