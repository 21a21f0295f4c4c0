package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// EntryType classifies how a journal entry row came to exist.
type EntryType string

const (
	Standard EntryType = "STANDARD"
	Reversal EntryType = "REVERSAL"
	Clearing EntryType = "CLEARING"
	Invoice  EntryType = "INVOICE"
)

// JournalEntry is the journal_entries row model.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`   // Primary key (UUID)
	CompanyID        string      `json:"companyID"` // Tenant scoping key (Not Null)
	DocumentNo       string      `json:"documentNo"`
	EntryType        EntryType   `json:"entryType"`
	Status           EntryStatus `json:"status"`
	PostingDate      time.Time   `json:"postingDate"`
	DocumentDate     time.Time   `json:"documentDate"`
	Description      string      `json:"description"` // Nullable user description
	Reference        string      `json:"reference"`   // Nullable free text
	OriginalEntryID  *string     `json:"originalEntryID,omitempty"`
	ReversingEntryID *string     `json:"reversingEntryID,omitempty"`
	AuditFields
}

// Direction indicates whether a journal line row is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// JournalLine is the journal_lines row model.
type JournalLine struct {
	LineID            string          `json:"lineID"`  // Primary key (UUID)
	EntryID           string          `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	AccountID         string          `json:"accountID"`
	Amount            decimal.Decimal `json:"amount"` // Positive value; precise decimal type
	Direction         Direction       `json:"direction"`
	CostCenterID      string          `json:"costCenterID"`      // Nullable
	BusinessPartnerID string          `json:"businessPartnerID"` // Nullable
	ClearingID        *string         `json:"clearingID"`        // Nullable; NULL means open item
	AuditFields
}
