package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenItem is the read model for a posted, uncleared journal line, as
// presented to callers selecting lines for clearing. All references are
// resolved eagerly; there is no partially loaded state.
type OpenItem struct {
	LineID            string          `json:"lineID"`
	EntryID           string          `json:"entryID"`
	BusinessPartnerID string          `json:"businessPartnerID"`
	Description       string          `json:"description"`
	PostingDate       time.Time       `json:"postingDate"`
	Reference         string          `json:"reference"`
	Amount            decimal.Decimal `json:"amount"`
	Direction         Direction       `json:"direction"`
	EntryType         EntryType       `json:"entryType"`
	AccountName       string          `json:"accountName"`
}
