package dto

import (
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// CreateLineRequest defines one line of a new entry.
type CreateLineRequest struct {
	AccountID         string          `json:"accountID" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Direction         string          `json:"direction" binding:"required,direction"`
	CostCenterID      string          `json:"costCenterID"`
	BusinessPartnerID string          `json:"businessPartnerID"`
}

// CreateEntryRequest defines the expected JSON structure for creating a draft entry.
type CreateEntryRequest struct {
	PostingDate  time.Time           `json:"postingDate" binding:"required"`
	DocumentDate time.Time           `json:"documentDate"`
	Description  string              `json:"description" binding:"required"`
	Reference    string              `json:"reference"`
	EntryType    string              `json:"entryType"`
	Lines        []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToCreateEntryInput converts the request into the service input. The caller
// has already validated direction and entry type strings.
func (r CreateEntryRequest) ToCreateEntryInput(companyID string, entryType domain.EntryType) portssvc.CreateEntryInput {
	lines := make([]portssvc.CreateLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = portssvc.CreateLineInput{
			AccountID:         l.AccountID,
			Amount:            l.Amount,
			Direction:         domain.Direction(l.Direction),
			CostCenterID:      l.CostCenterID,
			BusinessPartnerID: l.BusinessPartnerID,
		}
	}
	return portssvc.CreateEntryInput{
		CompanyID:    companyID,
		EntryType:    entryType,
		PostingDate:  r.PostingDate,
		DocumentDate: r.DocumentDate,
		Description:  r.Description,
		Reference:    r.Reference,
		Lines:        lines,
	}
}

// LineResponse defines the JSON structure for a journal line in responses.
type LineResponse struct {
	LineID            string          `json:"lineID"`
	EntryID           string          `json:"entryID"`
	AccountID         string          `json:"accountID"`
	Amount            decimal.Decimal `json:"amount"`
	Direction         string          `json:"direction"`
	CostCenterID      string          `json:"costCenterID,omitempty"`
	BusinessPartnerID string          `json:"businessPartnerID,omitempty"`
	ClearingID        *string         `json:"clearingID,omitempty"`
}

// EntryResponse defines the JSON structure for a journal entry in responses.
type EntryResponse struct {
	EntryID          string         `json:"entryID"`
	CompanyID        string         `json:"companyID"`
	DocumentNo       string         `json:"documentNo"`
	EntryType        string         `json:"entryType"`
	Status           string         `json:"status"`
	PostingDate      time.Time      `json:"postingDate"`
	DocumentDate     time.Time      `json:"documentDate"`
	Description      string         `json:"description"`
	Reference        string         `json:"reference,omitempty"`
	OriginalEntryID  *string        `json:"originalEntryID,omitempty"`
	ReversingEntryID *string        `json:"reversingEntryID,omitempty"`
	Lines            []LineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	CreatedBy        string         `json:"createdBy"`
}

// ToLineResponse converts a domain line to its response DTO.
func ToLineResponse(l domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:            l.LineID,
		EntryID:           l.EntryID,
		AccountID:         l.AccountID,
		Amount:            l.Amount,
		Direction:         string(l.Direction),
		CostCenterID:      l.CostCenterID,
		BusinessPartnerID: l.BusinessPartnerID,
		ClearingID:        l.ClearingID,
	}
}

// ToEntryResponse converts a domain entry to its response DTO.
func ToEntryResponse(e domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToLineResponse(l)
	}
	return EntryResponse{
		EntryID:          e.EntryID,
		CompanyID:        e.CompanyID,
		DocumentNo:       e.DocumentNo,
		EntryType:        string(e.EntryType),
		Status:           string(e.Status),
		PostingDate:      e.PostingDate,
		DocumentDate:     e.DocumentDate,
		Description:      e.Description,
		Reference:        e.Reference,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		Lines:            lines,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ListEntriesResponse wraps a page of entries with the pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of domain entries to its response DTO.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return ListEntriesResponse{Entries: out, NextToken: nextToken}
}

// ReverseEntryRequest defines the expected JSON structure for reversing an entry.
// EntryRef is resolved as document reference, entry id, or description fragment.
type ReverseEntryRequest struct {
	EntryRef string `json:"entryRef" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}
