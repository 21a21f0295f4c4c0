package dto

import (
	"time"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ClearLinesRequest defines the expected JSON structure for a clearing request.
type ClearLinesRequest struct {
	LineIDs []string `json:"lineIDs" binding:"required,min=1,dive,required"`
}

// ClearLinesResponse reports the clearing group and any residual created.
type ClearLinesResponse struct {
	ClearingID      string   `json:"clearingID"`
	ClearedLineIDs  []string `json:"clearedLineIDs"`
	ResidualEntryID *string  `json:"residualEntryID,omitempty"`
	ResidualLineID  *string  `json:"residualLineID,omitempty"`
}

// ToClearLinesResponse converts a clearing result to its response DTO.
func ToClearLinesResponse(result portssvc.ClearingResult) ClearLinesResponse {
	return ClearLinesResponse{
		ClearingID:      result.ClearingID,
		ClearedLineIDs:  result.ClearedLineIDs,
		ResidualEntryID: result.ResidualEntryID,
		ResidualLineID:  result.ResidualLineID,
	}
}

// OpenItemResponse defines the JSON structure for one open item.
type OpenItemResponse struct {
	LineID            string          `json:"lineID"`
	EntryID           string          `json:"entryID"`
	BusinessPartnerID string          `json:"businessPartnerID"`
	Description       string          `json:"description"`
	PostingDate       time.Time       `json:"postingDate"`
	Reference         string          `json:"reference,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Direction         string          `json:"direction"`
	EntryType         string          `json:"entryType"`
	AccountName       string          `json:"accountName"`
}

// ToOpenItemResponses converts domain open items to their response DTOs.
func ToOpenItemResponses(items []domain.OpenItem) []OpenItemResponse {
	out := make([]OpenItemResponse, len(items))
	for i, item := range items {
		out[i] = OpenItemResponse{
			LineID:            item.LineID,
			EntryID:           item.EntryID,
			BusinessPartnerID: item.BusinessPartnerID,
			Description:       item.Description,
			PostingDate:       item.PostingDate,
			Reference:         item.Reference,
			Amount:            item.Amount,
			Direction:         string(item.Direction),
			EntryType:         string(item.EntryType),
			AccountName:       item.AccountName,
		}
	}
	return out
}
