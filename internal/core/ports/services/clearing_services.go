package services

import (
	"context"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
)

// ClearingResult reports the outcome of a clearing operation.
type ClearingResult struct {
	ClearingID      string
	ClearedLineIDs  []string
	ResidualEntryID *string
	ResidualLineID  *string
}

// ClearingSvcFacade defines open-item management operations.
type ClearingSvcFacade interface {
	// GetOpenItems retrieves the posted, uncleared lines for a business partner.
	GetOpenItems(ctx context.Context, companyID string, businessPartnerID string) ([]domain.OpenItem, error)

	// ClearLines groups the given open lines under a new clearing id. When the
	// group does not balance, a residual entry is posted and its balancing line
	// joins the group; the residual counterpart line remains open.
	ClearLines(ctx context.Context, companyID string, lineIDs []string, clearedBy string) (*ClearingResult, error)
}
