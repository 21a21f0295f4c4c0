package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/corefin/gl_ledger_app/internal/apperrors"
	"github.com/corefin/gl_ledger_app/internal/core/domain"
	"github.com/corefin/gl_ledger_app/internal/core/services"
	"github.com/gin-gonic/gin"
)

// respondError translates service and domain errors into HTTP responses.
// Unknown errors become a 500 with the generic fallback message so internals
// never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var unbalanced *domain.UnbalancedEntryError
	var badState *domain.InvalidStateTransitionError

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &badState),
		errors.Is(err, services.ErrNotReversible),
		errors.Is(err, services.ErrLineAlreadyCleared),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &unbalanced),
		errors.Is(err, domain.ErrEntryMinLines),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, services.ErrDescriptionMissing),
		errors.Is(err, services.ErrReasonMissing),
		errors.Is(err, services.ErrAmbiguousReference),
		errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrAccountInactive),
		errors.Is(err, services.ErrAccountWrongCompany),
		errors.Is(err, services.ErrEntryMinDistinctAccounts),
		errors.Is(err, services.ErrNoLinesToClear),
		errors.Is(err, services.ErrLineNotPosted),
		errors.Is(err, services.ErrPartnerMissing),
		errors.Is(err, services.ErrMultiPartnerClearing),
		errors.Is(err, services.ErrAccountResolution),
		errors.Is(err, services.ErrInvoiceDirectionMissing),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
