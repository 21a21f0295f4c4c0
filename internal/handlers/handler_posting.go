package handlers

import (
	"net/http"

	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/dto"
	"github.com/corefin/gl_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles business events that produce ledger entries.
type postingHandler struct {
	postingSvc portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingSvc portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingSvc: postingSvc}
}

// registerPostingRoutes registers the business event routes on the company group.
func registerPostingRoutes(group *gin.RouterGroup, postingSvc portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingSvc)

	events := group.Group("/events")
	events.POST("/invoice-posted", h.invoicePosted)
	events.POST("/payment-posted", h.paymentPosted)
}

// invoicePosted godoc
// @Summary Post the ledger entry for a finalized invoice
// @Description Translates an invoice event into a posted two-line entry
// @Tags events
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param event body dto.InvoicePostedRequest true "Invoice event"
// @Success 201 {object} dto.EntryResponse "The posted entry"
// @Failure 400 {object} map[string]string "No posting account could be resolved"
// @Router /companies/{companyID}/events/invoice-posted [post]
func (h *postingHandler) invoicePosted(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.InvoicePostedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for invoicePosted", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingSvc.PostInvoiceEvent(c.Request.Context(), req.ToInvoicePostedEvent(companyID), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post invoice entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(*entry))
}

// paymentPosted godoc
// @Summary Post the ledger entry for a completed payment
// @Description Translates a payment event into a posted two-line entry. Payments without a linked invoice produce no entry.
// @Tags events
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param event body dto.PaymentPostedRequest true "Payment event"
// @Success 201 {object} dto.EntryResponse "The posted entry"
// @Success 204 "Payment had no linked invoice; nothing was posted"
// @Failure 400 {object} map[string]string "No posting account could be resolved"
// @Router /companies/{companyID}/events/payment-posted [post]
func (h *postingHandler) paymentPosted(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.PaymentPostedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for paymentPosted", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingSvc.PostPaymentEvent(c.Request.Context(), req.ToPaymentPostedEvent(companyID), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post payment entry")
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(*entry))
}
