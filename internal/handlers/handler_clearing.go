package handlers

import (
	"net/http"

	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/dto"
	"github.com/corefin/gl_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clearingHandler handles HTTP requests related to open items and clearing.
type clearingHandler struct {
	clearingSvc portssvc.ClearingSvcFacade
}

// newClearingHandler creates a new clearingHandler.
func newClearingHandler(clearingSvc portssvc.ClearingSvcFacade) *clearingHandler {
	return &clearingHandler{clearingSvc: clearingSvc}
}

// registerClearingRoutes registers the open item routes on the company group.
func registerClearingRoutes(group *gin.RouterGroup, clearingSvc portssvc.ClearingSvcFacade) {
	h := newClearingHandler(clearingSvc)

	group.GET("/open-items", h.getOpenItems)
	group.POST("/clearing", h.clearLines)
}

// getOpenItems godoc
// @Summary List open items for a business partner
// @Description Retrieves posted, uncleared lines for the partner, oldest posting date first
// @Tags clearing
// @Produce json
// @Param companyID path string true "Company ID"
// @Param businessPartnerID query string true "Business partner ID"
// @Success 200 {array} dto.OpenItemResponse "Open items"
// @Failure 400 {object} map[string]string "Missing business partner"
// @Router /companies/{companyID}/open-items [get]
func (h *clearingHandler) getOpenItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	businessPartnerID := c.Query("businessPartnerID")
	if businessPartnerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "businessPartnerID query parameter is required"})
		return
	}

	items, err := h.clearingSvc.GetOpenItems(c.Request.Context(), companyID, businessPartnerID)
	if err != nil {
		respondError(c, logger, err, "Failed to list open items")
		return
	}

	c.JSON(http.StatusOK, dto.ToOpenItemResponses(items))
}

// clearLines godoc
// @Summary Clear a group of open items
// @Description Groups the given lines under a clearing id, posting a residual entry when they do not balance
// @Tags clearing
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param clearing body dto.ClearLinesRequest true "Line IDs to clear"
// @Success 200 {object} dto.ClearLinesResponse "Clearing result"
// @Failure 400 {object} map[string]string "Lines span partners or are not clearable"
// @Failure 404 {object} map[string]string "A line was not found"
// @Failure 409 {object} map[string]string "A line was cleared concurrently"
// @Router /companies/{companyID}/clearing [post]
func (h *clearingHandler) clearLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.ClearLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for clearLines", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.clearingSvc.ClearLines(c.Request.Context(), companyID, req.LineIDs, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to clear lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToClearLinesResponse(*result))
}
