package handlers

import (
	"net/http"
	"strconv"

	"github.com/corefin/gl_ledger_app/internal/core/domain"
	portssvc "github.com/corefin/gl_ledger_app/internal/core/ports/services"
	"github.com/corefin/gl_ledger_app/internal/dto"
	"github.com/corefin/gl_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entrySvc    portssvc.EntrySvcFacade
	reversalSvc portssvc.ReversalSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(entrySvc portssvc.EntrySvcFacade, reversalSvc portssvc.ReversalSvcFacade) *entryHandler {
	return &entryHandler{
		entrySvc:    entrySvc,
		reversalSvc: reversalSvc,
	}
}

// registerEntryRoutes registers the journal entry routes on the company group.
func registerEntryRoutes(group *gin.RouterGroup, entrySvc portssvc.EntrySvcFacade, reversalSvc portssvc.ReversalSvcFacade) {
	h := newEntryHandler(entrySvc, reversalSvc)

	entries := group.Group("/entries")
	entries.POST("", h.createEntry)
	entries.GET("", h.listEntries)
	entries.GET("/:entryID", h.getEntry)
	entries.POST("/:entryID/post", h.postEntry)
	entries.POST("/:entryID/cancel", h.cancelEntry)
	entries.POST("/reverse", h.reverseEntry)
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a new draft entry with its lines
// @Tags entries
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entry body dto.CreateEntryRequest true "Entry and lines"
// @Success 201 {object} dto.EntryResponse "The created draft entry"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /companies/{companyID}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entryType := domain.Standard
	if req.EntryType != "" {
		parsed, err := domain.ParseEntryType(req.EntryType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		entryType = parsed
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entrySvc.CreateEntry(c.Request.Context(), req.ToCreateEntryInput(companyID, entryType), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(*entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry and its lines by entry ID
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "Entry with its lines"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /companies/{companyID}/entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	entry, err := h.entrySvc.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve entry")
		return
	}
	if entry.CompanyID != companyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(*entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a page of entries for the company, newest posting date first
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Pagination token from a previous response"
// @Param includeReversals query bool false "Include reversal entries"
// @Success 200 {object} dto.ListEntriesResponse "Page of entries"
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Router /companies/{companyID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	limit, _ := strconv.Atoi(c.Query("limit"))
	includeReversals, _ := strconv.ParseBool(c.DefaultQuery("includeReversals", "false"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	entries, newNextToken, err := h.entrySvc.ListEntries(c.Request.Context(), companyID, limit, nextToken, includeReversals)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, newNextToken))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Transitions a balanced draft entry to posted
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The posted entry"
// @Failure 400 {object} map[string]string "Entry does not balance"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Router /companies/{companyID}/entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entrySvc.PostEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(*entry))
}

// cancelEntry godoc
// @Summary Cancel an entry
// @Description Transitions a draft or posted entry to cancelled
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The cancelled entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is already cancelled"
// @Router /companies/{companyID}/entries/{entryID}/cancel [post]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entrySvc.CancelEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to cancel entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(*entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts a mirror entry and cancels the original
// @Tags entries
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param reversal body dto.ReverseEntryRequest true "Entry reference and reason"
// @Success 201 {object} dto.EntryResponse "The reversal entry"
// @Failure 400 {object} map[string]string "Ambiguous reference or missing reason"
// @Failure 404 {object} map[string]string "No entry matches the reference"
// @Failure 409 {object} map[string]string "Entry is not reversible"
// @Router /companies/{companyID}/entries/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reverseEntry", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.reversalSvc.ReverseEntry(c.Request.Context(), companyID, req.EntryRef, req.Reason, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(*reversal))
}
