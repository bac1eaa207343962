package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tallybook/internal/apperrors"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries.
type entryHandler struct {
	postingService portssvc.PostingSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(postingService portssvc.PostingSvcFacade, ledgerService portssvc.LedgerSvcFacade) *entryHandler {
	return &entryHandler{
		postingService: postingService,
		ledgerService:  ledgerService,
	}
}

// registerEntryRoutes registers journal entry routes nested under a company.
func registerEntryRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newEntryHandler(postingService, ledgerService)

	entries := group.Group("/companies/:companyID/entries")
	entries.POST("", h.postEntry)
	entries.GET("", h.listEntries)
	entries.GET("/:entryID", h.getEntry)
	entries.DELETE("/:entryID", h.deleteEntry)
}

func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for PostEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.postingService.PostEntry(c.Request.Context(), companyID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	params := dto.ListEntriesParams{
		MemoContains: c.Query("memo"),
		AccountID:    c.Query("accountID"),
	}
	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		params.From = &parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(dateLayout, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		params.To = &parsed
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToEntryResponses(entries)})
}

func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	entry, err := h.postingService.GetEntry(c.Request.Context(), companyID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	if err := h.postingService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}
