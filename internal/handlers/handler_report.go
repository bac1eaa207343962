package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/export"
	"github.com/tallybook/tallybook/internal/middleware"
)

// reportHandler handles HTTP requests for financial reports and their exports.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(reportService portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{
		reportService: reportService,
	}
}

// registerReportRoutes registers report routes nested under a company.
func registerReportRoutes(group *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := group.Group("/companies/:companyID/reports")
	reports.GET("/balance-sheet", h.getBalanceSheet)
	reports.GET("/profit-and-loss", h.getProfitAndLoss)
	reports.GET("/trial-balance", h.getTrialBalance)
}

// parseAsOf reads the asOf query parameter, defaulting to today.
func parseAsOf(c *gin.Context) (time.Time, error) {
	asOfStr := c.Query("asOf")
	if asOfStr == "" {
		return time.Now().UTC(), nil
	}
	asOf, err := time.Parse(dateLayout, asOfStr)
	if err != nil {
		return time.Time{}, errors.New("invalid asOf date, expected YYYY-MM-DD")
	}
	return asOf, nil
}

// deliverReport writes the report either as JSON or serialized through the
// requested export format as a file download.
func (h *reportHandler) deliverReport(c *gin.Context, report *domain.Report, filename string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	formatStr := c.Query("format")
	if formatStr == "" || formatStr == "json" {
		c.JSON(http.StatusOK, report)
		return
	}

	format, err := export.ParseFormat(formatStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := export.Generate(report, format)
	if err != nil {
		logger.Error("Failed to serialize report", slog.String("error", err.Error()), slog.String("format", string(format)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s%s", filename, format.FileExtension()))
	c.Data(http.StatusOK, format.ContentType(), data)
}

func (h *reportHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.BalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	h.deliverReport(c, report, "balance-sheet")
}

func (h *reportHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to dates are required"})
		return
	}
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}

	report, err := h.reportService.ProfitAndLoss(c.Request.Context(), companyID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to build profit and loss", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build profit and loss"})
		return
	}

	h.deliverReport(c, report, "profit-and-loss")
}

func (h *reportHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.TrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	h.deliverReport(c, report, "trial-balance")
}
