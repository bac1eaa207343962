package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tallybook/tallybook/internal/apperrors"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
)

// companyHandler handles HTTP requests related to companies and the active
// company selection.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// newCompanyHandler creates a new companyHandler.
func newCompanyHandler(companyService portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{
		companyService: companyService,
	}
}

// registerCompanyRoutes registers company CRUD and active-selection routes.
func registerCompanyRoutes(group *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := group.Group("/companies")
	companies.POST("", h.createCompany)
	companies.GET("", h.listCompanies)
	companies.GET("/active", h.getActiveCompany)
	companies.PUT("/active/:companyID", h.switchActiveCompany)
	companies.GET("/:companyID", h.getCompany)
	companies.DELETE("/:companyID", h.deleteCompany)
}

func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating company", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create company", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company, ""))
}

func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list companies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies"})
		return
	}

	activeID := ""
	if active, err := h.companyService.ActiveCompany(c.Request.Context()); err == nil {
		activeID = active.CompanyID
	}

	resp := dto.ListCompaniesResponse{
		Companies:       make([]dto.CompanyResponse, len(companies)),
		ActiveCompanyID: activeID,
	}
	for i := range companies {
		resp.Companies[i] = dto.ToCompanyResponse(&companies[i], activeID)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found", slog.String("company_id", companyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to get company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, ""))
}

func (h *companyHandler) getActiveCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	company, err := h.companyService.ActiveCompany(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active company selected"})
			return
		}
		logger.Error("Failed to get active company", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve active company"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, company.CompanyID))
}

func (h *companyHandler) switchActiveCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	company, err := h.companyService.SwitchActiveCompany(c.Request.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company not found for switch", slog.String("company_id", companyID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
			return
		}
		logger.Error("Failed to switch active company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch active company"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, company.CompanyID))
}

func (h *companyHandler) deleteCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	if err := h.companyService.DeleteCompany(c.Request.Context(), companyID); err != nil {
		logger.Error("Failed to delete company", slog.String("error", err.Error()), slog.String("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company"})
		return
	}

	c.Status(http.StatusNoContent)
}
