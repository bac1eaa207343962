package dto

import (
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// CreateCompanyRequest defines the payload for creating a company.
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
}

// ListCompaniesResponse wraps the company list with the active selection.
type ListCompaniesResponse struct {
	Companies       []CompanyResponse `json:"companies"`
	ActiveCompanyID string            `json:"activeCompanyID"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company, activeCompanyID string) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		IsActive:  c.CompanyID == activeCompanyID,
	}
}
