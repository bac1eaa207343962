package repositories

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves all companies ordered by creation time.
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// DeleteCompany removes a company and, by ownership cascade, its accounts
	// and journal entries. Deleting an absent company is a no-op.
	DeleteCompany(ctx context.Context, companyID string) error

	// AdoptUnowned attaches accounts and journal entries that have no owning
	// company to the given company. It returns the number of adopted accounts.
	AdoptUnowned(ctx context.Context, companyID string) (int, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
