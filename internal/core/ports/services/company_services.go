package services

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// CompanySvcFacade manages the set of companies and the process-wide active
// company selection.
type CompanySvcFacade interface {
	// Bootstrap ensures a company exists (seeding the default one on first
	// run, adopting any pre-company data) and restores the persisted active
	// selection. It returns the active company.
	Bootstrap(ctx context.Context) (*domain.Company, error)

	// CreateCompany creates a company pre-seeded with the default chart of accounts.
	CreateCompany(ctx context.Context, name string) (*domain.Company, error)

	// ListCompanies retrieves all companies ordered by creation time.
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	// GetCompanyByID retrieves a specific company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ActiveCompany returns the currently selected company.
	ActiveCompany(ctx context.Context) (*domain.Company, error)

	// SwitchActiveCompany changes and persists the active selection.
	SwitchActiveCompany(ctx context.Context, companyID string) (*domain.Company, error)

	// DeleteCompany removes a company and everything it owns, repairing the
	// active selection when the active company is the one deleted.
	DeleteCompany(ctx context.Context, companyID string) error
}
