package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
)

// Settings keys owned by the company service. These are the only engine state
// kept outside the primary entities.
const (
	ActiveCompanyKey = "active_company_id"
	SeedCompletedKey = "seed_completed"
)

// DefaultCompanyName is the name given to the company created on first run.
const DefaultCompanyName = "My Company"

var ErrCompanyNameMissing = fmt.Errorf("%w: company name is required", apperrors.ErrValidation)

// companyService manages companies and the persisted active-company selection.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	settings    portsrepo.SettingsRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, settings portsrepo.SettingsRepository) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		accountRepo: accountRepo,
		settings:    settings,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// Bootstrap makes the ledger usable on startup: it guarantees at least one
// company exists and that the active selection points at a live company.
// Pre-company data (accounts and entries with no owner) is adopted into the
// default company rather than reseeded over.
func (s *companyService) Bootstrap(ctx context.Context) (*domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies during bootstrap: %w", err)
	}

	if len(companies) == 0 {
		defaultCompany, err := s.createDefaultCompany(ctx)
		if err != nil {
			return nil, err
		}
		companies = []domain.Company{*defaultCompany}
	}

	active, err := s.restoreActiveSelection(ctx, companies)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bootstrap complete",
		slog.Int("company_count", len(companies)),
		slog.String("active_company_id", active.CompanyID))
	return active, nil
}

func (s *companyService) createDefaultCompany(ctx context.Context) (*domain.Company, error) {
	seeded, err := s.settings.Get(ctx, SeedCompletedKey)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read seed marker: %w", err)
	}
	alreadySeeded := err == nil && seeded == "true"

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      DefaultCompanyName,
		CreatedAt: now,
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save default company: %w", err)
	}

	// Data from before companies existed has no owner. Attach it to the new
	// default company; only seed the chart when there was nothing to adopt
	// and no previous seeding happened.
	adopted, err := s.companyRepo.AdoptUnowned(ctx, company.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to adopt unowned records: %w", err)
	}

	if adopted == 0 && !alreadySeeded {
		if err := s.accountRepo.SaveAccounts(ctx, defaultChartAccounts(company.CompanyID, now)); err != nil {
			return nil, fmt.Errorf("failed to seed default chart of accounts: %w", err)
		}
	}

	if err := s.settings.Set(ctx, SeedCompletedKey, "true"); err != nil {
		return nil, fmt.Errorf("failed to persist seed marker: %w", err)
	}

	s.LogInfo(ctx, "Default company created",
		slog.String("company_id", company.CompanyID),
		slog.Int("adopted_accounts", adopted))
	return &company, nil
}

// restoreActiveSelection resolves the remembered active company, falling back
// to the first available one when the remembered id is gone, and persists the
// resulting selection.
func (s *companyService) restoreActiveSelection(ctx context.Context, companies []domain.Company) (*domain.Company, error) {
	active := &companies[0]

	savedID, err := s.settings.Get(ctx, ActiveCompanyKey)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to read active company selection: %w", err)
	}
	if err == nil {
		for i := range companies {
			if companies[i].CompanyID == savedID {
				active = &companies[i]
				break
			}
		}
	}

	if err := s.settings.Set(ctx, ActiveCompanyKey, active.CompanyID); err != nil {
		return nil, fmt.Errorf("failed to persist active company selection: %w", err)
	}
	return active, nil
}

// CreateCompany creates an empty company pre-seeded with the default chart.
func (s *companyService) CreateCompany(ctx context.Context, name string) (*domain.Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCompanyNameMissing
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
	}
	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}
	if err := s.accountRepo.SaveAccounts(ctx, defaultChartAccounts(company.CompanyID, now)); err != nil {
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	s.LogInfo(ctx, "Company created", slog.String("company_id", company.CompanyID), slog.String("name", company.Name))
	return &company, nil
}

// ListCompanies retrieves all companies ordered by creation time.
func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// GetCompanyByID retrieves a specific company.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	return company, nil
}

// ActiveCompany returns the currently selected company.
func (s *companyService) ActiveCompany(ctx context.Context) (*domain.Company, error) {
	activeID, err := s.settings.Get(ctx, ActiveCompanyKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no active company selected: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read active company selection: %w", err)
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, activeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active company %s: %w", activeID, err)
	}
	return company, nil
}

// SwitchActiveCompany changes and persists the active selection. It is a pure
// selection change: no company data is touched.
func (s *companyService) SwitchActiveCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	if err := s.settings.Set(ctx, ActiveCompanyKey, company.CompanyID); err != nil {
		return nil, fmt.Errorf("failed to persist active company selection: %w", err)
	}
	s.LogInfo(ctx, "Active company switched", slog.String("company_id", company.CompanyID))
	return company, nil
}

// DeleteCompany removes a company with everything it owns. When the active
// company is deleted the selection moves to the first remaining company.
func (s *companyService) DeleteCompany(ctx context.Context, companyID string) error {
	if err := s.companyRepo.DeleteCompany(ctx, companyID); err != nil {
		return fmt.Errorf("failed to delete company %s: %w", companyID, err)
	}

	activeID, err := s.settings.Get(ctx, ActiveCompanyKey)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to read active company selection: %w", err)
	}
	if err == nil && activeID == companyID {
		remaining, err := s.companyRepo.ListCompanies(ctx)
		if err != nil {
			return fmt.Errorf("failed to list companies after delete: %w", err)
		}
		if len(remaining) > 0 {
			if err := s.settings.Set(ctx, ActiveCompanyKey, remaining[0].CompanyID); err != nil {
				return fmt.Errorf("failed to repair active company selection: %w", err)
			}
		}
	}

	s.LogInfo(ctx, "Company deleted", slog.String("company_id", companyID))
	return nil
}
