package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// SaveCompany persists a new company.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (company_id, name, created_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query, company.CompanyID, company.Name, company.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert company "+company.CompanyID, err)
	}
	return nil
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, created_at
		FROM companies
		WHERE company_id = $1;
	`
	var company domain.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&company.CompanyID,
		&company.Name,
		&company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company by ID "+companyID, err)
	}
	return &company, nil
}

// ListCompanies retrieves all companies ordered by creation time.
func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	query := `
		SELECT company_id, name, created_at
		FROM companies
		ORDER BY created_at, company_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list companies", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.CompanyID, &company.Name, &company.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company row", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed while iterating company rows", err)
	}
	return companies, nil
}

// DeleteCompany removes a company. Accounts and journal entries owned by it
// go with it through the schema's ON DELETE CASCADE. Deleting an absent
// company is a no-op.
func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	query := `DELETE FROM companies WHERE company_id = $1;`
	_, err := r.Pool.Exec(ctx, query, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete company "+companyID, err)
	}
	return nil
}

// AdoptUnowned attaches accounts and journal entries with a NULL company to
// the given company within one transaction, returning the number of adopted
// accounts.
func (r *PgxCompanyRepository) AdoptUnowned(ctx context.Context, companyID string) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	accountsTag, err := tx.Exec(ctx, `UPDATE accounts SET company_id = $1 WHERE company_id IS NULL;`, companyID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to adopt unowned accounts", err)
	}
	_, err = tx.Exec(ctx, `UPDATE journal_entries SET company_id = $1 WHERE company_id IS NULL;`, companyID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to adopt unowned journal entries", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int(accountsTag.RowsAffected()), nil
}
