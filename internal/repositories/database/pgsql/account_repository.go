package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
)

// foreignKeyViolation is the Postgres error code raised when deleting an
// account that journal entry lines still reference.
const foreignKeyViolation = "23503"

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, company_id, name, account_type, sort_rank, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.CompanyID,
		&account.Name,
		&account.AccountType,
		&account.SortRank,
		&account.CreatedAt,
		&account.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the result; callers decide whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed while iterating account rows", err)
	}
	return accounts, nil
}

// ListAccountsByCompany retrieves a company's accounts, optionally narrowed to
// one type, ordered by sort rank with name breaking ties.
func (r *PgxAccountRepository) ListAccountsByCompany(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1`
	args := []any{companyID}
	if accountType != nil {
		query += ` AND account_type = $2`
		args = append(args, *accountType)
	}
	query += ` ORDER BY sort_rank, name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for company "+companyID, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed while iterating account rows", err)
	}
	return accounts, nil
}

// CountPostings returns how many journal entry lines reference the account.
func (r *PgxAccountRepository) CountPostings(ctx context.Context, accountID string) (int, error) {
	query := `SELECT COUNT(*) FROM journal_entry_lines WHERE account_id = $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count postings for account "+accountID, err)
	}
	return count, nil
}

const insertAccountQuery = `
	INSERT INTO accounts (account_id, company_id, name, account_type, sort_rank, created_at, last_updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	_, err := r.Pool.Exec(ctx, insertAccountQuery,
		account.AccountID,
		account.CompanyID,
		account.Name,
		account.AccountType,
		account.SortRank,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

// SaveAccounts persists a batch of new accounts within one transaction.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(insertAccountQuery,
			account.AccountID,
			account.CompanyID,
			account.Name,
			account.AccountType,
			account.SortRank,
			account.CreatedAt,
			account.LastUpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute account insert batch", err)
	}
	return r.Commit(ctx, tx)
}

// UpdateAccount updates an existing account's details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, sort_rank = $4, last_updated_at = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.AccountType,
		account.SortRank,
		account.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSortRanks rewrites the sort rank of each listed account in order,
// starting from 1, within one transaction.
func (r *PgxAccountRepository) UpdateSortRanks(ctx context.Context, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for i, accountID := range accountIDs {
		batch.Queue(`UPDATE accounts SET sort_rank = $2 WHERE account_id = $1;`, accountID, i+1)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute sort rank update batch", err)
	}
	return r.Commit(ctx, tx)
}

// DeleteAccount removes an account. The schema restricts the delete while
// journal entry lines still reference the account; that restriction surfaces
// as a conflict.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM accounts WHERE account_id = $1;`
	_, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	return nil
}
