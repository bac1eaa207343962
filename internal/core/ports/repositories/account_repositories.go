package repositories

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByCompany retrieves a company's accounts, optionally
	// restricted to one type, ordered by sort rank then name.
	ListAccountsByCompany(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error)

	// CountPostings returns how many journal entry lines reference the account.
	CountPostings(ctx context.Context, accountID string) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccounts persists a batch of new accounts atomically (seeding).
	SaveAccounts(ctx context.Context, accounts []domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// UpdateSortRanks rewrites the sort rank of each listed account in order,
	// starting from 1.
	UpdateSortRanks(ctx context.Context, accountIDs []string) error

	// DeleteAccount removes an account. Callers must ensure the account has no
	// postings first; the storage layer restricts the delete as a backstop.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
