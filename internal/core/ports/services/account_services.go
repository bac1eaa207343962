package services

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/dto"
)

// AccountSvcFacade manages a company's chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount adds a new account to the company's chart, ranked after
	// the existing accounts of its type.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// GetAccountByID retrieves a specific account belonging to the company.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the company's accounts, optionally restricted to
	// one type, ordered by sort rank then name.
	ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error)

	// UpdateAccount renames an account and, while it has no postings, may
	// change its type. A type change on a posted-to account is a conflict.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account with zero postings; an account with
	// postings is a conflict and remains untouched.
	DeleteAccount(ctx context.Context, companyID string, accountID string) error

	// ReorderAccounts rewrites the sort ranks of one type's accounts to match
	// the given order.
	ReorderAccounts(ctx context.Context, companyID string, req dto.ReorderAccountsRequest) error
}
