package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

// LedgerSvcFacade provides read-side queries over a company's ledger:
// filtered account/entry listings and balance aggregation.
type LedgerSvcFacade interface {
	// AccountsByType retrieves the company's accounts of one type, ordered by
	// sort rank with name as the tie-breaker.
	AccountsByType(ctx context.Context, companyID string, accountType domain.AccountType) ([]domain.Account, error)

	// AccountBalance computes one account's signed balance under the filter.
	AccountBalance(ctx context.Context, companyID string, accountID string, filter accounting.DateFilter) (decimal.Decimal, error)

	// TotalForType sums the balances of every account of the given type.
	TotalForType(ctx context.Context, companyID string, accountType domain.AccountType, filter accounting.DateFilter) (decimal.Decimal, error)

	// NetIncome computes revenue minus expense totals under the filter.
	NetIncome(ctx context.Context, companyID string, filter accounting.DateFilter) (decimal.Decimal, error)

	// ListEntries retrieves the company's journal entries, newest first,
	// narrowed by the conjunctive filters in params.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error)
}
