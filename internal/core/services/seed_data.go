package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// seedAccount is one row of the default chart of accounts.
type seedAccount struct {
	Name     string
	Type     domain.AccountType
	SortRank int
}

// defaultChart is the fixed chart of accounts every new company starts with.
// Sort ranks order accounts within their type.
var defaultChart = []seedAccount{
	// Assets
	{"Cash", domain.Asset, 1},
	{"Checking", domain.Asset, 2},
	{"Savings", domain.Asset, 3},
	{"Accounts Receivable", domain.Asset, 4},
	{"Equipment", domain.Asset, 5},

	// Liabilities
	{"Credit Cards Payable", domain.Liability, 1},
	{"Loan Payable", domain.Liability, 2},
	{"Sales Tax Payable", domain.Liability, 3},

	// Equity
	{"Owner's Equity", domain.Equity, 1},
	{"Retained Earnings", domain.Equity, 2},

	// Revenue
	{"Sales Income", domain.Revenue, 1},
	{"Affiliate Income", domain.Revenue, 2},
	{"Advertising Income", domain.Revenue, 3},

	// Expenses
	{"Materials", domain.Expense, 1},
	{"Subcontractors", domain.Expense, 2},
	{"Advertising/Marketing", domain.Expense, 3},
	{"Software/Subscriptions", domain.Expense, 4},
	{"Insurance", domain.Expense, 5},
	{"Office Supplies", domain.Expense, 6},
	{"Travel", domain.Expense, 7},
	{"Meals", domain.Expense, 8},
	{"Professional Fees", domain.Expense, 9},
	{"Repairs & Maintenance", domain.Expense, 10},
}

// defaultChartAccounts materializes the default chart for a company.
func defaultChartAccounts(companyID string, now time.Time) []domain.Account {
	accounts := make([]domain.Account, len(defaultChart))
	for i, seed := range defaultChart {
		accounts[i] = domain.Account{
			AccountID:   uuid.NewString(),
			CompanyID:   companyID,
			Name:        seed.Name,
			AccountType: seed.Type,
			SortRank:    seed.SortRank,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}
	return accounts
}
