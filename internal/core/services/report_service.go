package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

const (
	longDateLayout   = "January 2, 2006"
	mediumDateLayout = "Jan 2, 2006"
)

// reportService assembles the balance sheet, profit and loss, and trial
// balance as generic report documents.
type reportService struct {
	BaseService
	companyRepo portsrepo.CompanyReader
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.PostingReader
}

// NewReportService creates a new ReportService.
func NewReportService(companyRepo portsrepo.CompanyReader, accountRepo portsrepo.AccountReader, entryRepo portsrepo.PostingReader) portssvc.ReportSvcFacade {
	return &reportService{
		companyRepo: companyRepo,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// ledgerSnapshot is one consistent read of everything a report needs.
type ledgerSnapshot struct {
	company   *domain.Company
	byType    map[domain.AccountType][]domain.Account
	byAccount map[string][]domain.Posting
}

func (s *reportService) snapshot(ctx context.Context, companyID string) (*ledgerSnapshot, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	postings, err := s.entryRepo.ListPostingsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}

	byType := make(map[domain.AccountType][]domain.Account)
	for _, account := range accounts {
		byType[account.AccountType] = append(byType[account.AccountType], account)
	}
	return &ledgerSnapshot{
		company:   company,
		byType:    byType,
		byAccount: groupPostingsByAccount(postings),
	}, nil
}

func (snap *ledgerSnapshot) balance(account domain.Account, filter accounting.DateFilter) decimal.Decimal {
	return accounting.BalanceOf(snap.byAccount[account.AccountID], account.AccountType.NormalBalance(), filter)
}

func (snap *ledgerSnapshot) totalForType(accountType domain.AccountType, filter accounting.DateFilter) decimal.Decimal {
	total := decimal.Zero
	for _, account := range snap.byType[accountType] {
		total = total.Add(snap.balance(account, filter))
	}
	return total
}

func (snap *ledgerSnapshot) netIncome(filter accounting.DateFilter) decimal.Decimal {
	return snap.totalForType(domain.Revenue, filter).Sub(snap.totalForType(domain.Expense, filter))
}

// accountRows maps one type's accounts to plain report rows under the filter.
func (snap *ledgerSnapshot) accountRows(accountType domain.AccountType, filter accounting.DateFilter) []domain.ReportRow {
	accounts := snap.byType[accountType]
	rows := make([]domain.ReportRow, 0, len(accounts)+2)
	for _, account := range accounts {
		rows = append(rows, domain.ReportRow{
			Label:  account.Name,
			Values: []decimal.Decimal{snap.balance(account, filter)},
		})
	}
	return rows
}

// BalanceSheet builds the balance sheet as of the end of the given day.
// Equity carries a synthetic Net Income row so that the report satisfies
// Assets = Liabilities + Equity on a ledger of balanced entries.
func (s *reportService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.Report, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	filter := accounting.AsOf(asOf)

	totalLiabilities := snap.totalForType(domain.Liability, filter)
	totalEquity := snap.totalForType(domain.Equity, filter)
	netIncome := snap.netIncome(filter)

	assetRows := append(snap.accountRows(domain.Asset, filter), domain.ReportRow{
		Label:   "Total Assets",
		Values:  []decimal.Decimal{snap.totalForType(domain.Asset, filter)},
		IsTotal: true,
	})
	liabilityRows := append(snap.accountRows(domain.Liability, filter), domain.ReportRow{
		Label:   "Total Liabilities",
		Values:  []decimal.Decimal{totalLiabilities},
		IsTotal: true,
	})
	equityRows := append(snap.accountRows(domain.Equity, filter),
		domain.ReportRow{Label: "Net Income", Values: []decimal.Decimal{netIncome}},
		domain.ReportRow{
			Label:   "Total Equity",
			Values:  []decimal.Decimal{totalEquity.Add(netIncome)},
			IsTotal: true,
		})

	report := &domain.Report{
		Title:         "Balance Sheet",
		Subtitle:      fmt.Sprintf("As of %s — %s", asOf.Format(longDateLayout), snap.company.Name),
		ColumnHeaders: []string{"Amount"},
		Sections: []domain.ReportSection{
			{Title: "Assets", Rows: assetRows},
			{Title: "Liabilities", Rows: liabilityRows},
			{Title: "Equity", Rows: equityRows},
			{Rows: []domain.ReportRow{{
				Label:   "Total Liabilities & Equity",
				Values:  []decimal.Decimal{totalLiabilities.Add(totalEquity).Add(netIncome)},
				IsTotal: true,
			}}},
		},
	}

	s.LogInfo(ctx, "Balance sheet built",
		slog.String("company_id", companyID),
		slog.String("as_of", asOf.Format("2006-01-02")))
	return report, nil
}

// ProfitAndLoss builds the profit and loss statement over the inclusive
// calendar-day range.
func (s *reportService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.Report, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	filter := accounting.Between(from, to)

	totalRevenue := snap.totalForType(domain.Revenue, filter)
	totalExpenses := snap.totalForType(domain.Expense, filter)

	revenueRows := append(snap.accountRows(domain.Revenue, filter), domain.ReportRow{
		Label:   "Total Revenue",
		Values:  []decimal.Decimal{totalRevenue},
		IsTotal: true,
	})
	expenseRows := append(snap.accountRows(domain.Expense, filter), domain.ReportRow{
		Label:   "Total Expenses",
		Values:  []decimal.Decimal{totalExpenses},
		IsTotal: true,
	})

	report := &domain.Report{
		Title:         "Profit & Loss",
		Subtitle:      fmt.Sprintf("%s – %s — %s", from.Format(mediumDateLayout), to.Format(mediumDateLayout), snap.company.Name),
		ColumnHeaders: []string{"Amount"},
		Sections: []domain.ReportSection{
			{Title: "Revenue", Rows: revenueRows},
			{Title: "Expenses", Rows: expenseRows},
			{Rows: []domain.ReportRow{{
				Label:   "Net Income",
				Values:  []decimal.Decimal{totalRevenue.Sub(totalExpenses)},
				IsTotal: true,
			}}},
		},
	}

	s.LogInfo(ctx, "Profit and loss built",
		slog.String("company_id", companyID),
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")))
	return report, nil
}

// TrialBalance builds the trial balance as of the end of the given day.
// Accounts with a zero balance are omitted. The Totals row sums each column
// independently; their equality is a self-check of the ledger, not an
// enforced invariant, so an out-of-balance ledger still renders.
func (s *reportService) TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.Report, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	filter := accounting.AsOf(asOf)

	var rows []domain.ReportRow
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero

	for _, accountType := range domain.AccountTypes {
		for _, account := range snap.byType[accountType] {
			balance := snap.balance(account, filter)
			if balance.IsZero() {
				continue
			}

			absBalance := balance.Abs()
			debitValue := decimal.Zero
			creditValue := decimal.Zero
			if accounting.IsDebitBalance(account.AccountType.NormalBalance(), balance) {
				debitValue = absBalance
			} else {
				creditValue = absBalance
			}

			rows = append(rows, domain.ReportRow{
				Label:  account.Name,
				Values: []decimal.Decimal{debitValue, creditValue},
			})
			totalDebits = totalDebits.Add(debitValue)
			totalCredits = totalCredits.Add(creditValue)
		}
	}

	rows = append(rows, domain.ReportRow{
		Label:   "Totals",
		Values:  []decimal.Decimal{totalDebits, totalCredits},
		IsTotal: true,
	})

	report := &domain.Report{
		Title:         "Trial Balance",
		Subtitle:      fmt.Sprintf("As of %s — %s", asOf.Format(longDateLayout), snap.company.Name),
		ColumnHeaders: []string{"Debit", "Credit"},
		Sections: []domain.ReportSection{
			{Title: "Accounts", Rows: rows},
		},
	}

	s.LogInfo(ctx, "Trial balance built",
		slog.String("company_id", companyID),
		slog.String("as_of", asOf.Format("2006-01-02")),
		slog.Bool("balanced", totalDebits.Equal(totalCredits)))
	return report, nil
}
