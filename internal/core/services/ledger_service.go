package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

// ledgerService provides the read side of the ledger: filtered listings and
// balance aggregation on top of the posting read model.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.EntryRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.EntryRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AccountsByType retrieves the company's accounts of one type, ordered by
// sort rank with name breaking ties.
func (s *ledgerService) AccountsByType(ctx context.Context, companyID string, accountType domain.AccountType) ([]domain.Account, error) {
	if !accountType.IsValid() {
		return nil, ErrInvalidAccountType
	}
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID, &accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s accounts: %w", accountType, err)
	}
	return accounts, nil
}

// AccountBalance computes one account's signed balance under the filter.
func (s *ledgerService) AccountBalance(ctx context.Context, companyID string, accountID string, filter accounting.DateFilter) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.CompanyID != companyID {
		return decimal.Zero, apperrors.ErrNotFound
	}

	postings, err := s.entryRepo.ListPostingsByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list postings for account %s: %w", accountID, err)
	}
	return accounting.BalanceOf(postings, account.AccountType.NormalBalance(), filter), nil
}

// TotalForType sums the balances of every account of the given type.
func (s *ledgerService) TotalForType(ctx context.Context, companyID string, accountType domain.AccountType, filter accounting.DateFilter) (decimal.Decimal, error) {
	accounts, err := s.AccountsByType(ctx, companyID, accountType)
	if err != nil {
		return decimal.Zero, err
	}

	postings, err := s.entryRepo.ListPostingsByCompany(ctx, companyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list postings for company %s: %w", companyID, err)
	}
	byAccount := groupPostingsByAccount(postings)

	total := decimal.Zero
	normal := accountType.NormalBalance()
	for _, account := range accounts {
		total = total.Add(accounting.BalanceOf(byAccount[account.AccountID], normal, filter))
	}
	return total, nil
}

// NetIncome computes revenue minus expense totals under the filter.
func (s *ledgerService) NetIncome(ctx context.Context, companyID string, filter accounting.DateFilter) (decimal.Decimal, error) {
	revenue, err := s.TotalForType(ctx, companyID, domain.Revenue, filter)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.TotalForType(ctx, companyID, domain.Expense, filter)
	if err != nil {
		return decimal.Zero, err
	}
	return revenue.Sub(expenses), nil
}

// ListEntries retrieves the company's journal entries, newest first, narrowed
// by the conjunctive filters in params.
func (s *ledgerService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) ([]domain.JournalEntry, error) {
	filter := portsrepo.EntryFilter{
		MemoContains: params.MemoContains,
		From:         params.From,
		To:           params.To,
		AccountID:    params.AccountID,
	}
	entries, err := s.entryRepo.ListEntries(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// groupPostingsByAccount indexes a company's postings by account ID.
func groupPostingsByAccount(postings []domain.Posting) map[string][]domain.Posting {
	byAccount := make(map[string][]domain.Posting)
	for _, p := range postings {
		byAccount[p.AccountID] = append(byAccount[p.AccountID], p)
	}
	return byAccount
}
