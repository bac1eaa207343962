package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
)

var (
	ErrAccountNameMissing = fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	ErrInvalidAccountType = fmt.Errorf("%w: unknown account type", apperrors.ErrValidation)
	// ErrAccountHasPostings guards the two structural edits that would corrupt
	// history: deleting a posted-to account or changing its type.
	ErrAccountHasPostings = fmt.Errorf("%w: account has postings", apperrors.ErrConflict)
)

// accountService manages a company's chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds an account ranked after the existing accounts of its type.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrAccountNameMissing
	}
	if !req.AccountType.IsValid() {
		return nil, ErrInvalidAccountType
	}

	siblings, err := s.accountRepo.ListAccountsByCompany(ctx, companyID, &req.AccountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for ranking: %w", err)
	}
	maxRank := 0
	for _, a := range siblings {
		if a.SortRank > maxRank {
			maxRank = a.SortRank
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(req.Name),
		AccountType: req.AccountType,
		SortRank:    maxRank + 1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID),
		slog.String("type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByID retrieves an account and verifies company ownership.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves the company's accounts ordered by sort rank then name.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, accountType *domain.AccountType) ([]domain.Account, error) {
	if accountType != nil && !accountType.IsValid() {
		return nil, ErrInvalidAccountType
	}
	accounts, err := s.accountRepo.ListAccountsByCompany(ctx, companyID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount renames an account and, while it has no postings, may change
// its type. A type change on a posted-to account is rejected without touching
// the account.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrAccountNameMissing
		}
		account.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if !req.AccountType.IsValid() {
			return nil, ErrInvalidAccountType
		}
		postings, err := s.accountRepo.CountPostings(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to count postings for account %s: %w", accountID, err)
		}
		if postings > 0 {
			return nil, fmt.Errorf("cannot change type of account %s: %w", accountID, ErrAccountHasPostings)
		}
		account.AccountType = *req.AccountType
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account with zero postings. An account with
// postings is a conflict: it and its postings remain untouched.
func (s *accountService) DeleteAccount(ctx context.Context, companyID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, companyID, accountID); err != nil {
		return err
	}

	postings, err := s.accountRepo.CountPostings(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count postings for account %s: %w", accountID, err)
	}
	if postings > 0 {
		return fmt.Errorf("cannot delete account %s: %w", accountID, ErrAccountHasPostings)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

// ReorderAccounts rewrites the sort ranks of one type's accounts to match the
// given order. Every account of the type must appear exactly once.
func (s *accountService) ReorderAccounts(ctx context.Context, companyID string, req dto.ReorderAccountsRequest) error {
	if !req.AccountType.IsValid() {
		return ErrInvalidAccountType
	}

	existing, err := s.accountRepo.ListAccountsByCompany(ctx, companyID, &req.AccountType)
	if err != nil {
		return fmt.Errorf("failed to list accounts for reorder: %w", err)
	}
	if len(existing) != len(req.AccountIDs) {
		return fmt.Errorf("%w: reorder must include every account of the type exactly once", apperrors.ErrValidation)
	}
	known := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		known[a.AccountID] = struct{}{}
	}
	for _, id := range req.AccountIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: account %s is not a %s account of this company", apperrors.ErrValidation, id, req.AccountType)
		}
		delete(known, id)
	}

	if err := s.accountRepo.UpdateSortRanks(ctx, req.AccountIDs); err != nil {
		return fmt.Errorf("failed to update sort ranks: %w", err)
	}

	s.LogInfo(ctx, "Accounts reordered",
		slog.String("company_id", companyID),
		slog.String("type", string(req.AccountType)),
		slog.Int("count", len(req.AccountIDs)))
	return nil
}
