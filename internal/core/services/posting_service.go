package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
)

var (
	ErrEntryMinLines   = fmt.Errorf("%w: entry must have at least two lines with an account and a positive amount", apperrors.ErrValidation)
	ErrEntryUnbalanced = fmt.Errorf("%w: total debits must equal total credits", apperrors.ErrValidation)
	ErrEntryZeroAmount = fmt.Errorf("%w: entry must move a positive amount", apperrors.ErrValidation)
	ErrAccountNotFound = fmt.Errorf("account not found: %w", apperrors.ErrNotFound)
)

// postingService validates and commits journal entries.
type postingService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewPostingService creates a new PostingService.
func NewPostingService(entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.PostingSvcFacade {
	return &postingService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostEntry validates the draft and persists it atomically. Rejections happen
// before any mutation, so a rejected draft leaves no trace.
func (s *postingService) PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest) (*domain.JournalEntry, error) {
	// Lines without an account or a positive amount are blank form rows, not
	// errors: they are dropped before validation.
	usable := make([]dto.PostEntryLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.AccountID == "" || !line.Amount.IsPositive() {
			continue
		}
		usable = append(usable, line)
	}
	if len(usable) < 2 {
		return nil, ErrEntryMinLines
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range usable {
		if line.IsDebit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	if !debits.Equal(credits) {
		return nil, fmt.Errorf("%w: debits are %s, credits are %s", ErrEntryUnbalanced, debits.String(), credits.String())
	}
	if !debits.IsPositive() {
		return nil, ErrEntryZeroAmount
	}

	// Every referenced account must exist and belong to the posting company.
	accountIDs := make([]string, 0, len(usable))
	for _, line := range usable {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueStrings(accountIDs) {
		account, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if account.CompanyID != companyID {
			return nil, fmt.Errorf("%w: account %s does not belong to company %s", ErrAccountNotFound, id, companyID)
		}
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: companyID,
		EntryDate: req.Date,
		Memo:      req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	entry.Lines = make([]domain.JournalEntryLine, len(usable))
	for i, line := range usable {
		debit := decimal.Zero
		credit := decimal.Zero
		if line.IsDebit {
			debit = line.Amount
		} else {
			credit = line.Amount
		}
		entry.Lines[i] = domain.JournalEntryLine{
			LineID:    uuid.NewString(),
			EntryID:   entry.EntryID,
			AccountID: line.AccountID,
			LineNo:    i + 1,
			Debit:     debit,
			Credit:    credit,
		}
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("company_id", companyID),
		slog.String("amount", entry.DisplayAmount().String()),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// GetEntry retrieves one of the company's entries with its lines.
func (s *postingService) GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// DeleteEntry removes an entry and its lines. Deleting an id that no longer
// exists is a no-op, which makes the operation safely repeatable.
func (s *postingService) DeleteEntry(ctx context.Context, entryID string) error {
	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	s.LogDebug(ctx, "Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
