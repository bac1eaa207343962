package repositories

import (
	"context"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// EntryFilter narrows ListEntries results. All set criteria are conjunctive.
type EntryFilter struct {
	// MemoContains matches memos containing the text, case-insensitively.
	MemoContains string
	// From / To bound the entry date to inclusive calendar days.
	From *time.Time
	To   *time.Time
	// AccountID keeps only entries with at least one line posted to the account.
	AccountID string
}

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a company's journal entries with lines, filtered
	// and ordered by entry date descending.
	ListEntries(ctx context.Context, companyID string, filter EntryFilter) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data
type EntryWriter interface {
	// SaveEntry persists a journal entry and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes an entry and cascades to its lines. Deleting an
	// absent entry is a no-op.
	DeleteEntry(ctx context.Context, entryID string) error
}

// PostingReader defines read access to the posting read model (lines joined
// with their entry dates) that balance calculations consume.
type PostingReader interface {
	// ListPostingsByCompany retrieves every posting of the company.
	ListPostingsByCompany(ctx context.Context, companyID string) ([]domain.Posting, error)

	// ListPostingsByAccount retrieves every posting of one account.
	ListPostingsByAccount(ctx context.Context, accountID string) ([]domain.Posting, error)
}

// EntryRepositoryFacade combines all journal-entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	PostingReader
}
