package services

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/dto"
)

// PostingSvcFacade validates and commits journal entries.
type PostingSvcFacade interface {
	// PostEntry validates the draft (two or more usable lines, debits equal
	// credits, both sums positive) and persists the entry atomically. A
	// rejected draft leaves no trace.
	PostEntry(ctx context.Context, companyID string, req dto.PostEntryRequest) (*domain.JournalEntry, error)

	// GetEntry retrieves one of the company's entries with its lines.
	GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry and its lines. Deleting an id that no
	// longer exists is a no-op.
	DeleteEntry(ctx context.Context, entryID string) error
}
