package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// PostEntryLineRequest is one debit-or-credit line of a draft entry.
type PostEntryLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	IsDebit   bool            `json:"isDebit"`
}

// PostEntryRequest defines the payload for posting a journal entry.
type PostEntryRequest struct {
	Date  time.Time              `json:"date" binding:"required"`
	Memo  string                 `json:"memo"`
	Lines []PostEntryLineRequest `json:"lines" binding:"required"`
}

// ListEntriesParams holds the optional filters for listing journal entries.
// All supplied filters apply conjunctively.
type ListEntriesParams struct {
	MemoContains string
	From         *time.Time
	To           *time.Time
	AccountID    string
}

// EntryLineResponse defines the data returned for a journal entry line.
type EntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       string              `json:"entryID"`
	CompanyID     string              `json:"companyID"`
	Date          time.Time           `json:"date"`
	Memo          string              `json:"memo"`
	DisplayAmount decimal.Decimal     `json:"displayAmount"`
	Lines         []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		CompanyID:     e.CompanyID,
		Date:          e.EntryDate,
		Memo:          e.Memo,
		DisplayAmount: e.DisplayAmount(),
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain.JournalEntry to []EntryResponse.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
