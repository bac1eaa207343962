package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single, balanced financial event composed of
// two or more lines. A persisted entry is always balanced; unbalanced drafts
// exist only inside the posting service before validation.
type JournalEntry struct {
	EntryID   string             `json:"entryID"`   // Primary Key (UUID)
	CompanyID string             `json:"companyID"` // FK -> companies.company_id
	EntryDate time.Time          `json:"entryDate"` // Date the event occurred
	Memo      string             `json:"memo"`
	Lines     []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// TotalDebits sums the debit amounts across all lines.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the credit amounts across all lines.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// IsBalanced reports whether debits equal credits and the entry moves money at all.
func (e *JournalEntry) IsBalanced() bool {
	debits := e.TotalDebits()
	return debits.Equal(e.TotalCredits()) && debits.IsPositive()
}

// DisplayAmount is the economic value of the entry: the debit side of a
// balanced entry.
func (e *JournalEntry) DisplayAmount() decimal.Decimal {
	return e.TotalDebits()
}

// JournalEntryLine is one debit-or-credit posting within a journal entry,
// referencing exactly one account. Exactly one of Debit and Credit is positive.
type JournalEntryLine struct {
	LineID    string          `json:"lineID"`    // Primary Key (UUID)
	EntryID   string          `json:"entryID"`   // FK -> journal_entries.entry_id
	AccountID string          `json:"accountID"` // FK -> accounts.account_id
	LineNo    int             `json:"lineNo"`    // Order within the entry
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// Amount returns the single positive side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Posting is the read model consumed by balance calculations: a line joined
// with the date of its owning entry.
type Posting struct {
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	EntryDate time.Time       `json:"entryDate"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}
