package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// DateFilter restricts which postings count toward a balance. The zero value
// is unbounded. Bounds are half-open instants derived from calendar days:
// [start-of-day(start), start-of-day(end) + 24h). Day boundaries are computed
// in UTC so that a stored timestamp always lands in the same calendar day
// regardless of where the process runs.
type DateFilter struct {
	start *time.Time
	end   *time.Time
}

// Unbounded matches every posting.
func Unbounded() DateFilter {
	return DateFilter{}
}

// AsOf matches postings dated within or before the whole calendar day d.
func AsOf(d time.Time) DateFilter {
	end := startOfDay(d).Add(24 * time.Hour)
	return DateFilter{end: &end}
}

// Between matches postings dated within the calendar days start..end,
// inclusive on both ends.
func Between(start, end time.Time) DateFilter {
	s := startOfDay(start)
	e := startOfDay(end).Add(24 * time.Hour)
	return DateFilter{start: &s, end: &e}
}

// Range builds a filter from optional day bounds; a nil side stays open.
func Range(start, end *time.Time) DateFilter {
	var f DateFilter
	if start != nil {
		s := startOfDay(*start)
		f.start = &s
	}
	if end != nil {
		e := startOfDay(*end).Add(24 * time.Hour)
		f.end = &e
	}
	return f
}

// Contains reports whether a posting dated t qualifies under the filter.
func (f DateFilter) Contains(t time.Time) bool {
	if f.start != nil && t.Before(*f.start) {
		return false
	}
	if f.end != nil && !t.Before(*f.end) {
		return false
	}
	return true
}

// Bounds returns the half-open instant range of the filter; either side may
// be nil for an open end. Repositories use this to push the filter into SQL.
func (f DateFilter) Bounds() (start, end *time.Time) {
	return f.start, f.end
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contribution returns the signed effect of a single posting on its account's
// balance under the account's normal balance convention:
// debit-normal accounts gain (debit - credit), credit-normal accounts gain
// (credit - debit). A posting on the normal side therefore increases the
// balance, and a contra posting drives it negative.
func Contribution(p domain.Posting, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.DebitNormal {
		return p.Debit.Sub(p.Credit)
	}
	return p.Credit.Sub(p.Debit)
}

// BalanceOf aggregates the qualifying postings of one account into its signed
// balance. Pure: deterministic for a given snapshot of postings, no rounding
// beyond decimal precision.
func BalanceOf(postings []domain.Posting, normal domain.NormalBalance, filter DateFilter) decimal.Decimal {
	balance := decimal.Zero
	for _, p := range postings {
		if !filter.Contains(p.EntryDate) {
			continue
		}
		balance = balance.Add(Contribution(p, normal))
	}
	return balance
}

// IsDebitBalance classifies a computed balance into the debit column of a
// trial balance: debit-normal accounts with a non-negative balance, or
// credit-normal accounts driven negative by contra postings.
func IsDebitBalance(normal domain.NormalBalance, balance decimal.Decimal) bool {
	if normal == domain.DebitNormal {
		return !balance.IsNegative()
	}
	return balance.IsNegative()
}
