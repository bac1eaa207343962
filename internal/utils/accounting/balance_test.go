package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

func posting(dated time.Time, debit, credit int64) domain.Posting {
	return domain.Posting{
		EntryDate: dated,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestBalanceOf_DebitNormalIsDebitsMinusCredits(t *testing.T) {
	postings := []domain.Posting{
		posting(at(2026, 1, 5, 9), 100, 0),
		posting(at(2026, 1, 6, 9), 40, 0),
		posting(at(2026, 1, 7, 9), 0, 30),
	}

	balance := accounting.BalanceOf(postings, domain.DebitNormal, accounting.Unbounded())
	assert.True(t, balance.Equal(decimal.NewFromInt(110)), "got %s", balance)
}

func TestBalanceOf_CreditNormalIsCreditsMinusDebits(t *testing.T) {
	postings := []domain.Posting{
		posting(at(2026, 1, 5, 9), 0, 100),
		posting(at(2026, 1, 6, 9), 25, 0),
	}

	balance := accounting.BalanceOf(postings, domain.CreditNormal, accounting.Unbounded())
	assert.True(t, balance.Equal(decimal.NewFromInt(75)), "got %s", balance)
}

func TestBalanceOf_ContraPostingsDriveBalanceNegative(t *testing.T) {
	postings := []domain.Posting{
		posting(at(2026, 1, 5, 9), 80, 0),
	}

	balance := accounting.BalanceOf(postings, domain.CreditNormal, accounting.Unbounded())
	assert.True(t, balance.Equal(decimal.NewFromInt(-80)), "got %s", balance)
}

func TestDateFilter_RangeBoundariesAreInclusiveCalendarDays(t *testing.T) {
	filter := accounting.Between(at(2026, 3, 10, 15), at(2026, 3, 20, 3))

	// On the boundary days, any time of day qualifies.
	assert.True(t, filter.Contains(at(2026, 3, 10, 0)))
	assert.True(t, filter.Contains(at(2026, 3, 10, 23)))
	assert.True(t, filter.Contains(at(2026, 3, 20, 23)))

	// One day outside either end does not.
	assert.False(t, filter.Contains(at(2026, 3, 9, 23)))
	assert.False(t, filter.Contains(at(2026, 3, 21, 0)))
}

func TestDateFilter_AsOfIncludesWholeDay(t *testing.T) {
	filter := accounting.AsOf(at(2026, 6, 15, 8))

	assert.True(t, filter.Contains(at(2026, 6, 15, 23)))
	assert.True(t, filter.Contains(at(2020, 1, 1, 0)))
	assert.False(t, filter.Contains(at(2026, 6, 16, 0)))
}

func TestDateFilter_RangeWithOpenSides(t *testing.T) {
	from := at(2026, 2, 1, 10)
	filter := accounting.Range(&from, nil)

	assert.True(t, filter.Contains(at(2026, 2, 1, 0)))
	assert.True(t, filter.Contains(at(2030, 1, 1, 0)))
	assert.False(t, filter.Contains(at(2026, 1, 31, 23)))

	assert.True(t, accounting.Range(nil, nil).Contains(at(1990, 1, 1, 0)))
}

func TestIsDebitBalance(t *testing.T) {
	assert.True(t, accounting.IsDebitBalance(domain.DebitNormal, decimal.NewFromInt(10)))
	assert.True(t, accounting.IsDebitBalance(domain.DebitNormal, decimal.Zero))
	assert.False(t, accounting.IsDebitBalance(domain.DebitNormal, decimal.NewFromInt(-10)))

	assert.False(t, accounting.IsDebitBalance(domain.CreditNormal, decimal.NewFromInt(10)))
	assert.True(t, accounting.IsDebitBalance(domain.CreditNormal, decimal.NewFromInt(-10)))
}
