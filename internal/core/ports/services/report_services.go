package services

import (
	"context"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// ReportSvcFacade builds the structured report documents that the serializers
// render.
type ReportSvcFacade interface {
	// BalanceSheet builds the balance sheet as of the end of the given day.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time) (*domain.Report, error)

	// ProfitAndLoss builds the profit and loss statement over the inclusive
	// calendar-day range.
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time) (*domain.Report, error)

	// TrialBalance builds the trial balance as of the end of the given day.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time) (*domain.Report, error)
}
