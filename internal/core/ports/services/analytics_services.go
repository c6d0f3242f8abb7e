package services

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
)

// AnalyticsSvcFacade computes the finance metrics. Every metric treats an
// empty expense set as a well-formed empty answer, never an error. The
// organization in the filter is always overwritten with the actor's.
type AnalyticsSvcFacade interface {
	// BurnRate returns the monthly spend series, ascending by period.
	BurnRate(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) ([]domain.BurnRatePoint, error)

	// Variance returns budget-vs-actual per project; actual includes
	// draft+pending+approved spend.
	Variance(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) ([]domain.ProjectVariance, error)

	// Forecast projects spend from the average monthly run rate, org-wide or
	// for one project when the filter is project-scoped.
	Forecast(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) (*domain.SpendForecast, error)

	// FundingUtilization groups spend by funding source, descending by spend.
	FundingUtilization(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) ([]domain.FundingUtilization, error)
}
