package repositories

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsRepository runs the aggregation queries behind the finance
// metrics. Realized-spend queries (burn rate, totals, funding breakdown)
// count APPROVED expenses; committed-spend queries (variance) additionally
// count DRAFT and PENDING so commitments surface early. Rejected expenses are
// never counted.
type AnalyticsRepository interface {
	// GetMonthlySpend sums approved spend per calendar month, ascending.
	// Months without expenses are omitted.
	GetMonthlySpend(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.BurnRatePoint, error)

	// GetCommittedSpendByProject sums draft+pending+approved spend per
	// project for the variance report.
	GetCommittedSpendByProject(ctx context.Context, filter domain.AnalyticsFilter) (map[string]decimal.Decimal, error)

	// GetTotalSpend sums approved spend over the filtered set.
	GetTotalSpend(ctx context.Context, filter domain.AnalyticsFilter) (decimal.Decimal, error)

	// GetSpendByFundingSource sums approved spend per funding source,
	// descending by spend.
	GetSpendByFundingSource(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.FundingUtilization, error)
}
