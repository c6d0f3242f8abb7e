package dto

import (
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsQuery carries the shared filter dimensions of the analytics
// endpoints from the query string. Dates are YYYY-MM-DD and inclusive.
type AnalyticsQuery struct {
	ProjectID     *string `form:"project_id"`
	FundingSource *string `form:"funding_source"`
	DateFrom      *string `form:"date_from"`
	DateTo        *string `form:"date_to"`
}

// BurnRateResponse is the ordered monthly spend series.
type BurnRateResponse struct {
	Period string                 `json:"period"` // Grouping granularity; "monthly" only
	Series []domain.BurnRatePoint `json:"series"`
}

// VarianceResponse is the per-project budget-vs-actual report. Actual figures
// include draft and pending spend (commitments), not just approved spend.
type VarianceResponse struct {
	ByProject []ProjectVarianceResponse `json:"byProject"`
}

// ProjectVarianceResponse is one project's variance row.
type ProjectVarianceResponse struct {
	ProjectID      string          `json:"projectID"`
	ProjectName    string          `json:"projectName"`
	Planned        decimal.Decimal `json:"planned"`
	Allocated      decimal.Decimal `json:"allocated"`
	Actual         decimal.Decimal `json:"actual"`
	VarianceAmount decimal.Decimal `json:"varianceAmount"`
	VariancePct    decimal.Decimal `json:"variancePct"`
}

// ForecastResponse projects spend from the average monthly run rate.
type ForecastResponse struct {
	TotalSpendToDate decimal.Decimal `json:"totalSpendToDate"`
	MonthsElapsed    int             `json:"monthsElapsed"`
	AvgMonthlySpend  decimal.Decimal `json:"avgMonthlySpend"`
	MonthsRemaining  int             `json:"monthsRemaining"`
	ProjectedSpend   decimal.Decimal `json:"projectedSpend"`
}

// FundingUtilizationResponse groups spend by funding source, descending.
type FundingUtilizationResponse struct {
	ByFundingSource []domain.FundingUtilization `json:"byFundingSource"`
}

// ToVarianceResponse converts domain variances to the API representation.
func ToVarianceResponse(vs []domain.ProjectVariance) VarianceResponse {
	rows := make([]ProjectVarianceResponse, len(vs))
	for i, v := range vs {
		rows[i] = ProjectVarianceResponse{
			ProjectID:      v.ProjectID,
			ProjectName:    v.ProjectName,
			Planned:        v.Planned,
			Allocated:      v.Allocated,
			Actual:         v.Actual,
			VarianceAmount: v.VarianceAmount,
			VariancePct:    v.VariancePct,
		}
	}
	return VarianceResponse{ByProject: rows}
}

// ToForecastResponse converts a domain forecast to the API representation.
func ToForecastResponse(f domain.SpendForecast) ForecastResponse {
	return ForecastResponse{
		TotalSpendToDate: f.TotalSpendToDate,
		MonthsElapsed:    f.MonthsElapsed,
		AvgMonthlySpend:  f.AvgMonthlySpend,
		MonthsRemaining:  f.MonthsRemaining,
		ProjectedSpend:   f.ProjectedSpend,
	}
}
