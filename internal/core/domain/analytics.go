package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsFilter narrows the expense set a metric operates on. The
// organization is mandatory; the other dimensions are optional and may be
// combined freely.
type AnalyticsFilter struct {
	OrganizationID string
	ProjectID      *string
	FundingSource  *string
	DateFrom       *time.Time // Inclusive
	DateTo         *time.Time // Inclusive
}

// BurnRatePoint is one calendar month of spend. Months without expenses are
// omitted from the series, not zero-filled.
type BurnRatePoint struct {
	Period string          `json:"period"` // "2006-01" format
	Spent  decimal.Decimal `json:"spent"`
}

// ProjectVariance compares planned budget against actual spend for one
// project. Actual includes draft and pending expenses so commitments surface
// before approval; rejected expenses are excluded.
type ProjectVariance struct {
	ProjectID      string          `json:"projectID"`
	ProjectName    string          `json:"projectName"`
	Planned        decimal.Decimal `json:"planned"`
	Allocated      decimal.Decimal `json:"allocated"`
	Actual         decimal.Decimal `json:"actual"`
	VarianceAmount decimal.Decimal `json:"varianceAmount"`
	VariancePct    decimal.Decimal `json:"variancePct"` // Zero when Planned is zero
}

// SpendForecast projects future spend from the average monthly run rate.
type SpendForecast struct {
	TotalSpendToDate decimal.Decimal `json:"totalSpendToDate"`
	MonthsElapsed    int             `json:"monthsElapsed"` // Clamped to >= 1
	AvgMonthlySpend  decimal.Decimal `json:"avgMonthlySpend"`
	MonthsRemaining  int             `json:"monthsRemaining"`
	ProjectedSpend   decimal.Decimal `json:"projectedSpend"`
}

// FundingUtilization is spend grouped by funding source, with utilization
// percentage when the organization configured an allocation ceiling.
type FundingUtilization struct {
	FundingSource string           `json:"fundingSource"`
	Spent         decimal.Decimal  `json:"spent"`
	Allocated     *decimal.Decimal `json:"allocated,omitempty"`
	Pct           *decimal.Decimal `json:"pct,omitempty"`
}
