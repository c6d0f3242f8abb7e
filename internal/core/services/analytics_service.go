package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// analyticsService computes burn rate, variance, forecast and funding
// utilization. The repositories do the SQL aggregation; this service scopes
// filters to the actor's organization and assembles the figures.
type analyticsService struct {
	BaseService
	analyticsRepo portsrepo.AnalyticsRepository
	projectRepo   portsrepo.ProjectReader
	configSvc     portssvc.ConfigSvcFacade
	now           func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(analyticsRepo portsrepo.AnalyticsRepository, projectRepo portsrepo.ProjectReader, configSvc portssvc.ConfigSvcFacade) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		projectRepo:   projectRepo,
		configSvc:     configSvc,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Ensure analyticsService implements the portssvc.AnalyticsSvcFacade interface
var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// scope pins the filter to the actor's organization regardless of what the
// caller put in it.
func scope(actor domain.Actor, filter domain.AnalyticsFilter) domain.AnalyticsFilter {
	filter.OrganizationID = actor.OrganizationID
	return filter
}

// BurnRate returns the monthly spend series, ascending by period. Months
// without expenses are omitted, not zero-filled.
func (s *analyticsService) BurnRate(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) ([]domain.BurnRatePoint, error) {
	points, err := s.analyticsRepo.GetMonthlySpend(ctx, scope(actor, filter))
	if err != nil {
		s.LogError(ctx, err, "Failed to compute burn rate")
		return nil, err
	}
	return points, nil
}

// Variance returns budget-vs-actual per project. Actual includes draft and
// pending spend so commitments surface before approval.
func (s *analyticsService) Variance(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) ([]domain.ProjectVariance, error) {
	filter = scope(actor, filter)

	var projects []domain.Project
	if filter.ProjectID != nil {
		project, err := s.projectRepo.FindProjectByID(ctx, actor.OrganizationID, *filter.ProjectID)
		if err != nil {
			return nil, err
		}
		projects = []domain.Project{*project}
	} else {
		var err error
		projects, err = s.projectRepo.ListProjects(ctx, actor.OrganizationID)
		if err != nil {
			return nil, err
		}
	}

	actualByProject, err := s.analyticsRepo.GetCommittedSpendByProject(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate committed spend")
		return nil, err
	}

	result := make([]domain.ProjectVariance, 0, len(projects))
	for _, project := range projects {
		items, err := s.projectRepo.ListBudgetItems(ctx, project.ProjectID)
		if err != nil {
			return nil, err
		}

		allocated := decimal.Zero
		budgeted := decimal.Zero
		for _, item := range items {
			allocated = allocated.Add(item.AllocatedAmount)
			budgeted = budgeted.Add(item.BudgetedAmount)
		}

		// Project-scoped reads plan from the budget lines when any exist;
		// otherwise the project's headline budget is the plan.
		planned := project.TotalBudget
		if filter.ProjectID != nil && len(items) > 0 {
			planned = budgeted
		}

		actual := actualByProject[project.ProjectID]
		varianceAmount := actual.Sub(planned)
		variancePct := decimal.Zero
		if !planned.IsZero() {
			variancePct = varianceAmount.Div(planned).Mul(hundred)
		}

		result = append(result, domain.ProjectVariance{
			ProjectID:      project.ProjectID,
			ProjectName:    project.Name,
			Planned:        planned,
			Allocated:      allocated,
			Actual:         actual,
			VarianceAmount: varianceAmount,
			VariancePct:    variancePct,
		})
	}

	return result, nil
}

// Forecast projects spend from the average monthly run rate. Project-scoped
// forecasts use the project schedule; organization-wide forecasts use the
// calendar year.
func (s *analyticsService) Forecast(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) (*domain.SpendForecast, error) {
	filter = scope(actor, filter)
	now := s.now()

	monthsElapsed := 1
	monthsRemaining := 0
	if filter.ProjectID != nil {
		project, err := s.projectRepo.FindProjectByID(ctx, actor.OrganizationID, *filter.ProjectID)
		if err != nil {
			return nil, err
		}
		monthsElapsed = monthsBetween(project.StartDate, now)
		monthsRemaining = project.DurationMonths() - monthsElapsed
	} else {
		yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		monthsElapsed = monthsBetween(yearStart, now)
		monthsRemaining = 12 - monthsElapsed
	}
	if monthsElapsed < 1 {
		monthsElapsed = 1
	}
	if monthsRemaining < 0 {
		monthsRemaining = 0
	}

	total, err := s.analyticsRepo.GetTotalSpend(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate total spend")
		return nil, err
	}

	avgMonthly := total.Div(decimal.NewFromInt(int64(monthsElapsed)))
	projected := avgMonthly.Mul(decimal.NewFromInt(int64(monthsRemaining)))

	s.LogDebug(ctx, "Forecast computed",
		slog.Int("months_elapsed", monthsElapsed),
		slog.Int("months_remaining", monthsRemaining))

	return &domain.SpendForecast{
		TotalSpendToDate: total,
		MonthsElapsed:    monthsElapsed,
		AvgMonthlySpend:  avgMonthly,
		MonthsRemaining:  monthsRemaining,
		ProjectedSpend:   projected,
	}, nil
}

// FundingUtilization groups spend by funding source, descending by spend,
// annotated with the configured allocation ceiling when one exists.
func (s *analyticsService) FundingUtilization(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter) ([]domain.FundingUtilization, error) {
	rows, err := s.analyticsRepo.GetSpendByFundingSource(ctx, scope(actor, filter))
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate spend by funding source")
		return nil, err
	}

	cfg, err := s.configSvc.GetConfig(ctx, actor)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		ceiling, ok := cfg.FundingAllocations[rows[i].FundingSource]
		if !ok {
			continue
		}
		allocated := ceiling
		rows[i].Allocated = &allocated
		if !ceiling.IsZero() {
			pct := rows[i].Spent.Div(ceiling).Mul(hundred)
			rows[i].Pct = &pct
		}
	}

	// The repository orders by spend already; keep the order stable after
	// annotation.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Spent.GreaterThan(rows[j].Spent)
	})

	return rows, nil
}

// monthsBetween counts calendar months from start to now inclusive of the
// current partial month. A start in the future counts as zero.
func monthsBetween(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	return int(now.Year()-start.Year())*12 + int(now.Month()-start.Month()) + 1
}
