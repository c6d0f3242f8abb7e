package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/angemarius939/datarw-finance/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxAnalyticsRepository runs the SQL aggregations behind the finance
// metrics. All arithmetic happens in SQL on the numeric amount column; Go
// only carries the results as decimals.
type PgxAnalyticsRepository struct {
	BaseRepository
}

func newPgxAnalyticsRepository(pool *pgxpool.Pool) portsrepo.AnalyticsRepository {
	return &PgxAnalyticsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AnalyticsRepository = (*PgxAnalyticsRepository)(nil)

// buildAnalyticsFilter assembles the WHERE clause shared by the aggregation
// queries. Status predicates are passed separately per metric.
func buildAnalyticsFilter(filter domain.AnalyticsFilter, statuses []models.ApprovalStatus) (string, []interface{}) {
	clauses := []string{"organization_id = $1"}
	args := []interface{}{filter.OrganizationID}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	placeholders := make([]string, len(statuses))
	for i, status := range statuses {
		args = append(args, status)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	clauses = append(clauses, fmt.Sprintf("approval_status IN (%s)", strings.Join(placeholders, ", ")))

	if filter.ProjectID != nil {
		add("project_id = $%d", *filter.ProjectID)
	}
	if filter.FundingSource != nil {
		add("funding_source = $%d", *filter.FundingSource)
	}
	if filter.DateFrom != nil {
		add("expense_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("expense_date <= $%d", *filter.DateTo)
	}

	return strings.Join(clauses, " AND "), args
}

var realizedStatuses = []models.ApprovalStatus{models.Approved}

var committedStatuses = []models.ApprovalStatus{models.Draft, models.Pending, models.Approved}

// GetMonthlySpend sums approved spend per calendar month, ascending. Months
// without expenses are omitted.
func (r *PgxAnalyticsRepository) GetMonthlySpend(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.BurnRatePoint, error) {
	where, args := buildAnalyticsFilter(filter, realizedStatuses)

	query := fmt.Sprintf(`
		SELECT to_char(expense_date, 'YYYY-MM') AS period, SUM(amount) AS spent
		FROM expenses
		WHERE %s
		GROUP BY period
		ORDER BY period;
	`, where)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly spend: %w", err)
	}
	defer rows.Close()

	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BurnRatePoint, error) {
		var p domain.BurnRatePoint
		err := row.Scan(&p.Period, &p.Spent)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly spend: %w", err)
	}
	return points, nil
}

// GetCommittedSpendByProject sums draft+pending+approved spend per project.
func (r *PgxAnalyticsRepository) GetCommittedSpendByProject(ctx context.Context, filter domain.AnalyticsFilter) (map[string]decimal.Decimal, error) {
	where, args := buildAnalyticsFilter(filter, committedStatuses)

	query := fmt.Sprintf(`
		SELECT project_id, SUM(amount) AS committed
		FROM expenses
		WHERE %s
		GROUP BY project_id;
	`, where)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query committed spend: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var projectID string
		var committed decimal.Decimal
		if err := rows.Scan(&projectID, &committed); err != nil {
			return nil, fmt.Errorf("failed to scan committed spend: %w", err)
		}
		result[projectID] = committed
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read committed spend: %w", err)
	}
	return result, nil
}

// GetTotalSpend sums approved spend over the filtered set.
func (r *PgxAnalyticsRepository) GetTotalSpend(ctx context.Context, filter domain.AnalyticsFilter) (decimal.Decimal, error) {
	where, args := buildAnalyticsFilter(filter, realizedStatuses)

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE %s;
	`, where)

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to query total spend: %w", err)
	}
	return total, nil
}

// GetSpendByFundingSource sums approved spend per funding source, descending
// by spend.
func (r *PgxAnalyticsRepository) GetSpendByFundingSource(ctx context.Context, filter domain.AnalyticsFilter) ([]domain.FundingUtilization, error) {
	where, args := buildAnalyticsFilter(filter, realizedStatuses)

	query := fmt.Sprintf(`
		SELECT funding_source, SUM(amount) AS spent
		FROM expenses
		WHERE %s
		GROUP BY funding_source
		ORDER BY spent DESC;
	`, where)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query spend by funding source: %w", err)
	}
	defer rows.Close()

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FundingUtilization, error) {
		var u domain.FundingUtilization
		err := row.Scan(&u.FundingSource, &u.Spent)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan spend by funding source: %w", err)
	}
	return result, nil
}
