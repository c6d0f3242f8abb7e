package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/angemarius939/datarw-finance/internal/models"
	"github.com/angemarius939/datarw-finance/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProjectRepository reads the project and budget tables owned by the
// project-management subsystem. No write methods on purpose.
type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectReader {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProjectReader = (*PgxProjectRepository)(nil)

// FindProjectByID retrieves a project scoped to an organization.
func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.Project, error) {
	query := `
		SELECT project_id, organization_id, name, total_budget, start_date, end_date
		FROM projects
		WHERE organization_id = $1 AND project_id = $2;
	`
	var m models.Project
	err := r.Pool.QueryRow(ctx, query, organizationID, projectID).Scan(
		&m.ProjectID,
		&m.OrganizationID,
		&m.Name,
		&m.TotalBudget,
		&m.StartDate,
		&m.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("project %s not found", projectID))
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}

	d := mapping.ToDomainProject(m)
	return &d, nil
}

// ListProjects retrieves all projects for an organization.
func (r *PgxProjectRepository) ListProjects(ctx context.Context, organizationID string) ([]domain.Project, error) {
	query := `
		SELECT project_id, organization_id, name, total_budget, start_date, end_date
		FROM projects
		WHERE organization_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	modelProjects, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Project, error) {
		var m models.Project
		err := row.Scan(
			&m.ProjectID,
			&m.OrganizationID,
			&m.Name,
			&m.TotalBudget,
			&m.StartDate,
			&m.EndDate,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}

	ds := make([]domain.Project, len(modelProjects))
	for i, m := range modelProjects {
		ds[i] = mapping.ToDomainProject(m)
	}
	return ds, nil
}

// ListBudgetItems retrieves the budget lines of a project.
func (r *PgxProjectRepository) ListBudgetItems(ctx context.Context, projectID string) ([]domain.BudgetItem, error) {
	query := `
		SELECT budget_item_id, project_id, name, budgeted_amount, allocated_amount
		FROM budget_items
		WHERE project_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget items: %w", err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BudgetItem, error) {
		var m models.BudgetItem
		err := row.Scan(
			&m.BudgetItemID,
			&m.ProjectID,
			&m.Name,
			&m.BudgetedAmount,
			&m.AllocatedAmount,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan budget items: %w", err)
	}

	return mapping.ToDomainBudgetItemSlice(modelItems), nil
}
