package repositories

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
)

// ProjectReader exposes the read-only project/budget data owned by the
// project-management subsystem. This core never writes through it.
type ProjectReader interface {
	// FindProjectByID retrieves a project scoped to an organization.
	FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.Project, error)

	// ListProjects retrieves all projects for an organization.
	ListProjects(ctx context.Context, organizationID string) ([]domain.Project, error)

	// ListBudgetItems retrieves the budget lines of a project.
	ListBudgetItems(ctx context.Context, projectID string) ([]domain.BudgetItem, error)
}
