package services

import (
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Config comes first since the expense, approval and analytics services
	// all read the org vocabulary and threshold through it.
	container.Config = NewConfigService(repos.ConfigRepo)

	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.ProjectRepo, container.Config)
	container.Approval = NewApprovalService(repos.ExpenseRepo, container.Config)
	container.Analytics = NewAnalyticsService(repos.AnalyticsRepo, repos.ProjectRepo, container.Config)

	// Export reads through the expense and analytics services so report
	// figures match the JSON endpoints.
	container.Export = NewExportService(container.Expense, container.Analytics)

	return container
}
