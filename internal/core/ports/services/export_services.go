package services

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/angemarius939/datarw-finance/internal/dto"
)

// ExportSvcFacade renders reports to downloadable formats. Figures come from
// the same repository and analytics calls as the JSON endpoints, so exported
// numbers can never drift from the API's.
type ExportSvcFacade interface {
	// ExportExpenses renders the filtered expense list with columns
	// [date, project_id, vendor, amount, currency, funding_source,
	// cost_center, invoice_no, notes].
	ExportExpenses(ctx context.Context, actor domain.Actor, filter portsrepo.ExpenseFilter, format dto.ExportFormat) (*dto.ExportResult, error)

	// ExportVariance renders the variance report with columns
	// [project_id, planned, allocated, actual, variance_amount, variance_pct].
	ExportVariance(ctx context.Context, actor domain.Actor, filter domain.AnalyticsFilter, format dto.ExportFormat) (*dto.ExportResult, error)
}
