package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project mirrors the project rows owned by the project-management subsystem.
// This core reads them only.
type Project struct {
	ProjectID      string          `db:"project_id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"name"`
	TotalBudget    decimal.Decimal `db:"total_budget"`
	StartDate      time.Time       `db:"start_date"`
	EndDate        time.Time       `db:"end_date"`
}

// BudgetItem mirrors budget line rows. Read-only here.
type BudgetItem struct {
	BudgetItemID    string          `db:"budget_item_id"`
	ProjectID       string          `db:"project_id"`
	Name            string          `db:"name"`
	BudgetedAmount  decimal.Decimal `db:"budgeted_amount"`
	AllocatedAmount decimal.Decimal `db:"allocated_amount"`
}
