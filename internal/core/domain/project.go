package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project carries the budget and schedule data the analytics engine needs.
// Projects are owned by another subsystem; this core reads them only.
type Project struct {
	ProjectID      string          `json:"projectID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	TotalBudget    decimal.Decimal `json:"totalBudget"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
}

// BudgetItem is a planned budget line within a project. Read-only here.
type BudgetItem struct {
	BudgetItemID    string          `json:"budgetItemID"`
	ProjectID       string          `json:"projectID"`
	Name            string          `json:"name"`
	BudgetedAmount  decimal.Decimal `json:"budgetedAmount"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
}

// DurationMonths returns the whole number of calendar months between the
// project start and end dates, with partial months counting as one.
func (p Project) DurationMonths() int {
	if p.EndDate.Before(p.StartDate) {
		return 0
	}
	months := int(p.EndDate.Year()-p.StartDate.Year())*12 + int(p.EndDate.Month()-p.StartDate.Month())
	if p.EndDate.Day() > p.StartDate.Day() || months == 0 {
		months++
	}
	return months
}
