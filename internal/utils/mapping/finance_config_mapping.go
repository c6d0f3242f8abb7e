package mapping

import (
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/angemarius939/datarw-finance/internal/models"
)

// ToModelOrgFinanceConfig converts a domain OrgFinanceConfig to its model form
func ToModelOrgFinanceConfig(d domain.OrgFinanceConfig) models.OrgFinanceConfig {
	return models.OrgFinanceConfig{
		OrganizationID:     d.OrganizationID,
		FundingSources:     d.FundingSources,
		CostCenters:        d.CostCenters,
		FundingAllocations: d.FundingAllocations,
		DirectorThreshold:  d.DirectorThreshold,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrgFinanceConfig converts a model OrgFinanceConfig to its domain form
func ToDomainOrgFinanceConfig(m models.OrgFinanceConfig) domain.OrgFinanceConfig {
	return domain.OrgFinanceConfig{
		OrganizationID:     m.OrganizationID,
		FundingSources:     m.FundingSources,
		CostCenters:        m.CostCenters,
		FundingAllocations: m.FundingAllocations,
		DirectorThreshold:  m.DirectorThreshold,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProject converts a model Project to its domain form
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:      m.ProjectID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		TotalBudget:    m.TotalBudget,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
	}
}

// ToDomainBudgetItemSlice converts model BudgetItems to their domain form
func ToDomainBudgetItemSlice(ms []models.BudgetItem) []domain.BudgetItem {
	ds := make([]domain.BudgetItem, len(ms))
	for i, m := range ms {
		ds[i] = domain.BudgetItem{
			BudgetItemID:    m.BudgetItemID,
			ProjectID:       m.ProjectID,
			Name:            m.Name,
			BudgetedAmount:  m.BudgetedAmount,
			AllocatedAmount: m.AllocatedAmount,
		}
	}
	return ds
}
