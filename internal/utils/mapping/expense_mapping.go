package mapping

import (
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/angemarius939/datarw-finance/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:                d.ExpenseID,
		OrganizationID:           d.OrganizationID,
		ProjectID:                d.ProjectID,
		ActivityID:               d.ActivityID,
		FundingSource:            d.FundingSource,
		CostCenter:               d.CostCenter,
		Amount:                   d.Amount,
		Currency:                 d.Currency,
		Vendor:                   d.Vendor,
		InvoiceNumber:            d.InvoiceNumber,
		ExpenseDate:              d.ExpenseDate,
		Notes:                    d.Notes,
		ApprovalStatus:           models.ApprovalStatus(d.ApprovalStatus),
		RequiresDirectorApproval: d.RequiresDirectorApproval,
		SubmittedBy:              d.SubmittedBy,
		SubmittedAt:              d.SubmittedAt,
		ApprovedBy:               d.ApprovedBy,
		ApprovedAt:               d.ApprovedAt,
		RejectionReason:          d.RejectionReason,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:                m.ExpenseID,
		OrganizationID:           m.OrganizationID,
		ProjectID:                m.ProjectID,
		ActivityID:               m.ActivityID,
		FundingSource:            m.FundingSource,
		CostCenter:               m.CostCenter,
		Amount:                   m.Amount,
		Currency:                 m.Currency,
		Vendor:                   m.Vendor,
		InvoiceNumber:            m.InvoiceNumber,
		ExpenseDate:              m.ExpenseDate,
		Notes:                    m.Notes,
		ApprovalStatus:           domain.ApprovalStatus(m.ApprovalStatus),
		RequiresDirectorApproval: m.RequiresDirectorApproval,
		SubmittedBy:              m.SubmittedBy,
		SubmittedAt:              m.SubmittedAt,
		ApprovedBy:               m.ApprovedBy,
		ApprovedAt:               m.ApprovedAt,
		RejectionReason:          m.RejectionReason,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to a slice of domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
