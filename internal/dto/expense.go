package dto

import (
	"time"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the payload for creating a draft expense.
type CreateExpenseRequest struct {
	ProjectID     string          `json:"projectID" binding:"required"`
	ActivityID    *string         `json:"activityID"`
	FundingSource string          `json:"fundingSource" binding:"required"`
	CostCenter    string          `json:"costCenter" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"required,len=3"`
	Vendor        string          `json:"vendor"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ExpenseDate   time.Time       `json:"expenseDate" binding:"required"` // RFC3339
	Notes         string          `json:"notes"`
}

// UpdateExpenseRequest is a typed patch listing every mutable expense field.
// Nil fields are left untouched. Which fields may change depends on the
// approval status: drafts accept everything, pending expenses accept
// provenance fields only, adjudicated expenses accept nothing.
type UpdateExpenseRequest struct {
	ProjectID     *string          `json:"projectID"`
	ActivityID    *string          `json:"activityID"`
	FundingSource *string          `json:"fundingSource"`
	CostCenter    *string          `json:"costCenter"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency" binding:"omitempty,len=3"`
	Vendor        *string          `json:"vendor"`
	InvoiceNumber *string          `json:"invoiceNumber"`
	ExpenseDate   *time.Time       `json:"expenseDate"` // RFC3339
	Notes         *string          `json:"notes"`
}

// HasClassificationOrAmountChange reports whether the patch touches fields
// that are frozen once an expense leaves DRAFT.
func (r UpdateExpenseRequest) HasClassificationOrAmountChange() bool {
	return r.ProjectID != nil || r.ActivityID != nil || r.FundingSource != nil ||
		r.CostCenter != nil || r.Amount != nil || r.Currency != nil
}

// ListExpensesRequest carries the expense listing filters from the query string.
type ListExpensesRequest struct {
	ProjectID     *string `form:"project_id"`
	ActivityID    *string `form:"activity_id"`
	FundingSource *string `form:"funding_source"`
	Vendor        *string `form:"vendor"`
	DateFrom      *string `form:"date_from"` // YYYY-MM-DD, inclusive
	DateTo        *string `form:"date_to"`   // YYYY-MM-DD, inclusive
	Page          int     `form:"page,default=1"`
	PageSize      int     `form:"page_size,default=20"`
}

// RejectExpenseRequest carries the mandatory rejection reason.
type RejectExpenseRequest struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

// ExpenseResponse is the API representation of an expense.
type ExpenseResponse struct {
	ExpenseID                string           `json:"expenseID"`
	ProjectID                string           `json:"projectID"`
	ActivityID               *string          `json:"activityID,omitempty"`
	FundingSource            string           `json:"fundingSource"`
	CostCenter               string           `json:"costCenter"`
	Amount                   decimal.Decimal  `json:"amount"`
	Currency                 string           `json:"currency"`
	Vendor                   string           `json:"vendor"`
	InvoiceNumber            string           `json:"invoiceNumber"`
	ExpenseDate              string           `json:"expenseDate"`
	Notes                    string           `json:"notes"`
	ApprovalStatus           string           `json:"approvalStatus"`
	RequiresDirectorApproval bool             `json:"requiresDirectorApproval"`
	SubmittedBy              *string          `json:"submittedBy,omitempty"`
	SubmittedAt              *time.Time       `json:"submittedAt,omitempty"`
	ApprovedBy               *string          `json:"approvedBy,omitempty"`
	ApprovedAt               *time.Time       `json:"approvedAt,omitempty"`
	RejectionReason          *string          `json:"rejectionReason,omitempty"`
	CreatedAt                time.Time        `json:"createdAt"`
	CreatedBy                string           `json:"createdBy"`
}

// ListExpensesResponse pages expenses with the total row count for the filter.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// PendingApprovalsResponse is the role-filtered adjudication queue.
type PendingApprovalsResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpenseResponse converts a domain Expense to its API representation.
func ToExpenseResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:                e.ExpenseID,
		ProjectID:                e.ProjectID,
		ActivityID:               e.ActivityID,
		FundingSource:            e.FundingSource,
		CostCenter:               e.CostCenter,
		Amount:                   e.Amount,
		Currency:                 e.Currency,
		Vendor:                   e.Vendor,
		InvoiceNumber:            e.InvoiceNumber,
		ExpenseDate:              e.ExpenseDate.Format("2006-01-02"),
		Notes:                    e.Notes,
		ApprovalStatus:           string(e.ApprovalStatus),
		RequiresDirectorApproval: e.RequiresDirectorApproval,
		SubmittedBy:              e.SubmittedBy,
		SubmittedAt:              e.SubmittedAt,
		ApprovedBy:               e.ApprovedBy,
		ApprovedAt:               e.ApprovedAt,
		RejectionReason:          e.RejectionReason,
		CreatedAt:                e.CreatedAt,
		CreatedBy:                e.CreatedBy,
	}
}

// ToExpenseResponseSlice converts a slice of domain Expenses.
func ToExpenseResponseSlice(es []domain.Expense) []ExpenseResponse {
	rs := make([]ExpenseResponse, len(es))
	for i, e := range es {
		rs[i] = ToExpenseResponse(e)
	}
	return rs
}
