package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus mirrors domain.ApprovalStatus at the database layer.
type ApprovalStatus string

const (
	Draft    ApprovalStatus = "DRAFT"
	Pending  ApprovalStatus = "PENDING"
	Approved ApprovalStatus = "APPROVED"
	Rejected ApprovalStatus = "REJECTED"
)

// Expense is the database representation of an expense record.
type Expense struct {
	ExpenseID      string  `db:"expense_id"`
	OrganizationID string  `db:"organization_id"`
	ProjectID      string  `db:"project_id"`
	ActivityID     *string `db:"activity_id"` // Nullable
	FundingSource  string  `db:"funding_source"`
	CostCenter     string  `db:"cost_center"`

	Amount   decimal.Decimal `db:"amount"`
	Currency string          `db:"currency"`

	Vendor        string    `db:"vendor"`
	InvoiceNumber string    `db:"invoice_number"`
	ExpenseDate   time.Time `db:"expense_date"`
	Notes         string    `db:"notes"`

	ApprovalStatus           ApprovalStatus `db:"approval_status"`
	RequiresDirectorApproval bool           `db:"requires_director_approval"`
	SubmittedBy              *string        `db:"submitted_by"`
	SubmittedAt              *time.Time     `db:"submitted_at"`
	ApprovedBy               *string        `db:"approved_by"`
	ApprovedAt               *time.Time     `db:"approved_at"`
	RejectionReason          *string        `db:"rejection_reason"`

	AuditFields
}
