package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus indicates where an expense sits in its approval lifecycle.
type ApprovalStatus string

const (
	StatusDraft    ApprovalStatus = "DRAFT"
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// Adjudicated reports whether the status is terminal. No transition leaves an
// adjudicated expense; corrections require a new expense.
func (s ApprovalStatus) Adjudicated() bool {
	return s == StatusApproved || s == StatusRejected
}

// Expense represents a single project expense owned by an organization.
// Every query touching expenses filters by OrganizationID at the repository
// boundary.
type Expense struct {
	ExpenseID      string  `json:"expenseID"`      // Primary key (UUID)
	OrganizationID string  `json:"organizationID"` // Tenant key
	ProjectID      string  `json:"projectID"`
	ActivityID     *string `json:"activityID,omitempty"`
	FundingSource  string  `json:"fundingSource"` // Must exist in the org vocabulary at write time
	CostCenter     string  `json:"costCenter"`    // Must exist in the org vocabulary at write time

	Amount   decimal.Decimal `json:"amount"` // Non-negative
	Currency string          `json:"currency"`

	Vendor        string    `json:"vendor"`
	InvoiceNumber string    `json:"invoiceNumber"`
	ExpenseDate   time.Time `json:"expenseDate"`
	Notes         string    `json:"notes"`

	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	// RequiresDirectorApproval is snapshotted at submission from the org
	// threshold and never recomputed afterwards.
	RequiresDirectorApproval bool       `json:"requiresDirectorApproval"`
	SubmittedBy              *string    `json:"submittedBy,omitempty"`
	SubmittedAt              *time.Time `json:"submittedAt,omitempty"`
	// ApprovedBy/ApprovedAt record the adjudicator for both approvals and
	// rejections; the status distinguishes the outcome.
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"` // Non-empty iff REJECTED

	AuditFields
}
