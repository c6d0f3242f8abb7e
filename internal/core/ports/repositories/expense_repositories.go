package repositories

import (
	"context"
	"time"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
)

// ExpenseFilter narrows and pages an expense listing. All fields are optional;
// the organization id is passed separately because it is mandatory.
type ExpenseFilter struct {
	ProjectID      *string
	ActivityID     *string
	FundingSource  *string
	VendorContains *string // Case-insensitive substring match
	DateFrom       *time.Time
	DateTo         *time.Time
	Page           int
	PageSize       int
}

// ExpenseTransition describes a conditional status update. The repository
// applies it as a single "UPDATE ... WHERE status = FromStatus" statement so
// concurrent transitions cannot both win.
type ExpenseTransition struct {
	FromStatus domain.ApprovalStatus
	ToStatus   domain.ApprovalStatus

	// Set on submit only.
	RequiresDirectorApproval *bool
	SubmittedBy              *string
	SubmittedAt              *time.Time

	// Set on approve and reject (the adjudicator).
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	UpdatedBy string
	UpdatedAt time.Time
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense scoped to an organization.
	FindExpenseByID(ctx context.Context, organizationID, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a filtered, offset-paginated expense list plus
	// the total row count for the filter.
	ListExpenses(ctx context.Context, organizationID string, filter ExpenseFilter) ([]domain.Expense, int64, error)

	// ListPendingExpenses retrieves pending expenses using token-based
	// pagination. When includeDirectorLevel is false, expenses flagged for
	// director approval are filtered out (the officer queue).
	ListPendingExpenses(ctx context.Context, organizationID string, includeDirectorLevel bool, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense inserts a new expense row.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense rewrites the mutable columns of an expense row. The write
	// is conditional on expectedStatus, the status the caller validated the
	// mutability rules against; if a concurrent transition moved the expense
	// first, no row matches and apperrors.ErrInvalidState is returned.
	UpdateExpense(ctx context.Context, expense domain.Expense, expectedStatus domain.ApprovalStatus) error

	// ApplyTransition performs the conditional status update. It returns
	// apperrors.ErrNotFound when the expense does not exist in the
	// organization, and apperrors.ErrInvalidState when it exists but is no
	// longer in the expected status (a concurrent actor won the race).
	ApplyTransition(ctx context.Context, organizationID, expenseID string, transition ExpenseTransition) error

	// DeleteExpense removes an expense that is still in DRAFT or PENDING.
	// Adjudicated expenses are immutable history; deleting one returns
	// apperrors.ErrInvalidState.
	DeleteExpense(ctx context.Context, organizationID, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
