package services

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/angemarius939/datarw-finance/internal/dto"
)

// ExpenseReaderSvc defines read operations over expenses
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense within the actor's organization.
	GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a filtered, paginated expense list and the total
	// row count for the filter.
	ListExpenses(ctx context.Context, actor domain.Actor, filter portsrepo.ExpenseFilter) ([]domain.Expense, int64, error)
}

// ExpenseWriterSvc defines create/update/delete operations over expenses
type ExpenseWriterSvc interface {
	// CreateExpense creates a new draft expense.
	CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error)

	// UpdateExpense applies a typed patch. Drafts accept every mutable field;
	// pending expenses accept provenance fields only; adjudicated expenses
	// accept nothing.
	UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)

	// DeleteExpense removes a draft or pending expense.
	DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error
}

// ExpenseSvcFacade combines all expense service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
