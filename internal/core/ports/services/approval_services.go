package services

import (
	"context"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
)

// ApprovalSvcFacade drives the expense approval lifecycle:
// DRAFT → PENDING → {APPROVED | REJECTED}. Approved and rejected are
// terminal. Every transition is a conditional update; a losing concurrent
// actor receives apperrors.ErrInvalidState.
type ApprovalSvcFacade interface {
	// Submit moves a draft expense to PENDING, stamping the submitter and
	// snapshotting whether director approval is required from the org
	// threshold.
	Submit(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)

	// Approve adjudicates a pending expense. Expenses flagged for director
	// approval require the DIRECTOR or ADMIN role; others also allow OFFICER.
	Approve(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)

	// Reject adjudicates a pending expense with a mandatory reason. Same role
	// gate as Approve.
	Reject(ctx context.Context, actor domain.Actor, expenseID string, reason string) (*domain.Expense, error)

	// ListPending returns the pending expenses the actor's role may
	// adjudicate, token-paginated. Officers do not see director-level
	// expenses.
	ListPending(ctx context.Context, actor domain.Actor, limit int, nextToken *string) ([]domain.Expense, *string, error)
}
