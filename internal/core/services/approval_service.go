package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
)

// approvalService enforces the expense approval lifecycle:
// DRAFT → PENDING → {APPROVED | REJECTED}, with role and threshold gating.
type approvalService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	configSvc   portssvc.ConfigSvcFacade
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(expenseRepo portsrepo.ExpenseRepositoryFacade, configSvc portssvc.ConfigSvcFacade) portssvc.ApprovalSvcFacade {
	return &approvalService{
		expenseRepo: expenseRepo,
		configSvc:   configSvc,
	}
}

// Ensure approvalService implements the portssvc.ApprovalSvcFacade interface
var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// canAdjudicate applies the role gate. Director-flagged expenses need a
// director or admin; everything else also allows officers.
func canAdjudicate(role domain.Role, requiresDirector bool) bool {
	switch role {
	case domain.RoleAdmin, domain.RoleDirector:
		return true
	case domain.RoleOfficer:
		return !requiresDirector
	}
	return false
}

// Submit moves a draft expense to PENDING. The director-approval flag is
// computed here from the org threshold and never recomputed afterwards.
func (s *approvalService) Submit(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, actor.OrganizationID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ApprovalStatus != domain.StatusDraft {
		return nil, fmt.Errorf("%w: cannot submit expense in status %s", apperrors.ErrInvalidState, expense.ApprovalStatus)
	}

	cfg, err := s.configSvc.GetConfig(ctx, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	requiresDirector := expense.Amount.GreaterThan(cfg.DirectorThreshold)

	transition := portsrepo.ExpenseTransition{
		FromStatus:               domain.StatusDraft,
		ToStatus:                 domain.StatusPending,
		RequiresDirectorApproval: &requiresDirector,
		SubmittedBy:              &actor.UserID,
		SubmittedAt:              &now,
		UpdatedBy:                actor.UserID,
		UpdatedAt:                now,
	}

	if err := s.expenseRepo.ApplyTransition(ctx, actor.OrganizationID, expenseID, transition); err != nil {
		return nil, err
	}

	expense.ApprovalStatus = domain.StatusPending
	expense.RequiresDirectorApproval = requiresDirector
	expense.SubmittedBy = &actor.UserID
	expense.SubmittedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Expense submitted for approval",
		slog.String("expense_id", expenseID),
		slog.Bool("requires_director_approval", requiresDirector))
	return expense, nil
}

// Approve adjudicates a pending expense. A losing concurrent adjudicator
// receives ErrInvalidState from the conditional update.
func (s *approvalService) Approve(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, actor.OrganizationID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ApprovalStatus != domain.StatusPending {
		return nil, fmt.Errorf("%w: cannot approve expense in status %s", apperrors.ErrInvalidState, expense.ApprovalStatus)
	}
	if !canAdjudicate(actor.Role, expense.RequiresDirectorApproval) {
		s.LogWarn(ctx, "Approval denied by role gate",
			slog.String("expense_id", expenseID),
			slog.String("role", string(actor.Role)),
			slog.Bool("requires_director_approval", expense.RequiresDirectorApproval))
		return nil, fmt.Errorf("%w: role %s cannot approve this expense", apperrors.ErrForbidden, actor.Role)
	}

	now := time.Now().UTC()
	transition := portsrepo.ExpenseTransition{
		FromStatus: domain.StatusPending,
		ToStatus:   domain.StatusApproved,
		ApprovedBy: &actor.UserID,
		ApprovedAt: &now,
		UpdatedBy:  actor.UserID,
		UpdatedAt:  now,
	}

	if err := s.expenseRepo.ApplyTransition(ctx, actor.OrganizationID, expenseID, transition); err != nil {
		return nil, err
	}

	expense.ApprovalStatus = domain.StatusApproved
	expense.ApprovedBy = &actor.UserID
	expense.ApprovedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Expense approved", slog.String("expense_id", expenseID))
	return expense, nil
}

// Reject adjudicates a pending expense with a mandatory reason. The
// adjudicator is recorded in the same audit fields as an approval; the status
// distinguishes the outcome.
func (s *approvalService) Reject(ctx context.Context, actor domain.Actor, expenseID string, reason string) (*domain.Expense, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, actor.OrganizationID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.ApprovalStatus != domain.StatusPending {
		return nil, fmt.Errorf("%w: cannot reject expense in status %s", apperrors.ErrInvalidState, expense.ApprovalStatus)
	}
	if !canAdjudicate(actor.Role, expense.RequiresDirectorApproval) {
		s.LogWarn(ctx, "Rejection denied by role gate",
			slog.String("expense_id", expenseID),
			slog.String("role", string(actor.Role)))
		return nil, fmt.Errorf("%w: role %s cannot reject this expense", apperrors.ErrForbidden, actor.Role)
	}

	now := time.Now().UTC()
	transition := portsrepo.ExpenseTransition{
		FromStatus:      domain.StatusPending,
		ToStatus:        domain.StatusRejected,
		ApprovedBy:      &actor.UserID,
		ApprovedAt:      &now,
		RejectionReason: &reason,
		UpdatedBy:       actor.UserID,
		UpdatedAt:       now,
	}

	if err := s.expenseRepo.ApplyTransition(ctx, actor.OrganizationID, expenseID, transition); err != nil {
		return nil, err
	}

	expense.ApprovalStatus = domain.StatusRejected
	expense.ApprovedBy = &actor.UserID
	expense.ApprovedAt = &now
	expense.RejectionReason = &reason
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Expense rejected", slog.String("expense_id", expenseID))
	return expense, nil
}

// ListPending returns the pending queue the actor's role may adjudicate.
// Officers do not see director-level expenses. The page size is clamped the
// same way as the expense listing.
func (s *approvalService) ListPending(ctx context.Context, actor domain.Actor, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 25
	}
	if limit > 200 {
		limit = 200
	}
	includeDirectorLevel := actor.Role == domain.RoleAdmin || actor.Role == domain.RoleDirector
	return s.expenseRepo.ListPendingExpenses(ctx, actor.OrganizationID, includeDirectorLevel, limit, nextToken)
}
