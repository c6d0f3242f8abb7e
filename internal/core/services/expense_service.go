package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
)

// expenseService provides expense CRUD with vocabulary validation and the
// per-state mutability rules.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	projectRepo portsrepo.ProjectReader
	configSvc   portssvc.ConfigSvcFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, projectRepo portsrepo.ProjectReader, configSvc portssvc.ConfigSvcFacade) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo: expenseRepo,
		projectRepo: projectRepo,
		configSvc:   configSvc,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense creates a new draft expense after validating the amount, the
// project reference and the vocabulary tags.
func (s *expenseService) CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	// The project must exist within the actor's organization.
	if _, err := s.projectRepo.FindProjectByID(ctx, actor.OrganizationID, req.ProjectID); err != nil {
		return nil, err
	}

	cfg, err := s.configSvc.GetConfig(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !cfg.HasFundingSource(req.FundingSource) {
		return nil, fmt.Errorf("%w: unknown funding source %q", apperrors.ErrValidation, req.FundingSource)
	}
	if !cfg.HasCostCenter(req.CostCenter) {
		return nil, fmt.Errorf("%w: unknown cost center %q", apperrors.ErrValidation, req.CostCenter)
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:      uuid.NewString(),
		OrganizationID: actor.OrganizationID,
		ProjectID:      req.ProjectID,
		ActivityID:     req.ActivityID,
		FundingSource:  req.FundingSource,
		CostCenter:     req.CostCenter,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Vendor:         req.Vendor,
		InvoiceNumber:  req.InvoiceNumber,
		ExpenseDate:    req.ExpenseDate,
		Notes:          req.Notes,
		ApprovalStatus: domain.StatusDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID), slog.String("project_id", expense.ProjectID))
	return &expense, nil
}

// GetExpenseByID retrieves an expense within the actor's organization.
func (s *expenseService) GetExpenseByID(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	return s.expenseRepo.FindExpenseByID(ctx, actor.OrganizationID, expenseID)
}

// ListExpenses retrieves a filtered, paginated expense list with a total count.
func (s *expenseService) ListExpenses(ctx context.Context, actor domain.Actor, filter portsrepo.ExpenseFilter) ([]domain.Expense, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 200 {
		filter.PageSize = 200
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, 0, fmt.Errorf("%w: date_to must not be before date_from", apperrors.ErrValidation)
	}
	return s.expenseRepo.ListExpenses(ctx, actor.OrganizationID, filter)
}

// UpdateExpense applies a typed patch subject to the state's mutability
// rules: drafts accept everything, pending expenses accept provenance fields
// only (never amount or classification), adjudicated expenses accept nothing.
func (s *expenseService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, actor.OrganizationID, expenseID)
	if err != nil {
		return nil, err
	}

	switch {
	case expense.ApprovalStatus.Adjudicated():
		return nil, fmt.Errorf("%w: %s expenses are immutable", apperrors.ErrInvalidState, expense.ApprovalStatus)
	case expense.ApprovalStatus == domain.StatusPending && req.HasClassificationOrAmountChange():
		return nil, fmt.Errorf("%w: amount and classification are frozen after submission", apperrors.ErrInvalidState)
	}

	if req.Amount != nil && req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	if req.FundingSource != nil || req.CostCenter != nil {
		cfg, err := s.configSvc.GetConfig(ctx, actor)
		if err != nil {
			return nil, err
		}
		if req.FundingSource != nil && !cfg.HasFundingSource(*req.FundingSource) {
			return nil, fmt.Errorf("%w: unknown funding source %q", apperrors.ErrValidation, *req.FundingSource)
		}
		if req.CostCenter != nil && !cfg.HasCostCenter(*req.CostCenter) {
			return nil, fmt.Errorf("%w: unknown cost center %q", apperrors.ErrValidation, *req.CostCenter)
		}
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindProjectByID(ctx, actor.OrganizationID, *req.ProjectID); err != nil {
			return nil, err
		}
		expense.ProjectID = *req.ProjectID
	}
	if req.ActivityID != nil {
		expense.ActivityID = req.ActivityID
	}
	if req.FundingSource != nil {
		expense.FundingSource = *req.FundingSource
	}
	if req.CostCenter != nil {
		expense.CostCenter = *req.CostCenter
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.Currency != nil {
		expense.Currency = *req.Currency
	}
	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.InvoiceNumber != nil {
		expense.InvoiceNumber = *req.InvoiceNumber
	}
	if req.ExpenseDate != nil {
		expense.ExpenseDate = *req.ExpenseDate
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	expense.LastUpdatedAt = time.Now().UTC()
	expense.LastUpdatedBy = actor.UserID

	// Pin the status the mutability rules were checked against; a concurrent
	// transition in between surfaces as ErrInvalidState from the repository.
	if err := s.expenseRepo.UpdateExpense(ctx, *expense, expense.ApprovalStatus); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return expense, nil
}

// DeleteExpense removes a draft or pending expense. Adjudicated expenses are
// immutable history.
func (s *expenseService) DeleteExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	if err := s.expenseRepo.DeleteExpense(ctx, actor.OrganizationID, expenseID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
