package services_test

import (
	"context"
	"testing"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ApprovalServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockExpenseRepository
	mockConfigSvc *MockConfigService
	service       portssvc.ApprovalSvcFacade
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.mockConfigSvc = new(MockConfigService)
	suite.service = services.NewApprovalService(suite.mockRepo, suite.mockConfigSvc)
}

func (suite *ApprovalServiceTestSuite) pendingExpense(actor domain.Actor, requiresDirector bool) *domain.Expense {
	return &domain.Expense{
		ExpenseID:                uuid.NewString(),
		OrganizationID:           actor.OrganizationID,
		ApprovalStatus:           domain.StatusPending,
		RequiresDirectorApproval: requiresDirector,
		Amount:                   decimal.NewFromInt(5000),
	}
}

// --- Submit ---

func (suite *ApprovalServiceTestSuite) TestSubmit_BelowThreshold() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expenseID := uuid.NewString()

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expenseID).
		Return(&domain.Expense{
			ExpenseID:      expenseID,
			OrganizationID: actor.OrganizationID,
			ApprovalStatus: domain.StatusDraft,
			Amount:         decimal.NewFromInt(50000),
		}, nil).Once()
	suite.mockConfigSvc.On("GetConfig", ctx, actor).
		Return(defaultConfig(actor.OrganizationID), nil).Once()
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expenseID, mock.MatchedBy(func(t portsrepo.ExpenseTransition) bool {
		return t.FromStatus == domain.StatusDraft &&
			t.ToStatus == domain.StatusPending &&
			t.RequiresDirectorApproval != nil && !*t.RequiresDirectorApproval &&
			t.SubmittedBy != nil && *t.SubmittedBy == actor.UserID
	})).Return(nil).Once()

	expense, err := suite.service.Submit(ctx, actor, expenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, expense.ApprovalStatus)
	suite.False(expense.RequiresDirectorApproval)
	suite.NotNil(expense.SubmittedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSubmit_AboveThresholdFlagsDirector() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expenseID := uuid.NewString()

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expenseID).
		Return(&domain.Expense{
			ExpenseID:      expenseID,
			OrganizationID: actor.OrganizationID,
			ApprovalStatus: domain.StatusDraft,
			Amount:         decimal.NewFromInt(150000),
		}, nil).Once()
	suite.mockConfigSvc.On("GetConfig", ctx, actor).
		Return(defaultConfig(actor.OrganizationID), nil).Once()
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expenseID, mock.MatchedBy(func(t portsrepo.ExpenseTransition) bool {
		return t.RequiresDirectorApproval != nil && *t.RequiresDirectorApproval
	})).Return(nil).Once()

	expense, err := suite.service.Submit(ctx, actor, expenseID)

	suite.Require().NoError(err)
	suite.True(expense.RequiresDirectorApproval)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSubmit_ExactlyThresholdDoesNotFlag() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expenseID := uuid.NewString()

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expenseID).
		Return(&domain.Expense{
			ExpenseID:      expenseID,
			OrganizationID: actor.OrganizationID,
			ApprovalStatus: domain.StatusDraft,
			Amount:         domain.DefaultDirectorThreshold,
		}, nil).Once()
	suite.mockConfigSvc.On("GetConfig", ctx, actor).
		Return(defaultConfig(actor.OrganizationID), nil).Once()
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expenseID, mock.MatchedBy(func(t portsrepo.ExpenseTransition) bool {
		return t.RequiresDirectorApproval != nil && !*t.RequiresDirectorApproval
	})).Return(nil).Once()

	expense, err := suite.service.Submit(ctx, actor, expenseID)

	suite.Require().NoError(err)
	suite.False(expense.RequiresDirectorApproval)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestSubmit_AlreadyPending() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expense := suite.pendingExpense(actor, false)

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()

	result, err := suite.service.Submit(ctx, actor, expense.ExpenseID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Approve ---

func (suite *ApprovalServiceTestSuite) TestApprove_OfficerOnRegularExpense() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expense := suite.pendingExpense(actor, false)

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expense.ExpenseID, mock.MatchedBy(func(t portsrepo.ExpenseTransition) bool {
		return t.FromStatus == domain.StatusPending &&
			t.ToStatus == domain.StatusApproved &&
			t.ApprovedBy != nil && *t.ApprovedBy == actor.UserID &&
			t.RejectionReason == nil
	})).Return(nil).Once()

	approved, err := suite.service.Approve(ctx, actor, expense.ExpenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.ApprovalStatus)
	suite.NotNil(approved.ApprovedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_OfficerBlockedOnDirectorLevel() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expense := suite.pendingExpense(actor, true)

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()

	approved, err := suite.service.Approve(ctx, actor, expense.ExpenseID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_DirectorOnDirectorLevel() {
	ctx := context.Background()
	actor := newActor(domain.RoleDirector)
	expense := suite.pendingExpense(actor, true)

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expense.ExpenseID, mock.AnythingOfType("repositories.ExpenseTransition")).
		Return(nil).Once()

	approved, err := suite.service.Approve(ctx, actor, expense.ExpenseID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.ApprovalStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_AlreadyAdjudicated() {
	ctx := context.Background()
	actor := newActor(domain.RoleAdmin)
	expenseID := uuid.NewString()

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expenseID).
		Return(&domain.Expense{ExpenseID: expenseID, ApprovalStatus: domain.StatusRejected}, nil).Once()

	approved, err := suite.service.Approve(ctx, actor, expenseID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *ApprovalServiceTestSuite) TestApprove_LosesConcurrentRace() {
	ctx := context.Background()
	actor := newActor(domain.RoleDirector)
	expense := suite.pendingExpense(actor, false)

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()
	// Another adjudicator won between the read and the conditional update.
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expense.ExpenseID, mock.AnythingOfType("repositories.ExpenseTransition")).
		Return(apperrors.ErrInvalidState).Once()

	approved, err := suite.service.Approve(ctx, actor, expense.ExpenseID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Reject ---

func (suite *ApprovalServiceTestSuite) TestReject_Success() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expense := suite.pendingExpense(actor, false)
	reason := "missing supporting invoice"

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()
	suite.mockRepo.On("ApplyTransition", ctx, actor.OrganizationID, expense.ExpenseID, mock.MatchedBy(func(t portsrepo.ExpenseTransition) bool {
		return t.ToStatus == domain.StatusRejected &&
			t.RejectionReason != nil && *t.RejectionReason == reason
	})).Return(nil).Once()

	rejected, err := suite.service.Reject(ctx, actor, expense.ExpenseID, reason)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.ApprovalStatus)
	suite.Require().NotNil(rejected.RejectionReason)
	suite.Equal(reason, *rejected.RejectionReason)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestReject_BlankReason() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)

	rejected, err := suite.service.Reject(ctx, actor, uuid.NewString(), "   ")

	suite.Require().Error(err)
	suite.Nil(rejected)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindExpenseByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestReject_OfficerBlockedOnDirectorLevel() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)
	expense := suite.pendingExpense(actor, true)

	suite.mockRepo.On("FindExpenseByID", ctx, actor.OrganizationID, expense.ExpenseID).
		Return(expense, nil).Once()

	rejected, err := suite.service.Reject(ctx, actor, expense.ExpenseID, "over budget")

	suite.Require().Error(err)
	suite.Nil(rejected)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListPending ---

func (suite *ApprovalServiceTestSuite) TestListPending_OfficerExcludesDirectorLevel() {
	ctx := context.Background()
	actor := newActor(domain.RoleOfficer)

	suite.mockRepo.On("ListPendingExpenses", ctx, actor.OrganizationID, false, 25, (*string)(nil)).
		Return([]domain.Expense{}, nil, nil).Once()

	_, next, err := suite.service.ListPending(ctx, actor, 25, nil)

	suite.Require().NoError(err)
	suite.Nil(next)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestListPending_DirectorSeesEverything() {
	ctx := context.Background()
	actor := newActor(domain.RoleDirector)
	token := "b3BhcXVl"

	suite.mockRepo.On("ListPendingExpenses", ctx, actor.OrganizationID, true, 25, (*string)(nil)).
		Return([]domain.Expense{{ExpenseID: uuid.NewString()}}, &token, nil).Once()

	expenses, next, err := suite.service.ListPending(ctx, actor, 25, nil)

	suite.Require().NoError(err)
	suite.Len(expenses, 1)
	suite.Require().NotNil(next)
	suite.Equal(token, *next)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestListPending_ClampsLimit() {
	ctx := context.Background()
	actor := newActor(domain.RoleDirector)

	suite.mockRepo.On("ListPendingExpenses", ctx, actor.OrganizationID, true, 200, (*string)(nil)).
		Return([]domain.Expense{}, nil, nil).Once()

	_, _, err := suite.service.ListPending(ctx, actor, 1000000, nil)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
