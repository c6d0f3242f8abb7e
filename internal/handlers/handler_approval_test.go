package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/angemarius939/datarw-finance/internal/handlers"
	"github.com/angemarius939/datarw-finance/internal/middleware"
	"github.com/angemarius939/datarw-finance/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Submit(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockApprovalService) Approve(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockApprovalService) Reject(ctx context.Context, actor domain.Actor, expenseID string, reason string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockApprovalService) ListPending(ctx context.Context, actor domain.Actor, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, actor, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Expense), token, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

// --- Test Suite ---
type ApprovalHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockApprovalService *MockApprovalService
	jwtSecret           string
	orgID               string
}

// generateTestToken creates a signed JWT carrying the actor claims the
// middleware expects.
func (suite *ApprovalHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	claims := middleware.FinanceClaims{
		OrganizationID: suite.orgID,
		Role:           string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "datarw-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ApprovalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.orgID = uuid.NewString()

	suite.mockApprovalService = new(MockApprovalService)

	// Register the real route tree with the real AuthMiddleware; only the
	// approval facade is exercised here.
	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	services := &portssvc.ServiceContainer{
		Approval: suite.mockApprovalService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ApprovalHandlerTestSuite) pendingExpense(expenseID string) *domain.Expense {
	submittedBy := uuid.NewString()
	submittedAt := time.Now().Add(-time.Hour)
	return &domain.Expense{
		ExpenseID:      expenseID,
		OrganizationID: suite.orgID,
		ProjectID:      uuid.NewString(),
		FundingSource:  "USAID",
		CostCenter:     "Operations",
		Amount:         decimal.NewFromInt(4500),
		Currency:       "RWF",
		Vendor:         "Kigali Supplies Ltd",
		ExpenseDate:    time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ApprovalStatus: domain.StatusPending,
		SubmittedBy:    &submittedBy,
		SubmittedAt:    &submittedAt,
	}
}

func (suite *ApprovalHandlerTestSuite) doRequest(method, url string, body []byte, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ApprovalHandlerTestSuite) TestSubmitExpense_Success() {
	expenseID := uuid.NewString()
	userID := uuid.NewString()
	expected := suite.pendingExpense(expenseID)

	suite.mockApprovalService.On("Submit",
		mock.Anything,
		mock.MatchedBy(func(a domain.Actor) bool {
			return a.UserID == userID && a.OrganizationID == suite.orgID && a.Role == domain.RoleOfficer
		}),
		expenseID,
	).Return(expected, nil).Once()

	token := suite.generateTestToken(userID, domain.RoleOfficer)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/submit", expenseID), nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expenseID, body.ExpenseID)
	suite.Equal(string(domain.StatusPending), body.ApprovalStatus)
	suite.Equal("2026-03-14", body.ExpenseDate)

	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestSubmitExpense_NoToken() {
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/submit", uuid.NewString()), nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockApprovalService.AssertNotCalled(suite.T(), "Submit")
}

func (suite *ApprovalHandlerTestSuite) TestSubmitExpense_UnrecognizedRole() {
	// A token whose role claim is outside the known set is rejected before any
	// handler runs.
	token := suite.generateTestToken(uuid.NewString(), domain.Role("INTERN"))
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/submit", uuid.NewString()), nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockApprovalService.AssertNotCalled(suite.T(), "Submit")
}

func (suite *ApprovalHandlerTestSuite) TestSubmitExpense_MalformedOrgClaim() {
	// organization ids are UUIDs in the database; a token whose org claim is
	// not one must fail authentication, not surface as a query error later.
	claims := middleware.FinanceClaims{
		OrganizationID: "not-a-uuid",
		Role:           string(domain.RoleOfficer),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/submit", uuid.NewString()), nil, signed)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockApprovalService.AssertNotCalled(suite.T(), "Submit")
}

func (suite *ApprovalHandlerTestSuite) TestApproveExpense_Forbidden() {
	expenseID := uuid.NewString()

	suite.mockApprovalService.On("Approve", mock.Anything, mock.AnythingOfType("domain.Actor"), expenseID).
		Return(nil, fmt.Errorf("%w: expense requires director approval", apperrors.ErrForbidden)).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleOfficer)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/approve", expenseID), nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestApproveExpense_Conflict() {
	expenseID := uuid.NewString()

	suite.mockApprovalService.On("Approve", mock.Anything, mock.AnythingOfType("domain.Actor"), expenseID).
		Return(nil, fmt.Errorf("%w: expense %s is no longer PENDING", apperrors.ErrInvalidState, expenseID)).Once()

	token := suite.generateTestToken(uuid.NewString(), domain.RoleDirector)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/approve", expenseID), nil, token)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestRejectExpense_Success() {
	expenseID := uuid.NewString()
	userID := uuid.NewString()
	reason := "Invoice does not match the purchase order"

	expected := suite.pendingExpense(expenseID)
	expected.ApprovalStatus = domain.StatusRejected
	expected.RejectionReason = &reason

	suite.mockApprovalService.On("Reject", mock.Anything, mock.AnythingOfType("domain.Actor"), expenseID, reason).
		Return(expected, nil).Once()

	body, _ := json.Marshal(dto.RejectExpenseRequest{RejectionReason: reason})
	token := suite.generateTestToken(userID, domain.RoleDirector)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/reject", expenseID), body, token)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.StatusRejected), resp.ApprovalStatus)
	if suite.NotNil(resp.RejectionReason) {
		suite.Equal(reason, *resp.RejectionReason)
	}

	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestRejectExpense_MissingReason() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleDirector)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/finance/expenses/%s/reject", uuid.NewString()), []byte(`{}`), token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockApprovalService.AssertNotCalled(suite.T(), "Reject")
}

func (suite *ApprovalHandlerTestSuite) TestListPendingApprovals_Success() {
	userID := uuid.NewString()
	first := suite.pendingExpense(uuid.NewString())
	second := suite.pendingExpense(uuid.NewString())
	nextToken := "b3BhcXVl"

	suite.mockApprovalService.On("ListPending",
		mock.Anything,
		mock.MatchedBy(func(a domain.Actor) bool {
			return a.UserID == userID && a.Role == domain.RoleDirector
		}),
		10,
		(*string)(nil),
	).Return([]domain.Expense{*first, *second}, &nextToken, nil).Once()

	token := suite.generateTestToken(userID, domain.RoleDirector)
	w := suite.doRequest(http.MethodGet, "/api/v1/finance/approvals/pending?limit=10", nil, token)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.PendingApprovalsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Expenses, 2)
	suite.Equal(first.ExpenseID, resp.Expenses[0].ExpenseID)
	if suite.NotNil(resp.NextToken) {
		suite.Equal(nextToken, *resp.NextToken)
	}

	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestListPendingApprovals_InvalidLimit() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleDirector)
	w := suite.doRequest(http.MethodGet, "/api/v1/finance/approvals/pending?limit=zero", nil, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockApprovalService.AssertNotCalled(suite.T(), "ListPending")
}

// --- Run Test Suite ---
func TestApprovalHandler(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerTestSuite))
}
