package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/angemarius939/datarw-finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalHandler handles HTTP requests for the approval lifecycle.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func newApprovalHandler(as portssvc.ApprovalSvcFacade) *approvalHandler {
	return &approvalHandler{
		approvalService: as,
	}
}

// registerApprovalRoutes registers the workflow transition routes and the
// pending-approvals queue.
func registerApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := newApprovalHandler(approvalService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("/:expenseID/submit", h.submitExpense)
		expenses.POST("/:expenseID/approve", h.approveExpense)
		expenses.POST("/:expenseID/reject", h.rejectExpense)
	}

	rg.GET("/approvals/pending", h.listPendingApprovals)
}

// submitExpense godoc
// @Summary Submit a draft expense for approval
// @Description Moves the expense to PENDING and snapshots whether director approval is required from the org threshold.
// @Tags approvals
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not a draft"
// @Security BearerAuth
// @Router /finance/expenses/{expenseID}/submit [post]
func (h *approvalHandler) submitExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.approvalService.Submit(c.Request.Context(), actor, c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, logger, err, "submit expense")
		return
	}

	logger.Info("Expense submitted", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(*expense))
}

// approveExpense godoc
// @Summary Approve a pending expense
// @Description Adjudicates the expense. Director-flagged expenses require the DIRECTOR or ADMIN role.
// @Tags approvals
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} map[string]string "Role cannot approve this expense"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Security BearerAuth
// @Router /finance/expenses/{expenseID}/approve [post]
func (h *approvalHandler) approveExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.approvalService.Approve(c.Request.Context(), actor, c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, logger, err, "approve expense")
		return
	}

	logger.Info("Expense approved", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(*expense))
}

// rejectExpense godoc
// @Summary Reject a pending expense
// @Description Adjudicates the expense with a mandatory rejection reason. Same role gate as approval.
// @Tags approvals
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   rejection body dto.RejectExpenseRequest true "Rejection reason"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 403 {object} map[string]string "Role cannot reject this expense"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense is not pending"
// @Security BearerAuth
// @Router /finance/expenses/{expenseID}/reject [post]
func (h *approvalHandler) rejectExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RejectExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.approvalService.Reject(c.Request.Context(), actor, c.Param("expenseID"), req.RejectionReason)
	if err != nil {
		respondServiceError(c, logger, err, "reject expense")
		return
	}

	logger.Info("Expense rejected", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(*expense))
}

// listPendingApprovals godoc
// @Summary List pending approvals
// @Description Returns the token-paginated queue of pending expenses the actor's role may adjudicate. Officers do not see director-level expenses.
// @Tags approvals
// @Produce  json
// @Param   limit query int false "Page size (default 25)"
// @Param   next_token query string false "Opaque pagination cursor"
// @Success 200 {object} dto.PendingApprovalsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Security BearerAuth
// @Router /finance/approvals/pending [get]
func (h *approvalHandler) listPendingApprovals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit := 25
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	var nextToken *string
	if raw := c.Query("next_token"); raw != "" {
		nextToken = &raw
	}

	expenses, token, err := h.approvalService.ListPending(c.Request.Context(), actor, limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "list pending approvals")
		return
	}

	c.JSON(http.StatusOK, dto.PendingApprovalsResponse{
		Expenses:  dto.ToExpenseResponseSlice(expenses),
		NextToken: token,
	})
}
