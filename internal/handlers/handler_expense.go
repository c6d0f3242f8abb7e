package handlers

import (
	"log/slog"
	"net/http"

	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/angemarius939/datarw-finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for expense CRUD.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

// toExpenseFilter converts the query-string request into a repository filter.
func toExpenseFilter(req dto.ListExpensesRequest) (portsrepo.ExpenseFilter, error) {
	dateFrom, err := parseDateParam(req.DateFrom)
	if err != nil {
		return portsrepo.ExpenseFilter{}, err
	}
	dateTo, err := parseDateParam(req.DateTo)
	if err != nil {
		return portsrepo.ExpenseFilter{}, err
	}
	return portsrepo.ExpenseFilter{
		ProjectID:      req.ProjectID,
		ActivityID:     req.ActivityID,
		FundingSource:  req.FundingSource,
		VendorContains: req.Vendor,
		DateFrom:       dateFrom,
		DateTo:         dateTo,
		Page:           req.Page,
		PageSize:       req.PageSize,
	}, nil
}

// createExpense godoc
// @Summary Create a draft expense
// @Description Creates a new expense in DRAFT status after validating the project reference and vocabulary tags.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /finance/expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, logger, err, "create expense")
		return
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(*expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Retrieves a filtered, paginated expense list for the organization.
// @Tags expenses
// @Produce  json
// @Param   project_id query string false "Filter by project"
// @Param   funding_source query string false "Filter by funding source"
// @Param   vendor query string false "Case-insensitive vendor substring"
// @Param   date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   page query int false "Page number (default 1)"
// @Param   page_size query int false "Page size (default 20, max 200)"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Security BearerAuth
// @Router /finance/expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := toExpenseFilter(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date filter, expected YYYY-MM-DD"})
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, logger, err, "list expenses")
		return
	}

	c.JSON(http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ToExpenseResponseSlice(expenses),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string "Expense not found"
// @Security BearerAuth
// @Router /finance/expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), actor, c.Param("expenseID"))
	if err != nil {
		respondServiceError(c, logger, err, "get expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(*expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Applies a partial update. Drafts accept every field; pending expenses accept provenance fields only; adjudicated expenses accept nothing.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Field frozen in current status"
// @Security BearerAuth
// @Router /finance/expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), actor, c.Param("expenseID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "update expense")
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(*expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Removes a draft or pending expense. Approved and rejected expenses are immutable history.
// @Tags expenses
// @Param   expenseID path string true "Expense ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 409 {object} map[string]string "Expense already adjudicated"
// @Security BearerAuth
// @Router /finance/expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), actor, c.Param("expenseID")); err != nil {
		respondServiceError(c, logger, err, "delete expense")
		return
	}

	c.Status(http.StatusNoContent)
}
