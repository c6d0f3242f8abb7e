package handlers

import (
	"net/http"

	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/angemarius939/datarw-finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler streams report downloads.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{
		exportService: es,
	}
}

// registerExportRoutes registers the report download routes.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	exports := rg.Group("/exports")
	{
		exports.GET("/expenses", h.exportExpenses)
		exports.GET("/variance", h.exportVariance)
	}
}

func writeExport(c *gin.Context, result *dto.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// exportExpenses godoc
// @Summary Download the expense list
// @Description Renders the filtered expense list as CSV, XLSX or PDF. Accepts the same filters as the listing endpoint.
// @Tags exports
// @Produce  octet-stream
// @Param   format query string true "csv | xlsx | pdf"
// @Param   project_id query string false "Filter by project"
// @Param   funding_source query string false "Filter by funding source"
// @Param   date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Unsupported format or invalid filters"
// @Security BearerAuth
// @Router /finance/exports/expenses [get]
func (h *exportHandler) exportExpenses(c *gin.Context) {
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

	format := dto.ExportFormat(c.DefaultQuery("format", string(dto.FormatCSV)))

	result, err := h.exportService.ExportExpenses(c.Request.Context(), actor, filter, format)
	if err != nil {
		respondServiceError(c, logger, err, "export expenses")
		return
	}

	writeExport(c, result)
}

// exportVariance godoc
// @Summary Download the variance report
// @Description Renders the budget-vs-actual report as CSV, XLSX or PDF.
// @Tags exports
// @Produce  octet-stream
// @Param   format query string true "csv | xlsx | pdf"
// @Param   project_id query string false "Scope to one project"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Unsupported format"
// @Security BearerAuth
// @Router /finance/exports/variance [get]
func (h *exportHandler) exportVariance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter, ok := bindAnalyticsFilter(c)
	if !ok {
		return
	}

	format := dto.ExportFormat(c.DefaultQuery("format", string(dto.FormatCSV)))

	result, err := h.exportService.ExportVariance(c.Request.Context(), actor, filter, format)
	if err != nil {
		respondServiceError(c, logger, err, "export variance report")
		return
	}

	writeExport(c, result)
}
