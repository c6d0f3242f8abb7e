package handlers

import (
	"net/http"

	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/angemarius939/datarw-finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles HTTP requests for the finance metrics.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers the metric routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)

	rg.GET("/burn-rate", h.burnRate)
	rg.GET("/variance", h.variance)
	rg.GET("/forecast", h.forecast)
	rg.GET("/funding-utilization", h.fundingUtilization)
}

// bindAnalyticsFilter parses the shared filter dimensions from the query
// string. The organization is filled by the service from the actor.
func bindAnalyticsFilter(c *gin.Context) (domain.AnalyticsFilter, bool) {
	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return domain.AnalyticsFilter{}, false
	}

	dateFrom, err := parseDateParam(query.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from, expected YYYY-MM-DD"})
		return domain.AnalyticsFilter{}, false
	}
	dateTo, err := parseDateParam(query.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to, expected YYYY-MM-DD"})
		return domain.AnalyticsFilter{}, false
	}
	if dateFrom != nil && dateTo != nil && dateTo.Before(*dateFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must not be before date_from"})
		return domain.AnalyticsFilter{}, false
	}

	return domain.AnalyticsFilter{
		ProjectID:     query.ProjectID,
		FundingSource: query.FundingSource,
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	}, true
}

// burnRate godoc
// @Summary Monthly burn rate
// @Description Returns approved spend per calendar month, ascending. Months without expenses are omitted.
// @Tags analytics
// @Produce  json
// @Param   project_id query string false "Scope to one project"
// @Param   funding_source query string false "Scope to one funding source"
// @Param   date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.BurnRateResponse
// @Security BearerAuth
// @Router /finance/burn-rate [get]
func (h *analyticsHandler) burnRate(c *gin.Context) {
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

	series, err := h.analyticsService.BurnRate(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, logger, err, "compute burn rate")
		return
	}

	c.JSON(http.StatusOK, dto.BurnRateResponse{Period: "monthly", Series: series})
}

// variance godoc
// @Summary Budget-vs-actual variance
// @Description Compares planned budget against committed spend (draft+pending+approved) per project.
// @Tags analytics
// @Produce  json
// @Param   project_id query string false "Scope to one project"
// @Success 200 {object} dto.VarianceResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /finance/variance [get]
func (h *analyticsHandler) variance(c *gin.Context) {
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

	variances, err := h.analyticsService.Variance(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, logger, err, "compute variance")
		return
	}

	c.JSON(http.StatusOK, dto.ToVarianceResponse(variances))
}

// forecast godoc
// @Summary Spend forecast
// @Description Projects remaining spend from the average monthly run rate of approved expenses.
// @Tags analytics
// @Produce  json
// @Param   project_id query string false "Scope to one project's schedule"
// @Success 200 {object} dto.ForecastResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /finance/forecast [get]
func (h *analyticsHandler) forecast(c *gin.Context) {
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

	forecast, err := h.analyticsService.Forecast(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, logger, err, "compute forecast")
		return
	}

	c.JSON(http.StatusOK, dto.ToForecastResponse(*forecast))
}

// fundingUtilization godoc
// @Summary Funding source utilization
// @Description Groups approved spend by funding source, annotated with configured allocation ceilings.
// @Tags analytics
// @Produce  json
// @Param   date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   date_to query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.FundingUtilizationResponse
// @Security BearerAuth
// @Router /finance/funding-utilization [get]
func (h *analyticsHandler) fundingUtilization(c *gin.Context) {
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

	rows, err := h.analyticsService.FundingUtilization(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, logger, err, "compute funding utilization")
		return
	}

	c.JSON(http.StatusOK, dto.FundingUtilizationResponse{ByFundingSource: rows})
}
