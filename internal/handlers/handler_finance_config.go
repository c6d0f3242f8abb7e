package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/angemarius939/datarw-finance/internal/core/ports/services"
	"github.com/angemarius939/datarw-finance/internal/dto"
	"github.com/angemarius939/datarw-finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financeConfigHandler handles HTTP requests for the org finance vocabulary.
type financeConfigHandler struct {
	configService portssvc.ConfigSvcFacade
}

func newFinanceConfigHandler(cs portssvc.ConfigSvcFacade) *financeConfigHandler {
	return &financeConfigHandler{
		configService: cs,
	}
}

// registerFinanceConfigRoutes registers routes for the finance config.
func registerFinanceConfigRoutes(rg *gin.RouterGroup, configService portssvc.ConfigSvcFacade) {
	h := newFinanceConfigHandler(configService)

	cfg := rg.Group("/config")
	{
		cfg.GET("", h.getConfig)
		cfg.PUT("", h.updateConfig)
	}
}

// getConfig godoc
// @Summary Get the organization's finance configuration
// @Description Returns the funding sources, cost centers, allocations and director threshold. Created with defaults on first access.
// @Tags config
// @Produce  json
// @Success 200 {object} dto.FinanceConfigResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get finance config"
// @Security BearerAuth
// @Router /finance/config [get]
func (h *financeConfigHandler) getConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cfg, err := h.configService.GetConfig(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, logger, err, "get finance config")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinanceConfigResponse(*cfg))
}

// updateConfig godoc
// @Summary Update the organization's finance configuration
// @Description Replaces the provided vocabulary lists wholesale; omitted fields are left untouched.
// @Tags config
// @Accept  json
// @Produce  json
// @Param   config body dto.UpdateFinanceConfigRequest true "Config fields to replace"
// @Success 200 {object} dto.FinanceConfigResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update finance config"
// @Security BearerAuth
// @Router /finance/config [put]
func (h *financeConfigHandler) updateConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateFinanceConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateConfig", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cfg, err := h.configService.UpdateConfig(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, logger, err, "update finance config")
		return
	}

	logger.Info("Finance config updated", slog.String("organization_id", actor.OrganizationID))
	c.JSON(http.StatusOK, dto.ToFinanceConfigResponse(*cfg))
}
