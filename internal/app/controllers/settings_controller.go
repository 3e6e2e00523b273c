package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// SettingsController handles platform settings endpoints
type SettingsController struct {
	settingsService *services.SettingsService
	logger          zerolog.Logger
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService *services.SettingsService, logger zerolog.Logger) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings returns the platform settings
// @Summary Get platform settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Router /settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	resp, err := c.settingsService.GetSettings(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateSettings replaces the settings record (admin only)
// @Summary Update platform settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "New settings"
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Security BearerAuth
// @Router /settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.settingsService.UpdateSettings(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
