package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// AIController handles study advisor endpoints
type AIController struct {
	aiService *services.AIService
	logger    zerolog.Logger
}

// NewAIController creates a new AIController
func NewAIController(aiService *services.AIService, logger zerolog.Logger) *AIController {
	return &AIController{
		aiService: aiService,
		logger:    logger,
	}
}

// StudyTips generates a personalized study plan
// @Summary Get study tips
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.StudyTipsRequest true "Stream, subjects and weak areas"
// @Success 200 {object} dto.APIResponse{data=dto.AdvisorResponse}
// @Security BearerAuth
// @Router /ai/study-tips [post]
func (c *AIController) StudyTips(ctx *gin.Context) {
	var req dto.StudyTipsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.aiService.StudyTips(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// SolveDoubt explains a question or concept
// @Summary Solve a doubt
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.DoubtRequest true "Subject and question"
// @Success 200 {object} dto.APIResponse{data=dto.AdvisorResponse}
// @Security BearerAuth
// @Router /ai/doubt [post]
func (c *AIController) SolveDoubt(ctx *gin.Context) {
	var req dto.DoubtRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.aiService.SolveDoubt(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
