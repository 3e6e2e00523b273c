package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// PracticeController serves the daily practice set
type PracticeController struct {
	practiceService *services.PracticeService
	logger          zerolog.Logger
}

// NewPracticeController creates a new PracticeController
func NewPracticeController(practiceService *services.PracticeService, logger zerolog.Logger) *PracticeController {
	return &PracticeController{
		practiceService: practiceService,
		logger:          logger,
	}
}

// DailyPractice returns today's question set. Every user gets the same set
// for a given date.
// @Summary Get the daily practice set
// @Tags practice
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DailyPracticeResponse}
// @Security BearerAuth
// @Router /practice/daily [get]
func (c *PracticeController) DailyPractice(ctx *gin.Context) {
	resp, err := c.practiceService.DailyPractice(ctx.Request.Context(), time.Now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
