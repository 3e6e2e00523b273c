package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// TestController handles generated test endpoints
type TestController struct {
	testService *services.TestService
	logger      zerolog.Logger
}

// NewTestController creates a new TestController
func NewTestController(testService *services.TestService, logger zerolog.Logger) *TestController {
	return &TestController{
		testService: testService,
		logger:      logger,
	}
}

// CreateTest stores a new generated test (admin only)
// @Summary Create a test
// @Tags tests
// @Accept json
// @Produce json
// @Param request body dto.CreateTestRequest true "Test content"
// @Success 201 {object} dto.APIResponse{data=dto.TestResponse}
// @Failure 400 {object} dto.ErrorResponse "Shape fields mixed or invalid"
// @Security BearerAuth
// @Router /tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	var req dto.CreateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.testService.CreateTest(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("code", resp.Code).Str("testType", resp.TestType).Msg("Test created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// GetTest returns a test by its share code
// @Summary Get a test by code
// @Tags tests
// @Produce json
// @Param code path string true "Test code"
// @Success 200 {object} dto.APIResponse{data=dto.TestResponse}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{code} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	resp, err := c.testService.GetTestByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateTestQuestions swaps a test's question content (admin only)
// @Summary Update test questions
// @Tags tests
// @Accept json
// @Produce json
// @Param code path string true "Test code"
// @Param request body dto.UpdateTestQuestionsRequest true "New question content"
// @Success 200 {object} dto.APIResponse{data=dto.TestResponse}
// @Failure 409 {object} dto.ErrorResponse "Attempted to change immutable fields"
// @Security BearerAuth
// @Router /tests/{code} [put]
func (c *TestController) UpdateTestQuestions(ctx *gin.Context) {
	var req dto.UpdateTestQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.testService.UpdateTestQuestions(ctx.Request.Context(), ctx.Param("code"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteTest removes a test (admin only)
// @Summary Delete a test
// @Tags tests
// @Produce json
// @Param code path string true "Test code"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /tests/{code} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	code := ctx.Param("code")
	if err := c.testService.DeleteTest(ctx.Request.Context(), code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("code", code).Msg("Test deleted")
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Test deleted"))
}

// ListTests returns summaries of every test (admin only)
// @Summary List tests
// @Tags tests
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.TestListResponse}
// @Security BearerAuth
// @Router /tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	resp, err := c.testService.ListTests(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
