package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// QuestionController handles question bank endpoints. Creation accepts
// multipart form data so question and explanation images can ride along.
type QuestionController struct {
	questionService *services.QuestionService
	logger          zerolog.Logger
}

// NewQuestionController creates a new QuestionController
func NewQuestionController(questionService *services.QuestionService, logger zerolog.Logger) *QuestionController {
	return &QuestionController{
		questionService: questionService,
		logger:          logger,
	}
}

// CreateQuestion stores a new question (admin only)
// @Summary Create a question
// @Description Accepts multipart form data. The "payload" field carries the
// question JSON; "questionImage" and "explanationImage" are optional files.
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Param payload formData string true "Question JSON (dto.CreateQuestionRequest)"
// @Param questionImage formData file false "Question image"
// @Param explanationImage formData file false "Explanation image"
// @Success 201 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Security BearerAuth
// @Router /questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	payload := ctx.PostForm("payload")
	if payload == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing payload field")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateQuestionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payload JSON").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	questionImage, _ := ctx.FormFile("questionImage")
	explanationImage, _ := ctx.FormFile("explanationImage")

	resp, err := c.questionService.CreateQuestion(ctx.Request.Context(), &req, questionImage, explanationImage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("questionId", resp.ID).Str("subject", resp.Subject).Str("lesson", resp.Lesson).Msg("Question created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// GetQuestion returns one question
// @Summary Get a question
// @Tags questions
// @Produce json
// @Param subject path string true "Subject"
// @Param lesson path string true "Lesson"
// @Param questionId path string true "Question id"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Security BearerAuth
// @Router /questions/{subject}/{lesson}/{questionId} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	resp, err := c.questionService.GetQuestion(ctx.Request.Context(),
		ctx.Param("subject"), ctx.Param("lesson"), ctx.Param("questionId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// ListQuestions returns every question of a subject/lesson
// @Summary List questions of a lesson
// @Tags questions
// @Produce json
// @Param subject path string true "Subject"
// @Param lesson path string true "Lesson"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionListResponse}
// @Security BearerAuth
// @Router /questions/{subject}/{lesson} [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	resp, err := c.questionService.ListQuestions(ctx.Request.Context(), ctx.Param("subject"), ctx.Param("lesson"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// UpdateQuestion applies partial updates to a question (admin only)
// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Param subject path string true "Subject"
// @Param lesson path string true "Lesson"
// @Param questionId path string true "Question id"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionResponse}
// @Security BearerAuth
// @Router /questions/{subject}/{lesson}/{questionId} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.questionService.UpdateQuestion(ctx.Request.Context(),
		ctx.Param("subject"), ctx.Param("lesson"), ctx.Param("questionId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteQuestion removes a question and its images (admin only)
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param subject path string true "Subject"
// @Param lesson path string true "Lesson"
// @Param questionId path string true "Question id"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /questions/{subject}/{lesson}/{questionId} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(),
		ctx.Param("subject"), ctx.Param("lesson"), ctx.Param("questionId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question deleted"))
}
