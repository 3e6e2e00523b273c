package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/middleware"
)

// NotebookController handles mistake notebook endpoints
type NotebookController struct {
	notebookService *services.NotebookService
	logger          zerolog.Logger
}

// NewNotebookController creates a new NotebookController
func NewNotebookController(notebookService *services.NotebookService, logger zerolog.Logger) *NotebookController {
	return &NotebookController{
		notebookService: notebookService,
		logger:          logger,
	}
}

// ListNotebooks returns the caller's notebooks
// @Summary List own notebooks
// @Tags notebooks
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.NotebookListResponse}
// @Security BearerAuth
// @Router /notebooks [get]
func (c *NotebookController) ListNotebooks(ctx *gin.Context) {
	resp, err := c.notebookService.ListNotebooks(ctx.Request.Context(), ctx.GetString(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetNotebook returns one notebook with its bookmarks
// @Summary Get a notebook
// @Tags notebooks
// @Produce json
// @Param notebookId path string true "Notebook id"
// @Success 200 {object} dto.APIResponse{data=dto.NotebookResponse}
// @Failure 404 {object} dto.ErrorResponse "Notebook not found"
// @Security BearerAuth
// @Router /notebooks/{notebookId} [get]
func (c *NotebookController) GetNotebook(ctx *gin.Context) {
	resp, err := c.notebookService.GetNotebook(ctx.Request.Context(),
		ctx.GetString(middleware.ContextUserID), ctx.Param("notebookId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// CreateNotebook creates a new notebook
// @Summary Create a notebook
// @Tags notebooks
// @Accept json
// @Produce json
// @Param request body dto.CreateNotebookRequest true "Notebook name"
// @Success 201 {object} dto.APIResponse{data=dto.NotebookResponse}
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Security BearerAuth
// @Router /notebooks [post]
func (c *NotebookController) CreateNotebook(ctx *gin.Context) {
	var req dto.CreateNotebookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.notebookService.CreateNotebook(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userId", userID).Str("notebookId", resp.ID).Msg("Notebook created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// RenameNotebook renames a notebook
// @Summary Rename a notebook
// @Tags notebooks
// @Accept json
// @Produce json
// @Param notebookId path string true "Notebook id"
// @Param request body dto.RenameNotebookRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=dto.NotebookResponse}
// @Security BearerAuth
// @Router /notebooks/{notebookId} [put]
func (c *NotebookController) RenameNotebook(ctx *gin.Context) {
	var req dto.RenameNotebookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.notebookService.RenameNotebook(ctx.Request.Context(),
		ctx.GetString(middleware.ContextUserID), ctx.Param("notebookId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// DeleteNotebook removes a notebook and its bookmarks
// @Summary Delete a notebook
// @Tags notebooks
// @Produce json
// @Param notebookId path string true "Notebook id"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notebooks/{notebookId} [delete]
func (c *NotebookController) DeleteNotebook(ctx *gin.Context) {
	if err := c.notebookService.DeleteNotebook(ctx.Request.Context(),
		ctx.GetString(middleware.ContextUserID), ctx.Param("notebookId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notebook deleted"))
}

// AddBookmark saves a question into a notebook
// @Summary Bookmark a question
// @Tags notebooks
// @Accept json
// @Produce json
// @Param notebookId path string true "Notebook id"
// @Param request body dto.AddBookmarkRequest true "Question reference and tags"
// @Success 201 {object} dto.APIResponse{data=dto.BookmarkResponse}
// @Failure 404 {object} dto.ErrorResponse "Notebook or question not found"
// @Security BearerAuth
// @Router /notebooks/{notebookId}/bookmarks [post]
func (c *NotebookController) AddBookmark(ctx *gin.Context) {
	var req dto.AddBookmarkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.notebookService.AddBookmark(ctx.Request.Context(),
		ctx.GetString(middleware.ContextUserID), ctx.Param("notebookId"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// RemoveBookmark deletes a bookmark from a notebook
// @Summary Remove a bookmark
// @Tags notebooks
// @Produce json
// @Param notebookId path string true "Notebook id"
// @Param questionId path string true "Bookmarked question id"
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notebooks/{notebookId}/bookmarks/{questionId} [delete]
func (c *NotebookController) RemoveBookmark(ctx *gin.Context) {
	if err := c.notebookService.RemoveBookmark(ctx.Request.Context(),
		ctx.GetString(middleware.ContextUserID), ctx.Param("notebookId"), ctx.Param("questionId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Bookmark removed"))
}
