package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// NotebookService handles per-user mistake notebooks and their bookmarks
type NotebookService struct {
	notebookRepo *repositories.NotebookRepository
	questionRepo *repositories.QuestionRepository
	logger       zerolog.Logger
}

// NewNotebookService creates a new NotebookService
func NewNotebookService(notebookRepo *repositories.NotebookRepository, questionRepo *repositories.QuestionRepository, logger zerolog.Logger) *NotebookService {
	return &NotebookService{
		notebookRepo: notebookRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// ListNotebooks returns all notebooks of a user
func (s *NotebookService) ListNotebooks(ctx context.Context, userID string) (*dto.NotebookListResponse, error) {
	notebooks, err := s.notebookRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToNotebookListResponse(notebooks)
	return &resp, nil
}

// GetNotebook returns one notebook with its bookmarks
func (s *NotebookService) GetNotebook(ctx context.Context, userID, notebookID string) (*dto.NotebookResponse, error) {
	notebook, err := s.notebookRepo.GetByID(ctx, userID, notebookID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToNotebookResponse(notebook)
	return &resp, nil
}

// CreateNotebook creates a new notebook. Names are unique per user,
// case-insensitively.
func (s *NotebookService) CreateNotebook(ctx context.Context, userID string, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: notebook name cannot be empty", apperrors.ErrValidationFailed)
	}

	notebook, err := s.notebookRepo.CreateNotebook(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	resp := dto.ToNotebookResponse(notebook)
	return &resp, nil
}

// RenameNotebook changes a notebook's name
func (s *NotebookService) RenameNotebook(ctx context.Context, userID, notebookID string, req *dto.RenameNotebookRequest) (*dto.NotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: notebook name cannot be empty", apperrors.ErrValidationFailed)
	}

	notebook, err := s.notebookRepo.RenameNotebook(ctx, userID, notebookID, name)
	if err != nil {
		return nil, err
	}
	resp := dto.ToNotebookResponse(notebook)
	return &resp, nil
}

// DeleteNotebook removes a notebook and all of its bookmarks
func (s *NotebookService) DeleteNotebook(ctx context.Context, userID, notebookID string) error {
	return s.notebookRepo.DeleteNotebook(ctx, userID, notebookID)
}

// AddBookmark saves a question into a notebook. The referenced question must
// exist; bookmarking the same question again refreshes its tags.
func (s *NotebookService) AddBookmark(ctx context.Context, userID, notebookID string, req *dto.AddBookmarkRequest) (*dto.BookmarkResponse, error) {
	if _, err := s.questionRepo.GetQuestion(ctx, req.Subject, req.Lesson, req.QuestionID); err != nil {
		return nil, err
	}

	bookmark, err := s.notebookRepo.UpsertBookmark(ctx, userID, notebookID, models.Bookmark{
		QuestionID: req.QuestionID,
		Subject:    req.Subject,
		Lesson:     req.Lesson,
		Tags:       req.Tags,
		AddedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.BookmarkResponse{
		QuestionID: bookmark.QuestionID,
		Subject:    bookmark.Subject,
		Lesson:     bookmark.Lesson,
		Tags:       bookmark.Tags,
		AddedAt:    bookmark.AddedAt.Format(time.RFC3339),
	}, nil
}

// RemoveBookmark deletes a bookmark from a notebook
func (s *NotebookService) RemoveBookmark(ctx context.Context, userID, notebookID, questionID string) error {
	return s.notebookRepo.DeleteBookmark(ctx, userID, notebookID, questionID)
}
