package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/filestorage"
)

// QuestionService handles the question bank, including question and
// explanation image uploads
type QuestionService struct {
	questionRepo *repositories.QuestionRepository
	storage      *filestorage.LocalStorage
	logger       zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questionRepo *repositories.QuestionRepository, storage *filestorage.LocalStorage, logger zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		storage:      storage,
		logger:       logger,
	}
}

// CreateQuestion stores a new question. Either text or a question image must
// be provided; images are saved under the subject/lesson images directory and
// referenced by bare filename.
func (s *QuestionService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest, questionImage, explanationImage *multipart.FileHeader) (*dto.QuestionResponse, error) {
	subject := strings.TrimSpace(req.Subject)
	lesson := strings.TrimSpace(req.Lesson)
	if subject == "" || lesson == "" {
		return nil, fmt.Errorf("%w: subject and lesson are required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Text) == "" && questionImage == nil {
		return nil, fmt.Errorf("%w: question needs text or an image", apperrors.ErrValidationFailed)
	}
	if err := validateOptions(req.Options, req.CorrectOption); err != nil {
		return nil, err
	}

	question := &models.Question{
		Subject:       subject,
		Lesson:        lesson,
		Text:          strings.TrimSpace(req.Text),
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Explanation:   strings.TrimSpace(req.Explanation),
	}
	if req.PYQ != nil {
		question.PYQ = &models.PYQInfo{Exam: req.PYQ.Exam, Date: req.PYQ.Date, Shift: req.PYQ.Shift}
	}

	if questionImage != nil {
		filename, err := s.storage.SaveQuestionImage(questionImage, subject, lesson, "q")
		if err != nil {
			return nil, fmt.Errorf("error saving question image: %w", err)
		}
		question.ImageFile = filename
	}
	if explanationImage != nil {
		filename, err := s.storage.SaveQuestionImage(explanationImage, subject, lesson, "exp")
		if err != nil {
			s.cleanupImages(subject, lesson, question.ImageFile)
			return nil, fmt.Errorf("error saving explanation image: %w", err)
		}
		question.ExplanationImage = filename
	}

	if err := s.questionRepo.CreateQuestion(ctx, question); err != nil {
		s.cleanupImages(subject, lesson, question.ImageFile, question.ExplanationImage)
		return nil, err
	}

	resp := dto.ToQuestionResponse(question, s.storage.ResolveURL)
	return &resp, nil
}

// GetQuestion returns one question bank item
func (s *QuestionService) GetQuestion(ctx context.Context, subject, lesson, id string) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.GetQuestion(ctx, subject, lesson, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToQuestionResponse(question, s.storage.ResolveURL)
	return &resp, nil
}

// UpdateQuestion applies partial content updates to a question
func (s *QuestionService) UpdateQuestion(ctx context.Context, subject, lesson, id string, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.UpdateQuestion(ctx, subject, lesson, id, func(q *models.Question) error {
		if req.Text != nil {
			q.Text = strings.TrimSpace(*req.Text)
		}
		if req.Options != nil {
			q.Options = *req.Options
		}
		if req.CorrectOption != nil {
			q.CorrectOption = *req.CorrectOption
		}
		if req.Explanation != nil {
			q.Explanation = strings.TrimSpace(*req.Explanation)
		}
		if req.PYQ != nil {
			q.PYQ = &models.PYQInfo{Exam: req.PYQ.Exam, Date: req.PYQ.Date, Shift: req.PYQ.Shift}
		}
		return validateOptions(q.Options, q.CorrectOption)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToQuestionResponse(question, s.storage.ResolveURL)
	return &resp, nil
}

// DeleteQuestion removes a question and its stored images
func (s *QuestionService) DeleteQuestion(ctx context.Context, subject, lesson, id string) error {
	question, err := s.questionRepo.GetQuestion(ctx, subject, lesson, id)
	if err != nil {
		return err
	}

	if err := s.questionRepo.DeleteQuestion(ctx, subject, lesson, id); err != nil {
		return err
	}

	s.cleanupImages(subject, lesson, question.ImageFile, question.ExplanationImage)
	return nil
}

// ListQuestions returns every question of a subject/lesson
func (s *QuestionService) ListQuestions(ctx context.Context, subject, lesson string) (*dto.QuestionListResponse, error) {
	questions, err := s.questionRepo.ListQuestions(ctx, subject, lesson)
	if err != nil {
		return nil, err
	}

	resp := &dto.QuestionListResponse{
		Subject:   subject,
		Lesson:    lesson,
		Questions: make([]dto.QuestionResponse, 0, len(questions)),
	}
	for i := range questions {
		resp.Questions = append(resp.Questions, dto.ToQuestionResponse(&questions[i], s.storage.ResolveURL))
	}
	return resp, nil
}

func (s *QuestionService) cleanupImages(subject, lesson string, filenames ...string) {
	for _, name := range filenames {
		if name == "" {
			continue
		}
		if err := s.storage.DeleteImage(subject, lesson, name); err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("Failed to delete question image")
		}
	}
}

func validateOptions(options [4]string, correctOption int) error {
	for i, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d cannot be empty", apperrors.ErrInvalidOption, i)
		}
	}
	if correctOption < 0 || correctOption > 3 {
		return fmt.Errorf("%w: correct option must be between 0 and 3", apperrors.ErrInvalidOption)
	}
	return nil
}
