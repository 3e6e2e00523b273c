package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/pkg/ai"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// AIService exposes the study advisor. The advisor is optional; when no API
// key is configured the endpoints report the feature as unavailable.
type AIService struct {
	advisor ai.Advisor
	logger  zerolog.Logger
}

// NewAIService creates a new AIService. advisor may be nil.
func NewAIService(advisor ai.Advisor, logger zerolog.Logger) *AIService {
	return &AIService{
		advisor: advisor,
		logger:  logger,
	}
}

// StudyTips generates a personalized study plan
func (s *AIService) StudyTips(ctx context.Context, req *dto.StudyTipsRequest) (*dto.AdvisorResponse, error) {
	if s.advisor == nil {
		return nil, apperrors.ErrAIUnavailable
	}

	subject := req.Stream
	if len(req.Subjects) > 0 {
		subject = req.Stream + " (" + strings.Join(req.Subjects, ", ") + ")"
	}

	answer, err := s.advisor.StudyTips(ctx, subject, req.ExamDate, strings.Join(req.WeakAt, ", "))
	if err != nil {
		s.logger.Error().Err(err).Msg("Study tips generation failed")
		return nil, fmt.Errorf("error generating study tips: %w", err)
	}
	return &dto.AdvisorResponse{Answer: answer}, nil
}

// SolveDoubt explains a question or concept
func (s *AIService) SolveDoubt(ctx context.Context, req *dto.DoubtRequest) (*dto.AdvisorResponse, error) {
	if s.advisor == nil {
		return nil, apperrors.ErrAIUnavailable
	}

	answer, err := s.advisor.SolveDoubt(ctx, req.Subject, req.Question)
	if err != nil {
		s.logger.Error().Err(err).Msg("Doubt solving failed")
		return nil, fmt.Errorf("error solving doubt: %w", err)
	}
	return &dto.AdvisorResponse{Answer: answer}, nil
}
