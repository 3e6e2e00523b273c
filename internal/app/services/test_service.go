package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

// TestService handles generated test pages
type TestService struct {
	testRepo *repositories.TestRepository
	logger   zerolog.Logger
}

// NewTestService creates a new TestService
func NewTestService(testRepo *repositories.TestRepository, logger zerolog.Logger) *TestService {
	return &TestService{
		testRepo: testRepo,
		logger:   logger,
	}
}

// CreateTest validates and stores a new generated test. Chapterwise tests
// carry subject/lesson/questions, full-length tests carry
// stream/subjectQuestions; fields of the other shape are rejected.
func (s *TestService) CreateTest(ctx context.Context, req *dto.CreateTestRequest) (*dto.TestResponse, error) {
	testType := models.TestType(req.TestType)

	test := &models.GeneratedTest{
		TestType:        testType,
		Title:           strings.TrimSpace(req.Title),
		DurationMinutes: req.DurationMinutes,
	}

	switch testType {
	case models.TestTypeChapterwise:
		if req.Subject == "" || req.Lesson == "" {
			return nil, fmt.Errorf("%w: chapterwise tests require subject and lesson", apperrors.ErrValidationFailed)
		}
		if len(req.Questions) == 0 {
			return nil, fmt.Errorf("%w: chapterwise tests require questions", apperrors.ErrValidationFailed)
		}
		if req.Stream != "" || len(req.SubjectQuestions) > 0 {
			return nil, fmt.Errorf("%w: chapterwise tests cannot carry full-length fields", apperrors.ErrValidationFailed)
		}
		test.Subject = req.Subject
		test.Lesson = req.Lesson
		test.Questions = dto.ToTestQuestions(req.Questions)

	case models.TestTypeFullLength:
		stream := models.Stream(req.Stream)
		if stream != models.StreamNEET && stream != models.StreamJEE {
			return nil, fmt.Errorf("%w: full-length tests require stream NEET or JEE", apperrors.ErrValidationFailed)
		}
		if len(req.SubjectQuestions) == 0 {
			return nil, fmt.Errorf("%w: full-length tests require subjectQuestions", apperrors.ErrValidationFailed)
		}
		if req.Subject != "" || req.Lesson != "" || len(req.Questions) > 0 {
			return nil, fmt.Errorf("%w: full-length tests cannot carry chapterwise fields", apperrors.ErrValidationFailed)
		}
		test.Stream = stream
		test.SubjectQuestions = dto.ToSubjectQuestions(req.SubjectQuestions)

	default:
		return nil, fmt.Errorf("%w: unknown test type %q", apperrors.ErrValidationFailed, req.TestType)
	}

	if err := validateTestQuestions(test); err != nil {
		return nil, err
	}

	if err := s.testRepo.CreateTest(ctx, test); err != nil {
		return nil, err
	}

	resp := dto.ToTestResponse(test)
	return &resp, nil
}

// GetTestByCode looks a test up across both type directories
func (s *TestService) GetTestByCode(ctx context.Context, code string) (*dto.TestResponse, error) {
	test, err := s.testRepo.GetTestByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	resp := dto.ToTestResponse(test)
	return &resp, nil
}

// UpdateTestQuestions swaps a test's question content. The code, type,
// subject, lesson and stream stay as created.
func (s *TestService) UpdateTestQuestions(ctx context.Context, code string, req *dto.UpdateTestQuestionsRequest) (*dto.TestResponse, error) {
	if len(req.Questions) == 0 && len(req.SubjectQuestions) == 0 {
		return nil, fmt.Errorf("%w: no question content provided", apperrors.ErrValidationFailed)
	}
	if len(req.Questions) > 0 && len(req.SubjectQuestions) > 0 {
		return nil, fmt.Errorf("%w: provide either questions or subjectQuestions, not both", apperrors.ErrValidationFailed)
	}

	test, err := s.testRepo.UpdateTestQuestions(ctx, strings.ToUpper(strings.TrimSpace(code)),
		dto.ToTestQuestions(req.Questions), dto.ToSubjectQuestions(req.SubjectQuestions))
	if err != nil {
		return nil, err
	}
	resp := dto.ToTestResponse(test)
	return &resp, nil
}

// DeleteTest removes a generated test
func (s *TestService) DeleteTest(ctx context.Context, code string) error {
	return s.testRepo.DeleteTest(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// ListTests returns summaries of every stored test, newest first
func (s *TestService) ListTests(ctx context.Context) (*dto.TestListResponse, error) {
	tests, err := s.testRepo.ListAllTests(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTestListResponse(tests)
	return &resp, nil
}

func validateTestQuestions(test *models.GeneratedTest) error {
	check := func(qs []models.TestQuestion) error {
		for _, q := range qs {
			if len(q.Options) < 2 {
				return fmt.Errorf("%w: question %s needs at least two options", apperrors.ErrValidationFailed, q.QuestionID)
			}
			if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
				return fmt.Errorf("%w: question %s correct option out of range", apperrors.ErrValidationFailed, q.QuestionID)
			}
		}
		return nil
	}

	if err := check(test.Questions); err != nil {
		return err
	}
	for _, qs := range test.SubjectQuestions {
		if err := check(qs); err != nil {
			return err
		}
	}
	return nil
}
