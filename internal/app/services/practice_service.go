package services

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/filestorage"
)

// PracticeService builds the daily practice question set. The selection is
// deterministic for a given date, so every user sees the same set and
// repeated requests within a day are stable.
type PracticeService struct {
	questionRepo *repositories.QuestionRepository
	settingsRepo *repositories.SettingsRepository
	storage      *filestorage.LocalStorage
	logger       zerolog.Logger
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(
	questionRepo *repositories.QuestionRepository,
	settingsRepo *repositories.SettingsRepository,
	storage *filestorage.LocalStorage,
	logger zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		questionRepo: questionRepo,
		settingsRepo: settingsRepo,
		storage:      storage,
		logger:       logger,
	}
}

// DailyPractice returns the practice set for the given day
func (s *PracticeService) DailyPractice(ctx context.Context, day time.Time) (*dto.DailyPracticeResponse, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	size := settings.DailyPracticeSize
	if size <= 0 {
		size = 10
	}

	pool, err := s.collectQuestions(ctx)
	if err != nil {
		return nil, err
	}

	date := day.Format("2006-01-02")
	selected := selectDaily(pool, size, date)

	resp := &dto.DailyPracticeResponse{
		Date:      date,
		Questions: make([]dto.QuestionResponse, 0, len(selected)),
	}
	for i := range selected {
		resp.Questions = append(resp.Questions, dto.ToQuestionResponse(&selected[i], s.storage.ResolveURL))
	}
	return resp, nil
}

// collectQuestions walks the whole question bank. Lessons that fail to list
// are logged and skipped so one bad directory cannot break the daily set.
func (s *PracticeService) collectQuestions(ctx context.Context) ([]models.Question, error) {
	subjects, err := s.questionRepo.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}

	var pool []models.Question
	for _, subject := range subjects {
		lessons, err := s.questionRepo.ListLessons(ctx, subject)
		if err != nil {
			s.logger.Warn().Err(err).Str("subject", subject).Msg("Failed to list lessons")
			continue
		}
		for _, lesson := range lessons {
			questions, err := s.questionRepo.ListQuestions(ctx, subject, lesson)
			if err != nil {
				s.logger.Warn().Err(err).Str("subject", subject).Str("lesson", lesson).Msg("Failed to list questions")
				continue
			}
			pool = append(pool, questions...)
		}
	}
	return pool, nil
}

// selectDaily shuffles the pool with a seed derived from the date and takes
// the first n questions. The pool is sorted by id first so the result does
// not depend on directory walk order.
func selectDaily(pool []models.Question, n int, date string) []models.Question {
	if len(pool) == 0 {
		return nil
	}

	sorted := make([]models.Question, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := fnv.New64a()
	h.Write([]byte(date))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	rng.Shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
