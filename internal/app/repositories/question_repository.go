package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// QuestionRepository handles question bank items, stored one file per
// question under question_bank/{subject}/{lesson}/questions/{questionId}.json
type QuestionRepository struct {
	store *jsonstore.Store
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(store *jsonstore.Store) *QuestionRepository {
	return &QuestionRepository{store: store}
}

func (r *QuestionRepository) path(subject, lesson, id string) string {
	return r.store.Path(questionBankDir, subject, lesson, questionsSubdir, id+".json")
}

func (r *QuestionRepository) lessonDir(subject, lesson string) string {
	return r.store.Path(questionBankDir, subject, lesson, questionsSubdir)
}

// CreateQuestion persists a new question, generating its id and timestamps
func (r *QuestionRepository) CreateQuestion(ctx context.Context, q *models.Question) error {
	now := time.Now()
	q.ID = "Q_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	q.CreatedAt = now
	q.UpdatedAt = now

	if err := jsonstore.Write(r.store, r.path(q.Subject, q.Lesson, q.ID), q); err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}
	return nil
}

// GetQuestion retrieves a question by its subject/lesson scope and id
func (r *QuestionRepository) GetQuestion(ctx context.Context, subject, lesson, id string) (*models.Question, error) {
	var q models.Question
	if err := jsonstore.Load(r.store, r.path(subject, lesson, id), &q); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Warn().Str("subject", subject).Str("lesson", lesson).Str("id", id).Err(err).Msg("Question file failed to parse")
		return nil, apperrors.ErrQuestionNotFound
	}
	return &q, nil
}

// UpdateQuestion applies mutate to a stored question and stamps UpdatedAt
func (r *QuestionRepository) UpdateQuestion(ctx context.Context, subject, lesson, id string, mutate func(*models.Question) error) (*models.Question, error) {
	path := r.path(subject, lesson, id)
	if !r.store.Exists(path) {
		return nil, apperrors.ErrQuestionNotFound
	}
	updated, err := jsonstore.Update(r.store, path, models.Question{}, func(q models.Question) (models.Question, error) {
		if err := mutate(&q); err != nil {
			return models.Question{}, err
		}
		q.UpdatedAt = time.Now()
		return q, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error updating question: %w", err)
	}
	return &updated, nil
}

// DeleteQuestion removes a question record
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, subject, lesson, id string) error {
	path := r.path(subject, lesson, id)
	if !r.store.Exists(path) {
		return apperrors.ErrQuestionNotFound
	}
	return r.store.Remove(path)
}

// ListQuestions returns every question for a subject/lesson, sorted by
// creation time ascending. Unparsable files are logged and skipped.
func (r *QuestionRepository) ListQuestions(ctx context.Context, subject, lesson string) ([]models.Question, error) {
	files, err := r.store.ListFiles(r.lessonDir(subject, lesson))
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}

	var questions []models.Question
	for _, name := range files {
		if filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		var q models.Question
		if err := jsonstore.Load(r.store, r.path(subject, lesson, id), &q); err != nil {
			logger.Warn().Str("subject", subject).Str("lesson", lesson).Str("id", id).Err(err).Msg("Skipping unparsable question file")
			continue
		}
		if q.ID == "" {
			q.ID = id
		}
		questions = append(questions, q)
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.Before(questions[j].CreatedAt)
	})
	return questions, nil
}

// ListSubjects enumerates the subjects present in the question bank
func (r *QuestionRepository) ListSubjects(ctx context.Context) ([]string, error) {
	return r.store.ListDirs(r.store.Path(questionBankDir))
}

// ListLessons enumerates the lessons present for a subject
func (r *QuestionRepository) ListLessons(ctx context.Context, subject string) ([]string, error) {
	return r.store.ListDirs(r.store.Path(questionBankDir, subject))
}
