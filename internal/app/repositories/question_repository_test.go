package repositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

func sampleQuestion() *models.Question {
	return &models.Question{
		Subject:       "physics",
		Lesson:        "kinematics",
		Text:          "A body starts from rest with uniform acceleration. What is v after t seconds?",
		Options:       [4]string{"at", "at²", "a/t", "t/a"},
		CorrectOption: 0,
		Explanation:   "v = u + at with u = 0",
	}
}

func TestCreateAndGetQuestion(t *testing.T) {
	repo := NewQuestionRepository(newTestStore(t))
	ctx := context.Background()

	q := sampleQuestion()
	require.NoError(t, repo.CreateQuestion(ctx, q))
	assert.True(t, strings.HasPrefix(q.ID, "Q_"))
	assert.Len(t, q.ID, 14)
	assert.False(t, q.CreatedAt.IsZero())

	got, err := repo.GetQuestion(ctx, "physics", "kinematics", q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, got.Text)
	assert.Equal(t, q.Options, got.Options)
}

func TestGetQuestionNotFound(t *testing.T) {
	repo := NewQuestionRepository(newTestStore(t))
	_, err := repo.GetQuestion(context.Background(), "physics", "kinematics", "Q_missing")
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestGetQuestionCorruptFileReportsNotFound(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuestionRepository(store)

	dir := store.Path("question_bank", "physics", "kinematics", "questions")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Q_bad.json"), []byte("{nope"), 0o644))

	_, err := repo.GetQuestion(context.Background(), "physics", "kinematics", "Q_bad")
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestUpdateQuestion(t *testing.T) {
	repo := NewQuestionRepository(newTestStore(t))
	ctx := context.Background()

	q := sampleQuestion()
	require.NoError(t, repo.CreateQuestion(ctx, q))

	updated, err := repo.UpdateQuestion(ctx, "physics", "kinematics", q.ID, func(u *models.Question) error {
		u.CorrectOption = 1
		u.Explanation = "corrected"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CorrectOption)
	assert.Equal(t, "corrected", updated.Explanation)

	_, err = repo.UpdateQuestion(ctx, "physics", "kinematics", "Q_missing", func(u *models.Question) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	repo := NewQuestionRepository(newTestStore(t))
	ctx := context.Background()

	q := sampleQuestion()
	require.NoError(t, repo.CreateQuestion(ctx, q))

	require.NoError(t, repo.DeleteQuestion(ctx, "physics", "kinematics", q.ID))
	_, err := repo.GetQuestion(ctx, "physics", "kinematics", q.ID)
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)

	err = repo.DeleteQuestion(ctx, "physics", "kinematics", q.ID)
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
}

func TestListQuestionsSkipsCorruptAndBackfillsID(t *testing.T) {
	store := newTestStore(t)
	repo := NewQuestionRepository(store)
	ctx := context.Background()

	first := sampleQuestion()
	require.NoError(t, repo.CreateQuestion(ctx, first))

	dir := store.Path("question_bank", "physics", "kinematics", "questions")
	// A record with no id field inherits its id from the filename
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Q_legacy000001.json"),
		[]byte(`{"subject": "physics", "lesson": "kinematics", "text": "legacy", "options": ["a","b","c","d"], "correctOption": 2}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Q_broken.json"), []byte("}{"), 0o644))

	questions, err := repo.ListQuestions(ctx, "physics", "kinematics")
	require.NoError(t, err)
	require.Len(t, questions, 2)

	ids := []string{questions[0].ID, questions[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, "Q_legacy000001")
}

func TestListQuestionsEmptyLesson(t *testing.T) {
	repo := NewQuestionRepository(newTestStore(t))
	questions, err := repo.ListQuestions(context.Background(), "physics", "never-seen")
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestListSubjectsAndLessons(t *testing.T) {
	repo := NewQuestionRepository(newTestStore(t))
	ctx := context.Background()

	for _, sl := range [][2]string{{"physics", "kinematics"}, {"physics", "optics"}, {"chemistry", "bonding"}} {
		q := sampleQuestion()
		q.Subject, q.Lesson = sl[0], sl[1]
		require.NoError(t, repo.CreateQuestion(ctx, q))
	}

	subjects, err := repo.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chemistry", "physics"}, subjects)

	lessons, err := repo.ListLessons(ctx, "physics")
	require.NoError(t, err)
	assert.Equal(t, []string{"kinematics", "optics"}, lessons)
}
