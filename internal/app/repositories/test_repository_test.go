package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

func sampleQuestions() []models.TestQuestion {
	return []models.TestQuestion{
		{QuestionID: "Q_1", Text: "v = ?", Options: []string{"u+at", "u-at", "at", "u"}, CorrectOption: 0, Marks: 4},
		{QuestionID: "Q_2", Text: "s = ?", Options: []string{"ut", "ut+at²/2"}, CorrectOption: 1, Marks: 4},
	}
}

func TestCreateAndGetChapterwiseTest(t *testing.T) {
	repo := NewTestRepository(newTestStore(t))
	ctx := context.Background()

	test := &models.GeneratedTest{
		TestType:        models.TestTypeChapterwise,
		Title:           "Kinematics Drill",
		Subject:         "physics",
		Lesson:          "kinematics",
		Questions:       sampleQuestions(),
		DurationMinutes: 30,
	}
	require.NoError(t, repo.CreateTest(ctx, test))
	assert.Len(t, test.Code, 8)
	assert.False(t, test.CreatedAt.IsZero())

	got, err := repo.GetTestByCode(ctx, test.Code)
	require.NoError(t, err)
	assert.Equal(t, models.TestTypeChapterwise, got.TestType)
	assert.Equal(t, "Kinematics Drill", got.Title)
	assert.Len(t, got.Questions, 2)
	assert.Equal(t, 2, got.QuestionCount())
}

func TestGetTestByCodeNotFound(t *testing.T) {
	repo := NewTestRepository(newTestStore(t))
	_, err := repo.GetTestByCode(context.Background(), "NOPE1234")
	assert.ErrorIs(t, err, apperrors.ErrTestNotFound)
}

func TestGetTestInfersTypeFromDirectory(t *testing.T) {
	store := newTestStore(t)
	repo := NewTestRepository(store)
	ctx := context.Background()

	// A record written without its testType field still resolves, with the
	// type inferred from the directory it sits in.
	dir := store.Path("test_pages", "full_length")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	raw := `{"title": "Mock 1", "subjectQuestions": {"physics": [{"questionId": "Q_1", "options": ["a","b"], "correctOption": 0}]}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAAA1111.json"), []byte(raw), 0o644))

	got, err := repo.GetTestByCode(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, models.TestTypeFullLength, got.TestType)
	assert.Equal(t, "AAAA1111", got.Code)
	assert.Equal(t, 1, got.QuestionCount())
}

func TestUpdateTestQuestionsPreservesIdentity(t *testing.T) {
	repo := NewTestRepository(newTestStore(t))
	ctx := context.Background()

	test := &models.GeneratedTest{
		TestType:  models.TestTypeChapterwise,
		Title:     "Kinematics Drill",
		Subject:   "physics",
		Lesson:    "kinematics",
		Questions: sampleQuestions(),
	}
	require.NoError(t, repo.CreateTest(ctx, test))

	replacement := []models.TestQuestion{
		{QuestionID: "Q_9", Text: "a = ?", Options: []string{"dv/dt", "ds/dt"}, CorrectOption: 0, Marks: 4},
	}
	updated, err := repo.UpdateTestQuestions(ctx, test.Code, replacement, nil)
	require.NoError(t, err)
	assert.Equal(t, test.Code, updated.Code)
	assert.Equal(t, "physics", updated.Subject)
	assert.Len(t, updated.Questions, 1)
	assert.True(t, updated.UpdatedAt.After(test.UpdatedAt) || updated.UpdatedAt.Equal(test.UpdatedAt))
}

func TestDeleteTest(t *testing.T) {
	repo := NewTestRepository(newTestStore(t))
	ctx := context.Background()

	test := &models.GeneratedTest{TestType: models.TestTypeChapterwise, Title: "t", Subject: "physics", Lesson: "units"}
	require.NoError(t, repo.CreateTest(ctx, test))

	require.NoError(t, repo.DeleteTest(ctx, test.Code))
	_, err := repo.GetTestByCode(ctx, test.Code)
	assert.ErrorIs(t, err, apperrors.ErrTestNotFound)

	err = repo.DeleteTest(ctx, test.Code)
	assert.ErrorIs(t, err, apperrors.ErrTestNotFound)
}

func TestListAllTestsSkipsCorruptAndSortsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	repo := NewTestRepository(store)
	ctx := context.Background()

	first := &models.GeneratedTest{TestType: models.TestTypeChapterwise, Title: "first", Subject: "physics", Lesson: "units"}
	require.NoError(t, repo.CreateTest(ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := &models.GeneratedTest{TestType: models.TestTypeFullLength, Title: "second", Stream: models.StreamNEET}
	require.NoError(t, repo.CreateTest(ctx, second))

	// A corrupt neighbour must not break the listing
	dir := store.Path("test_pages", "chapterwise")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BROKEN01.json"), []byte("{oops"), 0o644))

	tests, err := repo.ListAllTests(ctx)
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, "second", tests[0].Title)
	assert.Equal(t, "first", tests[1].Title)
}
