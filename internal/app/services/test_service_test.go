package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
)

func newServiceStore(t *testing.T) *jsonstore.Store {
	t.Helper()
	s, err := jsonstore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func newTestService(t *testing.T) *TestService {
	t.Helper()
	return NewTestService(repositories.NewTestRepository(newServiceStore(t)), zerolog.Nop())
}

func questionPayloads() []dto.TestQuestionPayload {
	return []dto.TestQuestionPayload{
		{QuestionID: "Q_1", Text: "v = ?", Options: []string{"u+at", "u-at"}, CorrectOption: 0, Marks: 4},
		{QuestionID: "Q_2", Text: "s = ?", Options: []string{"ut", "ut+at²/2", "at"}, CorrectOption: 1, Marks: 4},
	}
}

func TestCreateChapterwiseTest(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.CreateTest(context.Background(), &dto.CreateTestRequest{
		TestType:        "chapterwise",
		Title:           "Kinematics Drill",
		Subject:         "physics",
		Lesson:          "kinematics",
		Questions:       questionPayloads(),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Code, 8)
	assert.Equal(t, "chapterwise", resp.TestType)
	assert.Len(t, resp.Questions, 2)
}

func TestCreateFullLengthTest(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.CreateTest(context.Background(), &dto.CreateTestRequest{
		TestType: "full_length",
		Title:    "NEET Mock 1",
		Stream:   "NEET",
		SubjectQuestions: map[string][]dto.TestQuestionPayload{
			"physics":   questionPayloads(),
			"chemistry": questionPayloads(),
		},
		DurationMinutes: 180,
	})
	require.NoError(t, err)
	assert.Equal(t, "NEET", resp.Stream)
	assert.Len(t, resp.SubjectQuestions, 2)
}

func TestCreateTestShapeMismatches(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Chapterwise without subject/lesson
	_, err := svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "chapterwise", Title: "t", Questions: questionPayloads(),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Chapterwise carrying full-length fields
	_, err = svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "chapterwise", Title: "t", Subject: "physics", Lesson: "kinematics",
		Questions: questionPayloads(), Stream: "NEET",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Full-length with a bad stream
	_, err = svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "full_length", Title: "t", Stream: "GRE",
		SubjectQuestions: map[string][]dto.TestQuestionPayload{"physics": questionPayloads()},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Full-length carrying chapterwise fields
	_, err = svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "full_length", Title: "t", Stream: "JEE",
		SubjectQuestions: map[string][]dto.TestQuestionPayload{"physics": questionPayloads()},
		Lesson:           "kinematics",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateTestRejectsBadQuestionContent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Too few options
	_, err := svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "chapterwise", Title: "t", Subject: "physics", Lesson: "kinematics",
		Questions: []dto.TestQuestionPayload{{QuestionID: "Q_1", Text: "?", Options: []string{"only"}, CorrectOption: 0}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Correct option out of range
	_, err = svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "chapterwise", Title: "t", Subject: "physics", Lesson: "kinematics",
		Questions: []dto.TestQuestionPayload{{QuestionID: "Q_1", Text: "?", Options: []string{"a", "b"}, CorrectOption: 2}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetTestByCodeNormalizesInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "chapterwise", Title: "t", Subject: "physics", Lesson: "kinematics",
		Questions: questionPayloads(),
	})
	require.NoError(t, err)

	// Codes are stored uppercase; lookups tolerate whitespace and case
	got, err := svc.GetTestByCode(ctx, "  "+created.Code+" ")
	require.NoError(t, err)
	assert.Equal(t, created.Code, got.Code)
}

func TestUpdateTestQuestionsContentChecks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType: "chapterwise", Title: "t", Subject: "physics", Lesson: "kinematics",
		Questions: questionPayloads(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateTestQuestions(ctx, created.Code, &dto.UpdateTestQuestionsRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.UpdateTestQuestions(ctx, created.Code, &dto.UpdateTestQuestionsRequest{
		Questions:        questionPayloads(),
		SubjectQuestions: map[string][]dto.TestQuestionPayload{"physics": questionPayloads()},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	updated, err := svc.UpdateTestQuestions(ctx, created.Code, &dto.UpdateTestQuestionsRequest{
		Questions: questionPayloads()[:1],
	})
	require.NoError(t, err)
	assert.Len(t, updated.Questions, 1)
	assert.Equal(t, "physics", updated.Subject)
}

func TestDeleteTestMissing(t *testing.T) {
	svc := newTestService(t)
	err := svc.DeleteTest(context.Background(), "NOPE1234")
	assert.ErrorIs(t, err, apperrors.ErrTestNotFound)
}

func TestUpdateTestQuestionsRejectsOtherShape(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTest(ctx, &dto.CreateTestRequest{
		TestType:  "chapterwise",
		Title:     "Kinematics Drill",
		Subject:   "physics",
		Lesson:    "kinematics",
		Questions: questionPayloads(),
	})
	require.NoError(t, err)

	_, err = svc.UpdateTestQuestions(ctx, created.Code, &dto.UpdateTestQuestionsRequest{
		SubjectQuestions: map[string][]dto.TestQuestionPayload{"physics": questionPayloads()},
	})
	assert.ErrorIs(t, err, apperrors.ErrImmutableTestData)

	// Content stays as created
	got, err := svc.GetTestByCode(ctx, created.Code)
	require.NoError(t, err)
	assert.Len(t, got.Questions, 2)
}
