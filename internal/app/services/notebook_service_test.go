package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

type notebookFixture struct {
	svc          *NotebookService
	questionRepo *repositories.QuestionRepository
}

func newNotebookFixture(t *testing.T) *notebookFixture {
	t.Helper()
	store := newServiceStore(t)
	questionRepo := repositories.NewQuestionRepository(store)
	return &notebookFixture{
		svc:          NewNotebookService(repositories.NewNotebookRepository(store), questionRepo, zerolog.Nop()),
		questionRepo: questionRepo,
	}
}

func (f *notebookFixture) seedQuestion(t *testing.T) *models.Question {
	t.Helper()
	q := &models.Question{
		Subject:       "physics",
		Lesson:        "kinematics",
		Text:          "What is instantaneous velocity?",
		Options:       [4]string{"ds/dt", "dv/dt", "s/t", "v/t"},
		CorrectOption: 0,
	}
	require.NoError(t, f.questionRepo.CreateQuestion(context.Background(), q))
	return q
}

func TestNotebookServiceLifecycle(t *testing.T) {
	f := newNotebookFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateNotebook(ctx, "u1", &dto.CreateNotebookRequest{Name: "Physics Mistakes"})
	require.NoError(t, err)
	assert.Equal(t, "Physics Mistakes", created.Name)
	assert.Equal(t, 0, created.BookmarkCount)

	list, err := f.svc.ListNotebooks(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list.Notebooks, 1)

	renamed, err := f.svc.RenameNotebook(ctx, "u1", created.ID, &dto.RenameNotebookRequest{Name: "Revision"})
	require.NoError(t, err)
	assert.Equal(t, "Revision", renamed.Name)

	require.NoError(t, f.svc.DeleteNotebook(ctx, "u1", created.ID))
	_, err = f.svc.GetNotebook(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotebookNotFound)
}

func TestAddBookmarkVerifiesQuestionExists(t *testing.T) {
	f := newNotebookFixture(t)
	ctx := context.Background()

	nb, err := f.svc.CreateNotebook(ctx, "u1", &dto.CreateNotebookRequest{Name: "Physics Mistakes"})
	require.NoError(t, err)

	_, err = f.svc.AddBookmark(ctx, "u1", nb.ID, &dto.AddBookmarkRequest{
		QuestionID: "Q_ghost",
		Subject:    "physics",
		Lesson:     "kinematics",
	})
	assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)

	q := f.seedQuestion(t)
	bm, err := f.svc.AddBookmark(ctx, "u1", nb.ID, &dto.AddBookmarkRequest{
		QuestionID: q.ID,
		Subject:    q.Subject,
		Lesson:     q.Lesson,
		Tags:       []string{"revise"},
	})
	require.NoError(t, err)
	assert.Equal(t, q.ID, bm.QuestionID)

	got, err := f.svc.GetNotebook(ctx, "u1", nb.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BookmarkCount)

	require.NoError(t, f.svc.RemoveBookmark(ctx, "u1", nb.ID, q.ID))
	err = f.svc.RemoveBookmark(ctx, "u1", nb.ID, q.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookmarkNotFound)
}
