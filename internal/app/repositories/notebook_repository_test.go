package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
)

func newTestStore(t *testing.T) *jsonstore.Store {
	t.Helper()
	s, err := jsonstore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNotebookLifecycle(t *testing.T) {
	repo := NewNotebookRepository(newTestStore(t))
	ctx := context.Background()

	notebooks, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, notebooks)

	nb, err := repo.CreateNotebook(ctx, "u1", "Physics Mistakes")
	require.NoError(t, err)
	assert.NotEmpty(t, nb.ID)
	assert.Equal(t, "Physics Mistakes", nb.Name)
	assert.Empty(t, nb.Bookmarks)

	got, err := repo.GetByID(ctx, "u1", nb.ID)
	require.NoError(t, err)
	assert.Equal(t, nb.ID, got.ID)

	renamed, err := repo.RenameNotebook(ctx, "u1", nb.ID, "Physics Revision")
	require.NoError(t, err)
	assert.Equal(t, "Physics Revision", renamed.Name)

	require.NoError(t, repo.DeleteNotebook(ctx, "u1", nb.ID))
	_, err = repo.GetByID(ctx, "u1", nb.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotebookNotFound)
}

func TestCreateNotebookNameUniquePerUserCaseInsensitive(t *testing.T) {
	repo := NewNotebookRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.CreateNotebook(ctx, "u1", "Physics Mistakes")
	require.NoError(t, err)

	_, err = repo.CreateNotebook(ctx, "u1", "physics mistakes")
	assert.ErrorIs(t, err, apperrors.ErrNotebookNameExists)

	// A different user can reuse the name
	_, err = repo.CreateNotebook(ctx, "u2", "Physics Mistakes")
	assert.NoError(t, err)
}

func TestRenameNotebookChecksNameAgainstSiblings(t *testing.T) {
	repo := NewNotebookRepository(newTestStore(t))
	ctx := context.Background()

	first, err := repo.CreateNotebook(ctx, "u1", "Alpha")
	require.NoError(t, err)
	_, err = repo.CreateNotebook(ctx, "u1", "Beta")
	require.NoError(t, err)

	_, err = repo.RenameNotebook(ctx, "u1", first.ID, "beta")
	assert.ErrorIs(t, err, apperrors.ErrNotebookNameExists)

	_, err = repo.RenameNotebook(ctx, "u1", "missing-id", "Gamma")
	assert.ErrorIs(t, err, apperrors.ErrNotebookNotFound)
}

func TestUpsertBookmark(t *testing.T) {
	repo := NewNotebookRepository(newTestStore(t))
	ctx := context.Background()

	nb, err := repo.CreateNotebook(ctx, "u1", "Physics Mistakes")
	require.NoError(t, err)

	bm, err := repo.UpsertBookmark(ctx, "u1", nb.ID, models.Bookmark{
		QuestionID: "Q_123",
		Subject:    "physics",
		Lesson:     "kinematics",
		Tags:       []string{"revise"},
	})
	require.NoError(t, err)
	assert.False(t, bm.AddedAt.IsZero())

	// Re-adding the same question replaces the entry instead of duplicating
	_, err = repo.UpsertBookmark(ctx, "u1", nb.ID, models.Bookmark{
		QuestionID: "Q_123",
		Subject:    "physics",
		Lesson:     "kinematics",
		Tags:       []string{"hard", "revise"},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "u1", nb.ID)
	require.NoError(t, err)
	require.Len(t, got.Bookmarks, 1)
	assert.Equal(t, []string{"hard", "revise"}, got.Bookmarks[0].Tags)
}

func TestUpsertBookmarkMissingNotebook(t *testing.T) {
	repo := NewNotebookRepository(newTestStore(t))
	_, err := repo.UpsertBookmark(context.Background(), "u1", "no-such-notebook", models.Bookmark{QuestionID: "Q_1"})
	assert.ErrorIs(t, err, apperrors.ErrNotebookNotFound)
}

func TestDeleteBookmark(t *testing.T) {
	repo := NewNotebookRepository(newTestStore(t))
	ctx := context.Background()

	nb, err := repo.CreateNotebook(ctx, "u1", "Physics Mistakes")
	require.NoError(t, err)
	_, err = repo.UpsertBookmark(ctx, "u1", nb.ID, models.Bookmark{QuestionID: "Q_123"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBookmark(ctx, "u1", nb.ID, "Q_123"))

	got, err := repo.GetByID(ctx, "u1", nb.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Bookmarks)

	err = repo.DeleteBookmark(ctx, "u1", nb.ID, "Q_123")
	assert.ErrorIs(t, err, apperrors.ErrBookmarkNotFound)
}
