package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
)

// NotebookRepository handles per-user notebook files under
// user-notebooks/{userId}/notebooks.json. All notebook and bookmark state
// for a user lives in one file, so cascade deletes and bookmark upserts are
// single read-modify-write cycles.
type NotebookRepository struct {
	store *jsonstore.Store
}

// NewNotebookRepository creates a new NotebookRepository
func NewNotebookRepository(store *jsonstore.Store) *NotebookRepository {
	return &NotebookRepository{store: store}
}

func (r *NotebookRepository) path(userID string) string {
	return r.store.Path(notebooksDir, userID, notebooksFile)
}

// ListByUser returns all of a user's notebooks. A user with no notebook file
// yet gets an empty list.
func (r *NotebookRepository) ListByUser(ctx context.Context, userID string) ([]models.Notebook, error) {
	return jsonstore.Read(r.store, r.path(userID), []models.Notebook{}), nil
}

// GetByID returns one notebook of a user
func (r *NotebookRepository) GetByID(ctx context.Context, userID, notebookID string) (*models.Notebook, error) {
	notebooks := jsonstore.Read(r.store, r.path(userID), []models.Notebook{})
	for _, nb := range notebooks {
		if nb.ID == notebookID {
			return &nb, nil
		}
	}
	return nil, apperrors.ErrNotebookNotFound
}

// CreateNotebook adds a notebook for a user. Names are unique per user,
// compared case-insensitively.
func (r *NotebookRepository) CreateNotebook(ctx context.Context, userID, name string) (*models.Notebook, error) {
	var created models.Notebook
	_, err := jsonstore.Update(r.store, r.path(userID), []models.Notebook{}, func(notebooks []models.Notebook) ([]models.Notebook, error) {
		for _, nb := range notebooks {
			if strings.EqualFold(nb.Name, name) {
				return nil, apperrors.ErrNotebookNameExists
			}
		}
		now := time.Now()
		created = models.Notebook{
			ID:        uuid.New().String(),
			Name:      name,
			Bookmarks: []models.Bookmark{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return append(notebooks, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RenameNotebook changes a notebook's name, keeping per-user uniqueness
func (r *NotebookRepository) RenameNotebook(ctx context.Context, userID, notebookID, name string) (*models.Notebook, error) {
	var renamed models.Notebook
	_, err := jsonstore.Update(r.store, r.path(userID), []models.Notebook{}, func(notebooks []models.Notebook) ([]models.Notebook, error) {
		idx := -1
		for i, nb := range notebooks {
			if nb.ID == notebookID {
				idx = i
			} else if strings.EqualFold(nb.Name, name) {
				return nil, apperrors.ErrNotebookNameExists
			}
		}
		if idx < 0 {
			return nil, apperrors.ErrNotebookNotFound
		}
		notebooks[idx].Name = name
		notebooks[idx].UpdatedAt = time.Now()
		renamed = notebooks[idx]
		return notebooks, nil
	})
	if err != nil {
		return nil, err
	}
	return &renamed, nil
}

// DeleteNotebook removes a notebook and its bookmark list. Both live in the
// same per-user file, so the cascade is consistent by construction.
func (r *NotebookRepository) DeleteNotebook(ctx context.Context, userID, notebookID string) error {
	_, err := jsonstore.Update(r.store, r.path(userID), []models.Notebook{}, func(notebooks []models.Notebook) ([]models.Notebook, error) {
		filtered := notebooks[:0:0]
		for _, nb := range notebooks {
			if nb.ID != notebookID {
				filtered = append(filtered, nb)
			}
		}
		if len(filtered) == len(notebooks) {
			return nil, apperrors.ErrNotebookNotFound
		}
		return filtered, nil
	})
	return err
}

// UpsertBookmark adds a question reference to a notebook. Re-adding an
// already bookmarked question updates its tags and timestamp instead of
// duplicating the entry.
func (r *NotebookRepository) UpsertBookmark(ctx context.Context, userID, notebookID string, bookmark models.Bookmark) (*models.Bookmark, error) {
	bookmark.AddedAt = time.Now()
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}
	_, err := jsonstore.Update(r.store, r.path(userID), []models.Notebook{}, func(notebooks []models.Notebook) ([]models.Notebook, error) {
		for i := range notebooks {
			if notebooks[i].ID != notebookID {
				continue
			}
			for j := range notebooks[i].Bookmarks {
				if notebooks[i].Bookmarks[j].QuestionID == bookmark.QuestionID {
					notebooks[i].Bookmarks[j] = bookmark
					notebooks[i].UpdatedAt = time.Now()
					return notebooks, nil
				}
			}
			notebooks[i].Bookmarks = append(notebooks[i].Bookmarks, bookmark)
			notebooks[i].UpdatedAt = time.Now()
			return notebooks, nil
		}
		return nil, apperrors.ErrNotebookNotFound
	})
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// DeleteBookmark removes a question reference from a notebook
func (r *NotebookRepository) DeleteBookmark(ctx context.Context, userID, notebookID, questionID string) error {
	_, err := jsonstore.Update(r.store, r.path(userID), []models.Notebook{}, func(notebooks []models.Notebook) ([]models.Notebook, error) {
		for i := range notebooks {
			if notebooks[i].ID != notebookID {
				continue
			}
			bookmarks := notebooks[i].Bookmarks[:0:0]
			for _, b := range notebooks[i].Bookmarks {
				if b.QuestionID != questionID {
					bookmarks = append(bookmarks, b)
				}
			}
			if len(bookmarks) == len(notebooks[i].Bookmarks) {
				return nil, apperrors.ErrBookmarkNotFound
			}
			notebooks[i].Bookmarks = bookmarks
			notebooks[i].UpdatedAt = time.Now()
			return notebooks, nil
		}
		return nil, apperrors.ErrNotebookNotFound
	})
	if err != nil {
		return fmt.Errorf("error deleting bookmark: %w", err)
	}
	return nil
}
