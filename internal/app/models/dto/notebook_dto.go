package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// CreateNotebookRequest represents notebook creation data
type CreateNotebookRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// RenameNotebookRequest represents a notebook rename
type RenameNotebookRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AddBookmarkRequest represents a question bookmark to add to a notebook
type AddBookmarkRequest struct {
	QuestionID string   `json:"questionId" binding:"required"`
	Subject    string   `json:"subject" binding:"required"`
	Lesson     string   `json:"lesson" binding:"required"`
	Tags       []string `json:"tags,omitempty"`
}

// BookmarkResponse represents a saved bookmark
type BookmarkResponse struct {
	QuestionID string   `json:"questionId"`
	Subject    string   `json:"subject"`
	Lesson     string   `json:"lesson"`
	Tags       []string `json:"tags,omitempty"`
	AddedAt    string   `json:"addedAt"`
}

// NotebookResponse represents a notebook with its bookmarks
type NotebookResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	BookmarkCount int                `json:"bookmarkCount"`
	Bookmarks     []BookmarkResponse `json:"bookmarks"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

// NotebookListResponse represents a user's notebooks
type NotebookListResponse struct {
	Notebooks []NotebookResponse `json:"notebooks"`
}

// ToNotebookResponse maps a stored notebook to its API representation
func ToNotebookResponse(nb *models.Notebook) NotebookResponse {
	resp := NotebookResponse{
		ID:            nb.ID,
		Name:          nb.Name,
		BookmarkCount: len(nb.Bookmarks),
		Bookmarks:     make([]BookmarkResponse, 0, len(nb.Bookmarks)),
		CreatedAt:     nb.CreatedAt.Format(timeFormat),
		UpdatedAt:     nb.UpdatedAt.Format(timeFormat),
	}
	for _, b := range nb.Bookmarks {
		resp.Bookmarks = append(resp.Bookmarks, BookmarkResponse{
			QuestionID: b.QuestionID,
			Subject:    b.Subject,
			Lesson:     b.Lesson,
			Tags:       b.Tags,
			AddedAt:    b.AddedAt.Format(timeFormat),
		})
	}
	return resp
}

// ToNotebookListResponse maps stored notebooks to the list representation
func ToNotebookListResponse(notebooks []models.Notebook) NotebookListResponse {
	resp := NotebookListResponse{Notebooks: make([]NotebookResponse, 0, len(notebooks))}
	for i := range notebooks {
		resp.Notebooks = append(resp.Notebooks, ToNotebookResponse(&notebooks[i]))
	}
	return resp
}
