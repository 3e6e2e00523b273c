package models

import (
	"time"
)

// Notebook defines a user's notebook of bookmarked questions, stored per
// user in user-notebooks/{userId}/notebooks.json. Notebook names are unique
// per user, compared case-insensitively.
type Notebook struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Bookmarks []Bookmark `json:"bookmarks"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Bookmark is a saved reference to a question bank item, unique per
// (notebook, questionId). Re-adding an existing question updates its tags
// and timestamp instead of duplicating.
type Bookmark struct {
	QuestionID string    `json:"questionId"`
	Subject    string    `json:"subject"`
	Lesson     string    `json:"lesson"`
	Tags       []string  `json:"tags"`
	AddedAt    time.Time `json:"addedAt"`
}
