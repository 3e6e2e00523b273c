package models

import (
	"time"
)

// Question defines a question bank item, stored one file per question under
// question_bank/{subject}/{lesson}/questions/{questionId}.json. Question and
// explanation content is either text or an image reference; image fields hold
// bare filenames resolved against the subject/lesson images directory, never
// full paths.
type Question struct {
	ID               string    `json:"id"`
	Subject          string    `json:"subject"`
	Lesson           string    `json:"lesson"`
	Text             string    `json:"text,omitempty"`
	ImageFile        string    `json:"imageFile,omitempty"`
	Options          [4]string `json:"options"`
	CorrectOption    int       `json:"correctOption"` // index into Options, 0-3
	Explanation      string    `json:"explanation,omitempty"`
	ExplanationImage string    `json:"explanationImage,omitempty"`
	PYQ              *PYQInfo  `json:"pyq,omitempty"` // previous-year-question metadata
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PYQInfo records which past exam a question appeared in
type PYQInfo struct {
	Exam  string `json:"exam"`            // e.g. "NEET", "JEE Main"
	Date  string `json:"date,omitempty"`  // e.g. "2023-05-07"
	Shift string `json:"shift,omitempty"` // e.g. "Shift 1"
}
