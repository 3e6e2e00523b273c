package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// PYQPayload records which past exam a question appeared in
type PYQPayload struct {
	Exam  string `json:"exam" binding:"required"`
	Date  string `json:"date,omitempty"`
	Shift string `json:"shift,omitempty"`
}

// CreateQuestionRequest represents question bank creation data. Question and
// explanation images are uploaded as multipart parts alongside this payload.
type CreateQuestionRequest struct {
	Subject       string      `json:"subject" form:"subject" binding:"required"`
	Lesson        string      `json:"lesson" form:"lesson" binding:"required"`
	Text          string      `json:"text" form:"text"`
	Options       [4]string   `json:"options" form:"options" binding:"required"`
	CorrectOption int         `json:"correctOption" form:"correctOption" binding:"min=0,max=3"`
	Explanation   string      `json:"explanation" form:"explanation"`
	PYQ           *PYQPayload `json:"pyq,omitempty"`
}

// UpdateQuestionRequest represents question content updates. Subject and
// lesson locate the question and cannot change.
type UpdateQuestionRequest struct {
	Text          *string     `json:"text,omitempty"`
	Options       *[4]string  `json:"options,omitempty"`
	CorrectOption *int        `json:"correctOption,omitempty" binding:"omitempty,min=0,max=3"`
	Explanation   *string     `json:"explanation,omitempty"`
	PYQ           *PYQPayload `json:"pyq,omitempty"`
}

// QuestionResponse represents a question bank item. Image fields carry URLs
// resolved against the static image route.
type QuestionResponse struct {
	ID               string      `json:"id"`
	Subject          string      `json:"subject"`
	Lesson           string      `json:"lesson"`
	Text             string      `json:"text,omitempty"`
	ImageURL         string      `json:"imageUrl,omitempty"`
	Options          [4]string   `json:"options"`
	CorrectOption    int         `json:"correctOption"`
	Explanation      string      `json:"explanation,omitempty"`
	ExplanationImage string      `json:"explanationImageUrl,omitempty"`
	PYQ              *PYQPayload `json:"pyq,omitempty"`
	CreatedAt        string      `json:"createdAt"`
	UpdatedAt        string      `json:"updatedAt"`
}

// QuestionListResponse represents the questions of one subject/lesson
type QuestionListResponse struct {
	Subject   string             `json:"subject"`
	Lesson    string             `json:"lesson"`
	Questions []QuestionResponse `json:"questions"`
}

// DailyPracticeResponse represents the deterministic daily question set
type DailyPracticeResponse struct {
	Date      string             `json:"date" example:"2026-09-01"`
	Questions []QuestionResponse `json:"questions"`
}

// ToQuestionResponse maps a stored question to its API representation.
// resolveURL turns a bare image filename into a servable URL.
func ToQuestionResponse(q *models.Question, resolveURL func(subject, lesson, filename string) string) QuestionResponse {
	resp := QuestionResponse{
		ID:            q.ID,
		Subject:       q.Subject,
		Lesson:        q.Lesson,
		Text:          q.Text,
		Options:       q.Options,
		CorrectOption: q.CorrectOption,
		Explanation:   q.Explanation,
		CreatedAt:     q.CreatedAt.Format(timeFormat),
		UpdatedAt:     q.UpdatedAt.Format(timeFormat),
	}
	if q.ImageFile != "" && resolveURL != nil {
		resp.ImageURL = resolveURL(q.Subject, q.Lesson, q.ImageFile)
	}
	if q.ExplanationImage != "" && resolveURL != nil {
		resp.ExplanationImage = resolveURL(q.Subject, q.Lesson, q.ExplanationImage)
	}
	if q.PYQ != nil {
		resp.PYQ = &PYQPayload{Exam: q.PYQ.Exam, Date: q.PYQ.Date, Shift: q.PYQ.Shift}
	}
	return resp
}
