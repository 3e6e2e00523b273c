package models

import (
	"time"
)

// TestType discriminates the two generated-test shapes
type TestType string

const (
	TestTypeChapterwise TestType = "chapterwise"
	TestTypeFullLength  TestType = "full_length"
)

// GeneratedTest is the discriminated union over test shape, stored one file
// per test under test_pages/{chapterwise|full_length}/{code}.json. Code,
// Subject, Lesson, Stream and TestType are immutable after creation; only
// question content may change.
type GeneratedTest struct {
	Code      string   `json:"code"` // random 8-char uppercase alphanumeric, unique per test
	TestType  TestType `json:"testType"`
	Title     string   `json:"title"`

	// Chapterwise fields
	Subject   string         `json:"subject,omitempty"`
	Lesson    string         `json:"lesson,omitempty"`
	Questions []TestQuestion `json:"questions,omitempty"`

	// Full-length fields
	Stream           Stream                    `json:"stream,omitempty"`
	SubjectQuestions map[string][]TestQuestion `json:"subjectQuestions,omitempty"`

	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TestQuestion is a question embedded in a generated test
type TestQuestion struct {
	QuestionID    string   `json:"questionId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	Marks         int      `json:"marks"`
}

// QuestionCount returns the total number of questions across both shapes.
func (t *GeneratedTest) QuestionCount() int {
	if t.TestType == TestTypeFullLength {
		n := 0
		for _, qs := range t.SubjectQuestions {
			n += len(qs)
		}
		return n
	}
	return len(t.Questions)
}
