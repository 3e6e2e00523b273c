package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// TestQuestionPayload is a question embedded in a test request or response
type TestQuestionPayload struct {
	QuestionID    string   `json:"questionId" binding:"required"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption int      `json:"correctOption" binding:"min=0"`
	Marks         int      `json:"marks,omitempty"`
}

// CreateTestRequest represents generated test creation data. Chapterwise
// tests fill subject/lesson/questions; full-length tests fill
// stream/subjectQuestions.
type CreateTestRequest struct {
	TestType string `json:"testType" binding:"required,oneof=chapterwise full_length"`
	Title    string `json:"title" binding:"required"`

	Subject   string                `json:"subject,omitempty"`
	Lesson    string                `json:"lesson,omitempty"`
	Questions []TestQuestionPayload `json:"questions,omitempty"`

	Stream           string                           `json:"stream,omitempty"`
	SubjectQuestions map[string][]TestQuestionPayload `json:"subjectQuestions,omitempty"`

	DurationMinutes int `json:"durationMinutes" binding:"min=0"`
}

// UpdateTestQuestionsRequest swaps a test's question content. Code, type,
// subject and stream stay as created.
type UpdateTestQuestionsRequest struct {
	Questions        []TestQuestionPayload            `json:"questions,omitempty"`
	SubjectQuestions map[string][]TestQuestionPayload `json:"subjectQuestions,omitempty"`
}

// TestResponse represents a generated test
type TestResponse struct {
	Code     string `json:"code"`
	TestType string `json:"testType"`
	Title    string `json:"title"`

	Subject   string                `json:"subject,omitempty"`
	Lesson    string                `json:"lesson,omitempty"`
	Questions []TestQuestionPayload `json:"questions,omitempty"`

	Stream           string                           `json:"stream,omitempty"`
	SubjectQuestions map[string][]TestQuestionPayload `json:"subjectQuestions,omitempty"`

	DurationMinutes int    `json:"durationMinutes"`
	QuestionCount   int    `json:"questionCount"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// TestSummaryResponse represents a test in list views, without questions
type TestSummaryResponse struct {
	Code            string `json:"code"`
	TestType        string `json:"testType"`
	Title           string `json:"title"`
	Subject         string `json:"subject,omitempty"`
	Lesson          string `json:"lesson,omitempty"`
	Stream          string `json:"stream,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	QuestionCount   int    `json:"questionCount"`
	CreatedAt       string `json:"createdAt"`
}

// TestListResponse represents all stored tests
type TestListResponse struct {
	Tests []TestSummaryResponse `json:"tests"`
}

func toTestQuestionPayloads(questions []models.TestQuestion) []TestQuestionPayload {
	if questions == nil {
		return nil
	}
	out := make([]TestQuestionPayload, 0, len(questions))
	for _, q := range questions {
		out = append(out, TestQuestionPayload{
			QuestionID:    q.QuestionID,
			Text:          q.Text,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
			Marks:         q.Marks,
		})
	}
	return out
}

// ToTestQuestions maps request payloads to the stored question shape
func ToTestQuestions(payloads []TestQuestionPayload) []models.TestQuestion {
	out := make([]models.TestQuestion, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, models.TestQuestion{
			QuestionID:    p.QuestionID,
			Text:          p.Text,
			Options:       p.Options,
			CorrectOption: p.CorrectOption,
			Marks:         p.Marks,
		})
	}
	return out
}

// ToSubjectQuestions maps full-length request payloads to the stored shape
func ToSubjectQuestions(payloads map[string][]TestQuestionPayload) map[string][]models.TestQuestion {
	out := make(map[string][]models.TestQuestion, len(payloads))
	for subject, qs := range payloads {
		out[subject] = ToTestQuestions(qs)
	}
	return out
}

// ToTestResponse maps a stored test to its full API representation
func ToTestResponse(t *models.GeneratedTest) TestResponse {
	resp := TestResponse{
		Code:            t.Code,
		TestType:        string(t.TestType),
		Title:           t.Title,
		Subject:         t.Subject,
		Lesson:          t.Lesson,
		Questions:       toTestQuestionPayloads(t.Questions),
		Stream:          string(t.Stream),
		DurationMinutes: t.DurationMinutes,
		QuestionCount:   t.QuestionCount(),
		CreatedAt:       t.CreatedAt.Format(timeFormat),
		UpdatedAt:       t.UpdatedAt.Format(timeFormat),
	}
	if t.SubjectQuestions != nil {
		resp.SubjectQuestions = make(map[string][]TestQuestionPayload, len(t.SubjectQuestions))
		for subject, qs := range t.SubjectQuestions {
			resp.SubjectQuestions[subject] = toTestQuestionPayloads(qs)
		}
	}
	return resp
}

// ToTestListResponse maps stored tests to summaries
func ToTestListResponse(tests []models.GeneratedTest) TestListResponse {
	resp := TestListResponse{Tests: make([]TestSummaryResponse, 0, len(tests))}
	for i := range tests {
		t := &tests[i]
		resp.Tests = append(resp.Tests, TestSummaryResponse{
			Code:            t.Code,
			TestType:        string(t.TestType),
			Title:           t.Title,
			Subject:         t.Subject,
			Lesson:          t.Lesson,
			Stream:          string(t.Stream),
			DurationMinutes: t.DurationMinutes,
			QuestionCount:   t.QuestionCount(),
			CreatedAt:       t.CreatedAt.Format(timeFormat),
		})
	}
	return resp
}
