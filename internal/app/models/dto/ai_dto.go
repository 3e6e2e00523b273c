package dto

// StudyTipsRequest asks the advisor for a study plan
type StudyTipsRequest struct {
	Stream   string   `json:"stream" binding:"required,oneof=NEET JEE"`
	Subjects []string `json:"subjects,omitempty"`
	WeakAt   []string `json:"weakAt,omitempty"`
	ExamDate string   `json:"examDate,omitempty" example:"2027-05-03"`
}

// DoubtRequest asks the advisor to explain a question or concept
type DoubtRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Question string `json:"question" binding:"required,max=4000"`
}

// AdvisorResponse carries the advisor's generated answer
type AdvisorResponse struct {
	Answer string `json:"answer"`
}
