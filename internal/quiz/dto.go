package quiz

import "github.com/google/uuid"

type SubmitRequest struct {
	SelectedOptions Answers `json:"selected_options" validate:"required"`
}

type SubmissionResult struct {
	QuizResultID  uuid.UUID        `json:"quiz_result_id"`
	ObtainedMarks int              `json:"obtained_marks"`
	TotalMarks    int              `json:"total_marks"`
	Passed        bool             `json:"passed"`
	Submitted     bool             `json:"submitted"`
	ResultData    []QuestionResult `json:"result_data"`
}

type StudentOption struct {
	Order      int    `json:"order"`
	OptionText string `json:"option_text"`
}

type StudentQuestion struct {
	ID           uuid.UUID       `json:"id"`
	QuestionText string          `json:"question_text"`
	Options      []StudentOption `json:"options"`
}

// StudentQuizView is a quiz as shown to a student: no correctness flags.
type StudentQuizView struct {
	ID             uuid.UUID         `json:"id"`
	Title          string            `json:"title"`
	TotalQuestions int               `json:"total_questions"`
	PassingScore   int               `json:"passing_score"`
	TimeLimit      int               `json:"time_limit"`
	Questions      []StudentQuestion `json:"questions"`
}
