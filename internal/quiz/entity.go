package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

// Answers maps a question id to the 1-based order of the chosen option.
type Answers map[string]int

type QuestionResult struct {
	QuestionID      uuid.UUID  `json:"question_id"`
	SelectedOrder   *int       `json:"selected_order"`
	CorrectOrder    int        `json:"correct_order"`
	CorrectOptionID *uuid.UUID `json:"correct_option_id,omitempty"`
	IsCorrect       bool       `json:"is_correct"`
}

type QuizResult struct {
	ID              uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID       uuid.UUID                             `gorm:"type:uuid;not null;uniqueIndex:idx_quiz_results_student_quiz,priority:1" json:"student_id"`
	QuizID          uuid.UUID                             `gorm:"type:uuid;not null;index;uniqueIndex:idx_quiz_results_student_quiz,priority:2" json:"quiz_id"`
	SelectedOptions datatypes.JSONType[Answers]           `gorm:"not null" json:"selected_options"`
	ResultData      datatypes.JSONType[[]QuestionResult] `json:"result_data"`
	ObtainedMarks   int                                   `gorm:"not null;default:0" json:"obtained_marks"`
	TotalMarks      int                                   `gorm:"not null;default:0" json:"total_marks"`
	Submitted       bool                                  `gorm:"not null;default:false" json:"submitted"`
	SubmissionTime  *time.Time                            `json:"submission_time"`
	CreatedAt       time.Time                             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                             `gorm:"autoUpdateTime" json:"updated_at"`

	Student *user.User    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Quiz    *catalog.Quiz `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *QuizResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps submission_time in step with submitted.
func (r *QuizResult) BeforeSave(tx *gorm.DB) error {
	if !r.Submitted {
		r.SubmissionTime = nil
		return nil
	}
	if r.SubmissionTime == nil {
		now := time.Now().UTC()
		r.SubmissionTime = &now
	}
	return nil
}
