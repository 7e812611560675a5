package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

// StudentProgress marks one lesson or one quiz as completed by a student.
// Exactly one of LessonID and QuizID is set.
type StudentProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_student_quiz,priority:1;uniqueIndex:idx_progress_student_lesson,priority:1" json:"student_id"`
	LessonID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_progress_student_lesson,priority:2" json:"lesson_id,omitempty"`
	QuizID      *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_progress_student_quiz,priority:2" json:"quiz_id,omitempty"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Student *user.User      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Lesson  *catalog.Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
	Quiz    *catalog.Quiz   `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

func (p *StudentProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
