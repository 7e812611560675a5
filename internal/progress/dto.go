package progress

import (
	"github.com/google/uuid"

	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
)

type LessonProgress struct {
	LessonID  uuid.UUID `json:"lesson_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
}

type ModuleProgress struct {
	ModuleID       uuid.UUID        `json:"module_id"`
	Title          string           `json:"title"`
	Order          int              `json:"order"`
	CompletedItems int              `json:"completed_items"`
	TotalItems     int              `json:"total_items"`
	Lessons        []LessonProgress `json:"lessons"`
	QuizID         *uuid.UUID       `json:"quiz_id,omitempty"`
	QuizCompleted  bool             `json:"quiz_completed"`
}

type Summary struct {
	EnrollmentID      uuid.UUID         `json:"enrollment_id"`
	CourseID          uuid.UUID         `json:"course_id"`
	Progress          int               `json:"progress"`
	Status            enrollment.Status `json:"status"`
	CertificateIssued bool              `json:"certificate_issued"`
	CompletedItems    int               `json:"completed_items"`
	TotalItems        int               `json:"total_items"`
	Modules           []ModuleProgress  `json:"modules"`
}
