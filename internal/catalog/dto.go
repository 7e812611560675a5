package catalog

import (
	"github.com/google/uuid"

	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description"`
}

type CreateCourseRequest struct {
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	Title         string    `json:"title" validate:"notblank,max=200"`
	Description   string    `json:"description"`
	Price         int64     `json:"price" validate:"gte=0"`
	Duration      int       `json:"duration" validate:"gte=0"`
	Batch         string    `json:"batch" validate:"max=50"`
	RemainingSeat *int      `json:"remaining_seat" validate:"omitempty,gte=0"`
	StartDate     util.Date `json:"start_date"`
	EndDate       util.Date `json:"end_date"`
	DemoURL       string    `json:"demo_url" validate:"omitempty,url"`
}

// UpdateCourseRequest carries a partial update. Seat capacity is absent on
// purpose: seats move only through enrollments.
type UpdateCourseRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Title       *string    `json:"title" validate:"omitempty,notblank,max=200"`
	Description *string    `json:"description"`
	Price       *int64     `json:"price" validate:"omitempty,gte=0"`
	Duration    *int       `json:"duration" validate:"omitempty,gte=0"`
	Batch       *string    `json:"batch" validate:"omitempty,max=50"`
	StartDate   *util.Date `json:"start_date"`
	EndDate     *util.Date `json:"end_date"`
	DemoURL     *string    `json:"demo_url" validate:"omitempty,url"`
}

type CreateModuleRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"required,gte=1"`
}

type CreateLessonRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Order       int    `json:"order" validate:"required,gte=1"`
}

type CreateQuizRequest struct {
	Title        string `json:"title" validate:"notblank,max=200"`
	PassingScore int    `json:"passing_score" validate:"gte=0,lte=100"`
	TimeLimit    *int   `json:"time_limit" validate:"omitempty,gt=0"`
}

type OptionInput struct {
	OptionText string `json:"option_text" validate:"notblank"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionRequest struct {
	QuestionText string        `json:"question_text" validate:"notblank"`
	Options      []OptionInput `json:"options" validate:"required,min=1,max=4,dive"`
}

type OutlineLesson struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Duration int       `json:"duration"`
}

type OutlineModule struct {
	ID      uuid.UUID       `json:"id"`
	Title   string          `json:"title"`
	Order   int             `json:"order"`
	Lessons []OutlineLesson `json:"lessons"`
	QuizID  *uuid.UUID      `json:"quiz_id,omitempty"`
}

type CourseOutline struct {
	CourseID uuid.UUID       `json:"course_id"`
	Title    string          `json:"title"`
	Modules  []OutlineModule `json:"modules"`
}
