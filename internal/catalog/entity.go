package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

const (
	DefaultSeatCapacity   = 100
	DefaultQuizTimeLimit  = 10 * 60
	MaxOptionsPerQuestion = 4
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Courses []Course `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

type Course struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title"`
	Slug          string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         int64     `gorm:"not null" json:"price"`
	Duration      int       `gorm:"not null" json:"duration"`
	Batch         string    `gorm:"type:varchar(50)" json:"batch"`
	RemainingSeat int       `gorm:"not null;check:chk_courses_remaining_seat,remaining_seat >= 0" json:"remaining_seat"`
	StartDate     util.Date `gorm:"type:date" json:"start_date"`
	EndDate       util.Date `gorm:"type:date" json:"end_date"`
	DemoURL       string    `gorm:"type:varchar(500)" json:"demo_url,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

type Module struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_modules_course_order,priority:1" json:"course_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"not null;uniqueIndex:idx_modules_course_order,priority:2" json:"order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
	Quiz    *Quiz    `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"quiz,omitempty"`
}

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lessons_module_order,priority:1" json:"module_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text" json:"content,omitempty"`
	Duration    int       `gorm:"not null;default:0" json:"duration"`
	Order       int       `gorm:"not null;uniqueIndex:idx_lessons_module_order,priority:2" json:"order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Quiz struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"module_id"`
	Title          string    `gorm:"type:varchar(200);not null" json:"title"`
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	PassingScore   int       `gorm:"not null" json:"passing_score"`
	TimeLimit      int       `gorm:"not null" json:"time_limit"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID       uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	// CorrectOptionIndex mirrors the order of the correct option for display.
	// Grading reads Option.IsCorrect.
	CorrectOptionIndex int       `gorm:"not null;default:0" json:"correct_option_index"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

type Option struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_options_question_order,priority:1" json:"question_id"`
	OptionText string    `gorm:"type:text;not null" json:"option_text"`
	Order      int       `gorm:"not null;uniqueIndex:idx_options_question_order,priority:2" json:"order"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error { return ensureID(&c.ID) }
func (c *Course) BeforeCreate(tx *gorm.DB) error   { return ensureID(&c.ID) }
func (m *Module) BeforeCreate(tx *gorm.DB) error   { return ensureID(&m.ID) }
func (l *Lesson) BeforeCreate(tx *gorm.DB) error   { return ensureID(&l.ID) }
func (q *Quiz) BeforeCreate(tx *gorm.DB) error     { return ensureID(&q.ID) }
func (q *Question) BeforeCreate(tx *gorm.DB) error { return ensureID(&q.ID) }
func (o *Option) BeforeCreate(tx *gorm.DB) error   { return ensureID(&o.ID) }

func ensureID(id *uuid.UUID) error {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	return nil
}

// OptionAt returns the option with the given 1-based order.
func (q *Question) OptionAt(order int) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].Order == order {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// CorrectOption returns the option flagged as correct.
func (q *Question) CorrectOption() (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i], true
		}
	}
	return nil, false
}
