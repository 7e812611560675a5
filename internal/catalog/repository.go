package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var byOrder = clause.OrderByColumn{Column: clause.Column{Name: "order"}}

func orderedByPosition(db *gorm.DB) *gorm.DB {
	return db.Order(byOrder)
}

type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository

	CreateCategory(ctx context.Context, c *Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	CreateCourse(ctx context.Context, c *Course) error
	UpdateCourse(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteCourse(ctx context.Context, id uuid.UUID) (bool, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*Course, error)
	ListCourses(ctx context.Context, categoryID *uuid.UUID) ([]*Course, error)
	SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	GetCourseTree(ctx context.Context, id uuid.UUID) (*Course, error)

	CreateModule(ctx context.Context, m *Module) error
	GetModuleByID(ctx context.Context, id uuid.UUID) (*Module, error)
	CreateLesson(ctx context.Context, l *Lesson) error
	GetLessonByID(ctx context.Context, id uuid.UUID) (*Lesson, error)

	CreateQuiz(ctx context.Context, q *Quiz) error
	GetQuizByID(ctx context.Context, id uuid.UUID) (*Quiz, error)
	GetQuizWithQuestionsAndOptions(ctx context.Context, id uuid.UUID) (*Quiz, error)
	SyncQuestionCount(ctx context.Context, quizID uuid.UUID) error

	CreateQuestion(ctx context.Context, q *Question) error
	GetQuestionByID(ctx context.Context, id uuid.UUID) (*Question, error)
	ReplaceOptions(ctx context.Context, q *Question) error
	DeleteQuestion(ctx context.Context, id uuid.UUID) (bool, error)

	CourseIDForModule(ctx context.Context, moduleID uuid.UUID) (uuid.UUID, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	return &catalogRepository{db: tx}
}

func first[T any](db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var out T
	if err := db.Where(query, args...).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, c *Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	return first[Category](r.db.WithContext(ctx), "id = ?", id)
}

func (r *catalogRepository) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	return first[Category](r.db.WithContext(ctx), "name = ?", name)
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) CreateCourse(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *catalogRepository) UpdateCourse(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&Course{ID: id}).
		Omit("remaining_seat").
		Updates(fields).Error
}

func (r *catalogRepository) DeleteCourse(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Course{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *catalogRepository) GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	return first[Course](r.db.WithContext(ctx), "id = ?", id)
}

func (r *catalogRepository) GetCourseBySlug(ctx context.Context, slug string) (*Course, error) {
	return first[Course](r.db.WithContext(ctx), "slug = ?", slug)
}

func (r *catalogRepository) ListCourses(ctx context.Context, categoryID *uuid.UUID) ([]*Course, error) {
	var courses []*Course
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *catalogRepository) SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Model(&Course{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error
	return slugs, err
}

// GetCourseTree loads a course with its modules, lessons and quizzes, each
// level ordered by position.
func (r *catalogRepository) GetCourseTree(ctx context.Context, id uuid.UUID) (*Course, error) {
	db := r.db.WithContext(ctx).
		Preload("Modules", orderedByPosition).
		Preload("Modules.Lessons", orderedByPosition).
		Preload("Modules.Quiz")
	return first[Course](db, "id = ?", id)
}

func (r *catalogRepository) CreateModule(ctx context.Context, m *Module) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error
}

func (r *catalogRepository) GetModuleByID(ctx context.Context, id uuid.UUID) (*Module, error) {
	return first[Module](r.db.WithContext(ctx), "id = ?", id)
}

func (r *catalogRepository) CreateLesson(ctx context.Context, l *Lesson) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *catalogRepository) GetLessonByID(ctx context.Context, id uuid.UUID) (*Lesson, error) {
	return first[Lesson](r.db.WithContext(ctx), "id = ?", id)
}

func (r *catalogRepository) CreateQuiz(ctx context.Context, q *Quiz) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(q).Error
}

func (r *catalogRepository) GetQuizByID(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	return first[Quiz](r.db.WithContext(ctx), "id = ?", id)
}

// GetQuizWithQuestionsAndOptions issues three queries: the quiz, all of its
// questions, and all of their options.
func (r *catalogRepository) GetQuizWithQuestionsAndOptions(ctx context.Context, id uuid.UUID) (*Quiz, error) {
	db := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Questions.Options", orderedByPosition)
	return first[Quiz](db, "id = ?", id)
}

func (r *catalogRepository) SyncQuestionCount(ctx context.Context, quizID uuid.UUID) error {
	count := r.db.WithContext(ctx).Model(&Question{}).Select("count(*)").Where("quiz_id = ?", quizID)
	return r.db.WithContext(ctx).
		Model(&Quiz{}).
		Where("id = ?", quizID).
		UpdateColumn("total_questions", count).Error
}

func (r *catalogRepository) CreateQuestion(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *catalogRepository) GetQuestionByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	return first[Question](r.db.WithContext(ctx).Preload("Options", orderedByPosition), "id = ?", id)
}

// ReplaceOptions rewrites the question text and swaps its options for q.Options.
func (r *catalogRepository) ReplaceOptions(ctx context.Context, q *Question) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("question_id = ?", q.ID).Delete(&Option{}).Error; err != nil {
		return err
	}
	if err := db.Model(&Question{ID: q.ID}).Updates(map[string]interface{}{
		"question_text":        q.QuestionText,
		"correct_option_index": q.CorrectOptionIndex,
	}).Error; err != nil {
		return err
	}
	for i := range q.Options {
		q.Options[i].ID = uuid.Nil
		q.Options[i].QuestionID = q.ID
	}
	return db.Create(&q.Options).Error
}

func (r *catalogRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Question{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *catalogRepository) CourseIDForModule(ctx context.Context, moduleID uuid.UUID) (uuid.UUID, error) {
	m, err := r.GetModuleByID(ctx, moduleID)
	if err != nil || m == nil {
		return uuid.Nil, err
	}
	return m.CourseID, nil
}
