package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
)

type ProgressRepository interface {
	WithTx(tx *gorm.DB) ProgressRepository

	MarkLessonCompleted(ctx context.Context, studentID, lessonID uuid.UUID, at time.Time) error
	MarkQuizCompleted(ctx context.Context, studentID, quizID uuid.UUID, at time.Time) error
	CountCourseItems(ctx context.Context, courseID uuid.UUID) (int64, error)
	CountCompletedItems(ctx context.Context, studentID, courseID uuid.UUID) (int64, error)
	CompletedItemIDs(ctx context.Context, studentID, courseID uuid.UUID) (map[uuid.UUID]bool, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) WithTx(tx *gorm.DB) ProgressRepository {
	return &progressRepository{db: tx}
}

func (r *progressRepository) upsert(ctx context.Context, marker *StudentProgress, target string) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: target}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"completed":    true,
				"completed_at": marker.CompletedAt,
			}),
		}).
		Create(marker).Error
}

func (r *progressRepository) MarkLessonCompleted(ctx context.Context, studentID, lessonID uuid.UUID, at time.Time) error {
	return r.upsert(ctx, &StudentProgress{
		StudentID:   studentID,
		LessonID:    &lessonID,
		Completed:   true,
		CompletedAt: &at,
	}, "lesson_id")
}

func (r *progressRepository) MarkQuizCompleted(ctx context.Context, studentID, quizID uuid.UUID, at time.Time) error {
	return r.upsert(ctx, &StudentProgress{
		StudentID:   studentID,
		QuizID:      &quizID,
		Completed:   true,
		CompletedAt: &at,
	}, "quiz_id")
}

func (r *progressRepository) courseModules(ctx context.Context, courseID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&catalog.Module{}).Select("id").Where("course_id = ?", courseID)
}

func (r *progressRepository) courseLessons(ctx context.Context, courseID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&catalog.Lesson{}).Select("id").Where("module_id IN (?)", r.courseModules(ctx, courseID))
}

func (r *progressRepository) courseQuizzes(ctx context.Context, courseID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&catalog.Quiz{}).Select("id").Where("module_id IN (?)", r.courseModules(ctx, courseID))
}

// CountCourseItems counts the lessons of the course plus its modules that
// carry a quiz.
func (r *progressRepository) CountCourseItems(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var lessons, quizzes int64
	if err := r.courseLessons(ctx, courseID).Count(&lessons).Error; err != nil {
		return 0, err
	}
	if err := r.courseQuizzes(ctx, courseID).Count(&quizzes).Error; err != nil {
		return 0, err
	}
	return lessons + quizzes, nil
}

func (r *progressRepository) completedInCourse(ctx context.Context, studentID, courseID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&StudentProgress{}).
		Where("student_id = ? AND completed = ?", studentID, true).
		Where(r.db.WithContext(ctx).
			Where("lesson_id IN (?)", r.courseLessons(ctx, courseID)).
			Or("quiz_id IN (?)", r.courseQuizzes(ctx, courseID)))
}

func (r *progressRepository) CountCompletedItems(ctx context.Context, studentID, courseID uuid.UUID) (int64, error) {
	var n int64
	err := r.completedInCourse(ctx, studentID, courseID).Count(&n).Error
	return n, err
}

// CompletedItemIDs returns the ids of the lessons and quizzes of the course the
// student has completed.
func (r *progressRepository) CompletedItemIDs(ctx context.Context, studentID, courseID uuid.UUID) (map[uuid.UUID]bool, error) {
	var rows []StudentProgress
	if err := r.completedInCourse(ctx, studentID, courseID).Find(&rows).Error; err != nil {
		return nil, err
	}
	done := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if row.LessonID != nil {
			done[*row.LessonID] = true
		}
		if row.QuizID != nil {
			done[*row.QuizID] = true
		}
	}
	return done, nil
}
