package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizResultRepository interface {
	WithTx(tx *gorm.DB) QuizResultRepository

	Create(ctx context.Context, r *QuizResult) error
	GetByStudentAndQuiz(ctx context.Context, studentID, quizID uuid.UUID) (*QuizResult, error)
	GetByStudentAndQuizForUpdate(ctx context.Context, studentID, quizID uuid.UUID) (*QuizResult, error)
	SubmitDraft(ctx context.Context, r *QuizResult) (bool, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, answers Answers) (bool, error)
}

type quizResultRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) WithTx(tx *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: tx}
}

func (r *quizResultRepository) Create(ctx context.Context, result *QuizResult) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(result).Error
}

func (r *quizResultRepository) find(db *gorm.DB, studentID, quizID uuid.UUID) (*QuizResult, error) {
	var result QuizResult
	if err := db.Where("student_id = ? AND quiz_id = ?", studentID, quizID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *quizResultRepository) GetByStudentAndQuiz(ctx context.Context, studentID, quizID uuid.UUID) (*QuizResult, error) {
	return r.find(r.db.WithContext(ctx), studentID, quizID)
}

func (r *quizResultRepository) GetByStudentAndQuizForUpdate(ctx context.Context, studentID, quizID uuid.UUID) (*QuizResult, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), studentID, quizID)
}

// SubmitDraft turns an unsubmitted result into a submission. It reports false
// when the row was already submitted.
func (r *quizResultRepository) SubmitDraft(ctx context.Context, result *QuizResult) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&QuizResult{}).
		Where("id = ? AND submitted = ?", result.ID, false).
		UpdateColumns(map[string]interface{}{
			"selected_options": result.SelectedOptions,
			"result_data":      result.ResultData,
			"obtained_marks":   result.ObtainedMarks,
			"total_marks":      result.TotalMarks,
			"submitted":        true,
			"submission_time":  now,
			"updated_at":       now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	result.Submitted = true
	result.SubmissionTime = &now
	return true, nil
}

func (r *quizResultRepository) UpdateDraft(ctx context.Context, id uuid.UUID, answers Answers) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&QuizResult{}).
		Where("id = ? AND submitted = ?", id, false).
		UpdateColumns(map[string]interface{}{
			"selected_options": datatypes.NewJSONType(answers),
			"updated_at":       time.Now().UTC(),
		})
	return res.RowsAffected > 0, res.Error
}
