package enrollment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
)

type EnrollmentRepository interface {
	WithTx(tx *gorm.DB) EnrollmentRepository

	Create(ctx context.Context, e *Enrollment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*Enrollment, error)
	GetByStudentAndCourseForUpdate(ctx context.Context, studentID, courseID uuid.UUID) (*Enrollment, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, activeOnly bool) ([]*Enrollment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Enrollment, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	TakeSeat(ctx context.Context, courseID uuid.UUID) (bool, error)
	ReleaseSeat(ctx context.Context, courseID uuid.UUID) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) WithTx(tx *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: tx}
}

func (r *enrollmentRepository) Create(ctx context.Context, e *Enrollment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *enrollmentRepository) find(db *gorm.DB, query string, args ...interface{}) (*Enrollment, error) {
	var e Enrollment
	if err := db.Where(query, args...).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *enrollmentRepository) locked(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Enrollment, error) {
	return r.find(r.db.WithContext(ctx), "id = ?", id)
}

func (r *enrollmentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Enrollment, error) {
	return r.find(r.locked(ctx), "id = ?", id)
}

func (r *enrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*Enrollment, error) {
	return r.find(r.db.WithContext(ctx), "student_id = ? AND course_id = ?", studentID, courseID)
}

func (r *enrollmentRepository) GetByStudentAndCourseForUpdate(ctx context.Context, studentID, courseID uuid.UUID) (*Enrollment, error) {
	return r.find(r.locked(ctx), "student_id = ? AND course_id = ?", studentID, courseID)
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID, activeOnly bool) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	q := r.db.WithContext(ctx).
		Preload("Course").
		Where("student_id = ?", studentID).
		Order("enrollment_date DESC")
	if activeOnly {
		q = q.Where("status = ? AND payment_status = ?", StatusActive, PaymentSuccess)
	}
	if err := q.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("enrollment_date ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Enrollment{ID: id}).Updates(fields).Error
}

// TakeSeat decrements the course seat counter only while it is positive. It
// reports false when no seat was available.
func (r *enrollmentRepository) TakeSeat(ctx context.Context, courseID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&catalog.Course{}).
		Where("id = ? AND remaining_seat > 0", courseID).
		UpdateColumn("remaining_seat", gorm.Expr("remaining_seat - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *enrollmentRepository) ReleaseSeat(ctx context.Context, courseID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&catalog.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("remaining_seat", gorm.Expr("remaining_seat + 1")).Error
}
