package enrollment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

type EnrollmentService interface {
	Enroll(ctx context.Context, p auth.Principal, courseID uuid.UUID) (*Enrollment, error)
	Cancel(ctx context.Context, enrollmentID uuid.UUID) (*Enrollment, error)
	RequireAccess(ctx context.Context, p auth.Principal, courseID uuid.UUID) (*Enrollment, error)
	Get(ctx context.Context, p auth.Principal, enrollmentID uuid.UUID) (*Enrollment, error)
	GetForStudent(ctx context.Context, studentID, courseID uuid.UUID) (*Enrollment, error)
	ListForStudent(ctx context.Context, p auth.Principal, activeOnly bool) ([]*Enrollment, error)
	ListForCourse(ctx context.Context, courseID uuid.UUID) ([]*Enrollment, error)
}

type enrollmentService struct {
	repo    EnrollmentRepository
	catalog catalog.CatalogService
	db      *gorm.DB
}

func NewService(db *gorm.DB, repo EnrollmentRepository, catalogService catalog.CatalogService) EnrollmentService {
	return &enrollmentService{
		repo:    repo,
		catalog: catalogService,
		db:      db,
	}
}

// Enroll returns the student's existing enrollment in the course or creates a
// pending one, consuming a seat in the same transaction.
func (s *enrollmentService) Enroll(ctx context.Context, p auth.Principal, courseID uuid.UUID) (*Enrollment, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"course_id": courseID, "student_id": p.ID})

	if !p.IsStudent() {
		log.WithField("role", p.Role).Warn("Non-student attempted to enroll")
		return nil, ErrStudentsOnly
	}

	existing, err := s.repo.GetByStudentAndCourse(ctx, p.ID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to look up enrollment")
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if _, err := s.catalog.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	var created *Enrollment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.TakeSeat(ctx, courseID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoSeatsAvailable
		}

		e := &Enrollment{
			StudentID:      p.ID,
			CourseID:       courseID,
			EnrollmentDate: time.Now().UTC(),
			Status:         StatusPending,
			PaymentStatus:  PaymentPending,
		}
		if err := repo.Create(ctx, e); err != nil {
			return err
		}
		created = e
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrNoSeatsAvailable) {
		// A concurrent call for the same student may have won the seat.
		winner, lookupErr := s.repo.GetByStudentAndCourse(ctx, p.ID, courseID)
		if lookupErr != nil {
			log.WithError(lookupErr).Error("Failed to look up enrollment after conflict")
			return nil, lookupErr
		}
		if winner != nil {
			return winner, nil
		}
	}
	if err != nil {
		if errors.Is(err, ErrNoSeatsAvailable) {
			log.Warn("Enrollment rejected: course is full")
			return nil, err
		}
		log.WithError(err).Error("Failed to create enrollment")
		return nil, err
	}

	log.WithField("enrollment_id", created.ID).Info("Enrollment created successfully")
	return created, nil
}

// Cancel marks the enrollment cancelled and gives its seat back. Cancelling
// twice is a no-op.
func (s *enrollmentService) Cancel(ctx context.Context, enrollmentID uuid.UUID) (*Enrollment, error) {
	log := config.WithContext(ctx).WithField("enrollment_id", enrollmentID)

	var result *Enrollment
	restored := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		e, err := repo.GetByIDForUpdate(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if e == nil {
			return ErrEnrollmentNotFound
		}
		result = e
		if e.Status == StatusCancelled {
			return nil
		}

		if err := repo.Update(ctx, e.ID, map[string]interface{}{"status": StatusCancelled}); err != nil {
			return err
		}
		if err := repo.ReleaseSeat(ctx, e.CourseID); err != nil {
			return err
		}
		e.Status = StatusCancelled
		restored = true
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEnrollmentNotFound) {
			log.WithError(err).Error("Failed to cancel enrollment")
		}
		return nil, err
	}

	if restored {
		log.WithField("course_id", result.CourseID).Info("Enrollment cancelled and seat restored")
	}
	return result, nil
}

func (s *enrollmentService) RequireAccess(ctx context.Context, p auth.Principal, courseID uuid.UUID) (*Enrollment, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	if !p.IsStudent() {
		log.WithField("role", p.Role).Warn("Course content requested by non-student")
		return nil, ErrNotEnrolled
	}

	e, err := s.repo.GetByStudentAndCourse(ctx, p.ID, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to look up enrollment")
		return nil, err
	}
	if e == nil || !e.GrantsAccess() {
		log.Warn("Course content requested without a paid enrollment")
		return nil, ErrNotEnrolled
	}
	return e, nil
}

// Get returns an enrollment visible to p. Students only see their own.
func (s *enrollmentService) Get(ctx context.Context, p auth.Principal, enrollmentID uuid.UUID) (*Enrollment, error) {
	e, err := s.repo.GetByID(ctx, enrollmentID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load enrollment")
		return nil, err
	}
	if e == nil || (p.IsStudent() && e.StudentID != p.ID) {
		return nil, ErrEnrollmentNotFound
	}
	return e, nil
}

func (s *enrollmentService) GetForStudent(ctx context.Context, studentID, courseID uuid.UUID) (*Enrollment, error) {
	e, err := s.repo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to look up enrollment")
		return nil, err
	}
	if e == nil {
		return nil, ErrEnrollmentNotFound
	}
	return e, nil
}

func (s *enrollmentService) ListForStudent(ctx context.Context, p auth.Principal, activeOnly bool) ([]*Enrollment, error) {
	enrollments, err := s.repo.ListByStudent(ctx, p.ID, activeOnly)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list enrollments")
		return nil, err
	}
	return enrollments, nil
}

func (s *enrollmentService) ListForCourse(ctx context.Context, courseID uuid.UUID) ([]*Enrollment, error) {
	if _, err := s.catalog.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	enrollments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list course enrollments")
		return nil, err
	}
	return enrollments, nil
}
