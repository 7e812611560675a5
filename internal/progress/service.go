package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
)

type ProgressService interface {
	Reconcile(ctx context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error)
	ReconcileEnrollment(ctx context.Context, p auth.Principal, enrollmentID uuid.UUID) (*enrollment.Enrollment, error)
	CompleteLesson(ctx context.Context, p auth.Principal, lessonID uuid.UUID) (*enrollment.Enrollment, error)
	Summary(ctx context.Context, p auth.Principal, enrollmentID uuid.UUID) (*Summary, error)
}

type progressService struct {
	repo        ProgressRepository
	reconciler  *Reconciler
	catalog     catalog.CatalogService
	enrollments enrollment.EnrollmentService
	db          *gorm.DB
}

func NewService(
	db *gorm.DB,
	repo ProgressRepository,
	reconciler *Reconciler,
	catalogService catalog.CatalogService,
	enrollmentService enrollment.EnrollmentService,
) ProgressService {
	return &progressService{
		repo:        repo,
		reconciler:  reconciler,
		catalog:     catalogService,
		enrollments: enrollmentService,
		db:          db,
	}
}

func (s *progressService) Reconcile(ctx context.Context, studentID, courseID uuid.UUID) (*enrollment.Enrollment, error) {
	var out *Outcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.reconciler.Reconcile(ctx, tx, studentID, courseID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.reconciler.Announce(ctx, out)
	return out.Enrollment, nil
}

func (s *progressService) ReconcileEnrollment(ctx context.Context, p auth.Principal, enrollmentID uuid.UUID) (*enrollment.Enrollment, error) {
	e, err := s.enrollments.Get(ctx, p, enrollmentID)
	if err != nil {
		return nil, err
	}
	return s.Reconcile(ctx, e.StudentID, e.CourseID)
}

func (s *progressService) CompleteLesson(ctx context.Context, p auth.Principal, lessonID uuid.UUID) (*enrollment.Enrollment, error) {
	log := config.WithContext(ctx).WithField("lesson_id", lessonID)

	_, courseID, err := s.catalog.ResolveLessonCourse(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.enrollments.RequireAccess(ctx, p, courseID); err != nil {
		return nil, err
	}

	var out *Outcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).MarkLessonCompleted(ctx, p.ID, lessonID, time.Now().UTC()); err != nil {
			return err
		}
		out, err = s.reconciler.Reconcile(ctx, tx, p.ID, courseID)
		return err
	})
	if err != nil {
		log.WithError(err).Error("Failed to complete lesson")
		return nil, err
	}

	log.Info("Lesson marked as completed")
	s.reconciler.Announce(ctx, out)
	return out.Enrollment, nil
}

func (s *progressService) Summary(ctx context.Context, p auth.Principal, enrollmentID uuid.UUID) (*Summary, error) {
	log := config.WithContext(ctx).WithField("enrollment_id", enrollmentID)

	e, err := s.enrollments.Get(ctx, p, enrollmentID)
	if err != nil {
		return nil, err
	}

	outline, err := s.catalog.GetCourseOutline(ctx, e.CourseID)
	if err != nil {
		return nil, err
	}
	done, err := s.repo.CompletedItemIDs(ctx, e.StudentID, e.CourseID)
	if err != nil {
		log.WithError(err).Error("Failed to load completed items")
		return nil, err
	}

	summary := &Summary{
		EnrollmentID:      e.ID,
		CourseID:          e.CourseID,
		Progress:          e.Progress,
		Status:            e.Status,
		CertificateIssued: e.CertificateIssued,
		Modules:           make([]ModuleProgress, 0, len(outline.Modules)),
	}
	for _, m := range outline.Modules {
		mp := ModuleProgress{
			ModuleID: m.ID,
			Title:    m.Title,
			Order:    m.Order,
			QuizID:   m.QuizID,
			Lessons:  make([]LessonProgress, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			completed := done[l.ID]
			mp.Lessons = append(mp.Lessons, LessonProgress{LessonID: l.ID, Title: l.Title, Completed: completed})
			mp.TotalItems++
			if completed {
				mp.CompletedItems++
			}
		}
		if m.QuizID != nil {
			mp.TotalItems++
			if done[*m.QuizID] {
				mp.QuizCompleted = true
				mp.CompletedItems++
			}
		}
		summary.TotalItems += mp.TotalItems
		summary.CompletedItems += mp.CompletedItems
		summary.Modules = append(summary.Modules, mp)
	}
	return summary, nil
}
