package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/notification"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

// Outcome is the result of one reconciliation.
type Outcome struct {
	Enrollment     *enrollment.Enrollment
	CompletedItems int64
	TotalItems     int64
	// CertificateIssued is true only for the call that flipped the flag.
	CertificateIssued bool
}

// Percentage floors completed/total to an integer percentage. An empty course
// is 0% complete.
func Percentage(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(completed * 100 / total)
}

type Reconciler struct {
	progress    ProgressRepository
	enrollments enrollment.EnrollmentRepository
	catalog     catalog.CatalogRepository
	users       user.UserRepository
	notifier    *notification.Notifier
}

func NewReconciler(
	progress ProgressRepository,
	enrollments enrollment.EnrollmentRepository,
	catalogRepo catalog.CatalogRepository,
	users user.UserRepository,
	notifier *notification.Notifier,
) *Reconciler {
	return &Reconciler{
		progress:    progress,
		enrollments: enrollments,
		catalog:     catalogRepo,
		users:       users,
		notifier:    notifier,
	}
}

// Reconcile recomputes the enrollment's progress inside tx. Reaching 100%
// completes the enrollment and issues the certificate unless it was cancelled;
// both are never undone by a later, lower result.
func (r *Reconciler) Reconcile(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*Outcome, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"student_id": studentID, "course_id": courseID})
	enrollments := r.enrollments.WithTx(tx)
	progress := r.progress.WithTx(tx)

	e, err := enrollments.GetByStudentAndCourseForUpdate(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		log.Warn("Reconcile requested without enrollment")
		return nil, enrollment.ErrEnrollmentNotFound
	}

	total, err := progress.CountCourseItems(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := progress.CountCompletedItems(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	pct := Percentage(completed, total)
	fields := map[string]interface{}{"progress": pct}
	out := &Outcome{Enrollment: e, CompletedItems: completed, TotalItems: total}

	// A cancelled enrollment no longer holds a seat and stays cancelled.
	if pct == 100 && !e.CertificateIssued && e.Status != enrollment.StatusCancelled {
		now := time.Now().UTC()
		fields["status"] = enrollment.StatusCompleted
		fields["certificate_issued"] = true
		fields["completion_date"] = now

		e.Status = enrollment.StatusCompleted
		e.CertificateIssued = true
		e.CompletionDate = &now
		out.CertificateIssued = true
	}

	if err := enrollments.Update(ctx, e.ID, fields); err != nil {
		return nil, err
	}
	e.Progress = pct

	log.WithFields(logrus.Fields{"progress": pct, "completed": completed, "total": total}).Info("Enrollment progress reconciled")
	return out, nil
}

// Announce emails the student when out issued a certificate. It must run after
// the reconciling transaction committed.
func (r *Reconciler) Announce(ctx context.Context, out *Outcome) {
	if out == nil || !out.CertificateIssued {
		return
	}
	log := config.WithContext(ctx).WithField("enrollment_id", out.Enrollment.ID)
	log.Info("Certificate issued")

	student, err := r.users.GetByID(ctx, out.Enrollment.StudentID)
	if err != nil || student == nil {
		log.WithError(err).Warn("Could not resolve student for certificate email")
		return
	}
	course, err := r.catalog.GetCourseByID(ctx, out.Enrollment.CourseID)
	if err != nil || course == nil {
		log.WithError(err).Warn("Could not resolve course for certificate email")
		return
	}
	r.notifier.Notify(ctx, notification.CertificateIssued(student.Email, course.Title))
}
