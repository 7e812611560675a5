package payment

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
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/notification"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type PaymentService interface {
	ProcessPayment(ctx context.Context, enrollmentID uuid.UUID, amount int64, method Method, transactionID string) (*Payment, error)
	Confirm(ctx context.Context, transactionID string) (*Payment, error)
	Fail(ctx context.Context, transactionID string) (*Payment, error)
	Verify(ctx context.Context, req VerifyRequest) (*Payment, error)
	Checkout(ctx context.Context, p auth.Principal, courseSlug string, req CheckoutRequest) (*CheckoutResult, error)
	GetCheckout(ctx context.Context, p auth.Principal, courseSlug string) (*CheckoutView, error)
	GetByTransaction(ctx context.Context, transactionID string) (*Payment, error)
}

type paymentService struct {
	repo        PaymentRepository
	enrollments enrollment.EnrollmentRepository
	enrollment  enrollment.EnrollmentService
	catalog     catalog.CatalogService
	users       user.UserRepository
	notifier    *notification.Notifier
	gateway     Gateway
	db          *gorm.DB
}

func NewService(
	db *gorm.DB,
	repo PaymentRepository,
	enrollments enrollment.EnrollmentRepository,
	enrollmentService enrollment.EnrollmentService,
	catalogService catalog.CatalogService,
	users user.UserRepository,
	notifier *notification.Notifier,
	gateway Gateway,
) PaymentService {
	return &paymentService{
		repo:        repo,
		enrollments: enrollments,
		enrollment:  enrollmentService,
		catalog:     catalogService,
		users:       users,
		notifier:    notifier,
		gateway:     gateway,
		db:          db,
	}
}

// ProcessPayment records a pending payment for the enrollment. A failed
// payment may be retried under a new transaction id; any other existing
// payment blocks a second one.
func (s *paymentService) ProcessPayment(ctx context.Context, enrollmentID uuid.UUID, amount int64, method Method, transactionID string) (*Payment, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"enrollment_id":  enrollmentID,
		"transaction_id": transactionID,
	})

	e, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		log.WithError(err).Error("Failed to load enrollment")
		return nil, err
	}
	if e == nil {
		return nil, enrollment.ErrEnrollmentNotFound
	}

	course, err := s.catalog.GetCourse(ctx, e.CourseID)
	if err != nil {
		return nil, err
	}
	if amount != course.Price {
		log.WithFields(logrus.Fields{"amount": amount, "price": course.Price}).Warn("Payment amount does not match course price")
		return nil, ErrAmountMismatch
	}

	used, err := s.repo.GetByTransaction(ctx, transactionID)
	if err != nil {
		log.WithError(err).Error("Failed to look up transaction")
		return nil, err
	}
	if used != nil {
		log.Warn("Transaction id reused")
		return nil, ErrDuplicateTransaction
	}

	existing, err := s.repo.GetByEnrollment(ctx, enrollmentID)
	if err != nil {
		log.WithError(err).Error("Failed to look up enrollment payment")
		return nil, err
	}

	var payment *Payment
	if existing != nil {
		if existing.Status != StatusFailed {
			return nil, ErrPaymentExists
		}
		fields := map[string]interface{}{
			"amount":         amount,
			"payment_method": method,
			"transaction_id": transactionID,
			"status":         StatusPending,
			"payment_date":   nil,
			"redirect_url":   "",
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.repo.WithTx(tx).Update(ctx, existing.ID, fields); err != nil {
				return err
			}
			return s.enrollments.WithTx(tx).Update(ctx, e.ID, map[string]interface{}{"payment_status": enrollment.PaymentPending})
		})
		payment = existing
		payment.Amount = amount
		payment.PaymentMethod = method
		payment.TransactionID = transactionID
		payment.Status = StatusPending
		payment.PaymentDate = nil
		payment.RedirectURL = ""
	} else {
		payment = &Payment{
			EnrollmentID:  enrollmentID,
			Amount:        amount,
			PaymentMethod: method,
			TransactionID: transactionID,
			Status:        StatusPending,
		}
		err = s.repo.Create(ctx, payment)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if winner, _ := s.repo.GetByTransaction(ctx, transactionID); winner != nil {
			return nil, ErrDuplicateTransaction
		}
		return nil, ErrPaymentExists
	}
	if err != nil {
		log.WithError(err).Error("Failed to record payment")
		return nil, err
	}

	log.WithField("payment_id", payment.ID).Info("Payment recorded as pending")
	return payment, nil
}

// Confirm settles the payment and activates its enrollment in one
// transaction. Confirming a settled payment again changes nothing.
func (s *paymentService) Confirm(ctx context.Context, transactionID string) (*Payment, error) {
	log := config.WithContext(ctx).WithField("transaction_id", transactionID)

	var (
		result    *Payment
		activated *enrollment.Enrollment
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		enrollments := s.enrollments.WithTx(tx)

		payment, err := repo.GetByTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrPaymentNotFound
		}
		result = payment

		switch payment.Status {
		case StatusSuccess:
			return nil
		case StatusFailed:
			return ErrInvalidTransition
		}

		e, err := enrollments.GetByIDForUpdate(ctx, payment.EnrollmentID)
		if err != nil {
			return err
		}
		if e == nil {
			return enrollment.ErrEnrollmentNotFound
		}

		now := time.Now().UTC()
		if err := repo.Update(ctx, payment.ID, map[string]interface{}{
			"status":       StatusSuccess,
			"payment_date": now,
		}); err != nil {
			return err
		}
		payment.Status = StatusSuccess
		payment.PaymentDate = &now

		fields := map[string]interface{}{"payment_status": enrollment.PaymentSuccess}
		if e.Status == enrollment.StatusPending {
			fields["status"] = enrollment.StatusActive
		}
		if err := enrollments.Update(ctx, e.ID, fields); err != nil {
			return err
		}
		if e.Status == enrollment.StatusPending {
			e.Status = enrollment.StatusActive
			activated = e
		}
		e.PaymentStatus = enrollment.PaymentSuccess
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrPaymentNotFound) && !errors.Is(err, ErrInvalidTransition) {
			log.WithError(err).Error("Failed to confirm payment")
		} else {
			log.WithError(err).Warn("Payment confirmation rejected")
		}
		return nil, err
	}

	if activated != nil {
		log.WithField("enrollment_id", activated.ID).Info("Payment confirmed and enrollment activated")
		s.announceActivation(ctx, activated)
	}
	return result, nil
}

// Fail marks a pending payment failed. A settled payment cannot fail.
func (s *paymentService) Fail(ctx context.Context, transactionID string) (*Payment, error) {
	log := config.WithContext(ctx).WithField("transaction_id", transactionID)

	var result *Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		payment, err := repo.GetByTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if payment == nil {
			return ErrPaymentNotFound
		}
		result = payment

		switch payment.Status {
		case StatusFailed:
			return nil
		case StatusSuccess:
			return ErrInvalidTransition
		}

		if err := repo.Update(ctx, payment.ID, map[string]interface{}{"status": StatusFailed}); err != nil {
			return err
		}
		payment.Status = StatusFailed
		return s.enrollments.WithTx(tx).Update(ctx, payment.EnrollmentID, map[string]interface{}{
			"payment_status": enrollment.PaymentFailed,
		})
	})
	if err != nil {
		log.WithError(err).Warn("Failed to mark payment failed")
		return nil, err
	}

	log.Info("Payment marked failed")
	return result, nil
}

func (s *paymentService) Verify(ctx context.Context, req VerifyRequest) (*Payment, error) {
	if req.Status == StatusFailed {
		return s.Fail(ctx, req.TransactionID)
	}
	return s.Confirm(ctx, req.TransactionID)
}

// Checkout enrolls the student in the course and records the payment. With
// the midtrans method and a configured gateway it also opens a hosted
// checkout session.
func (s *paymentService) Checkout(ctx context.Context, p auth.Principal, courseSlug string, req CheckoutRequest) (*CheckoutResult, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"course_slug": courseSlug, "student_id": p.ID})

	course, err := s.catalog.GetCourseBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if req.Amount != course.Price {
		log.WithFields(logrus.Fields{"amount": req.Amount, "price": course.Price}).Warn("Checkout amount does not match course price")
		return nil, ErrAmountMismatch
	}

	e, err := s.enrollment.Enroll(ctx, p, course.ID)
	if err != nil {
		return nil, err
	}
	if e.PaymentStatus == enrollment.PaymentSuccess {
		return nil, ErrAlreadyPaid
	}

	payment, err := s.ProcessPayment(ctx, e.ID, req.Amount, req.PaymentMethod, req.TransactionID)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Enrollment: e, Payment: payment}
	if req.PaymentMethod != MethodMidtrans || s.gateway == nil {
		return result, nil
	}

	session, err := s.gateway.CreateSession(ctx, SessionRequest{
		OrderID:       payment.TransactionID,
		Amount:        payment.Amount,
		ItemID:        course.ID.String(),
		ItemName:      course.Title,
		CustomerEmail: p.Email,
	})
	if err != nil {
		log.WithError(err).Error("Failed to open checkout session")
		return nil, err
	}

	if err := s.repo.Update(ctx, payment.ID, map[string]interface{}{"redirect_url": session.RedirectURL}); err != nil {
		log.WithError(err).Error("Failed to store checkout redirect")
		return nil, err
	}
	payment.RedirectURL = session.RedirectURL
	result.RedirectURL = session.RedirectURL

	log.WithField("transaction_id", payment.TransactionID).Info("Checkout session opened")
	return result, nil
}

func (s *paymentService) GetCheckout(ctx context.Context, p auth.Principal, courseSlug string) (*CheckoutView, error) {
	course, err := s.catalog.GetCourseBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	view := &CheckoutView{Course: course}

	e, err := s.enrollments.GetByStudentAndCourse(ctx, p.ID, course.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to look up enrollment")
		return nil, err
	}
	if e == nil {
		return view, nil
	}
	view.Enrollment = e

	view.Payment, err = s.repo.GetByEnrollment(ctx, e.ID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to look up enrollment payment")
		return nil, err
	}
	return view, nil
}

func (s *paymentService) GetByTransaction(ctx context.Context, transactionID string) (*Payment, error) {
	payment, err := s.repo.GetByTransaction(ctx, transactionID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to look up payment")
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

func (s *paymentService) announceActivation(ctx context.Context, e *enrollment.Enrollment) {
	log := config.WithContext(ctx).WithField("enrollment_id", e.ID)

	student, err := s.users.GetByID(ctx, e.StudentID)
	if err != nil || student == nil {
		log.WithError(err).Warn("Could not resolve student for activation email")
		return
	}
	course, err := s.catalog.GetCourse(ctx, e.CourseID)
	if err != nil {
		log.WithError(err).Warn("Could not resolve course for activation email")
		return
	}
	s.notifier.Notify(ctx, notification.EnrollmentActivated(student.Email, course.Title))
}
