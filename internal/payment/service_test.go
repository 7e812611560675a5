package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/container"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/notification"
	"github.com/saulo-duarte/coursehub-lambda/internal/payment"
	"github.com/saulo-duarte/coursehub-lambda/internal/testutil"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type fakeGateway struct {
	requests []payment.SessionRequest
	err      error
}

func (g *fakeGateway) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Session{Token: "snap-token", RedirectURL: "https://pay.example.com/" + req.OrderID}, nil
}

type fixture struct {
	db      *gorm.DB
	svc     payment.PaymentService
	console *notification.ConsoleSender
	gateway *fakeGateway
	student *user.User
	course  *catalog.Course
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	console := notification.NewConsoleSender("CourseHub", "noreply@example.com")
	gateway := &fakeGateway{}
	c := container.Build(db, notification.NewNotifier(console), gateway)

	return &fixture{
		db:      db,
		svc:     c.PaymentContainer.Service,
		console: console,
		gateway: gateway,
		student: testutil.CreateUser(t, db, auth.RoleStudent),
		course:  testutil.CreateCourse(t, db, 5),
	}
}

func (f *fixture) checkout(t *testing.T, txID string) *payment.CheckoutResult {
	t.Helper()

	res, err := f.svc.Checkout(context.Background(), testutil.Principal(f.student), f.course.Slug, payment.CheckoutRequest{
		Amount:        testutil.CoursePrice,
		PaymentMethod: payment.MethodCard,
		TransactionID: txID,
	})
	require.NoError(t, err)
	return res
}

func TestCheckoutAndConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := f.checkout(t, "tx-1")
	assert.Equal(t, enrollment.StatusPending, res.Enrollment.Status)
	assert.Equal(t, payment.StatusPending, res.Payment.Status)
	assert.Empty(t, res.RedirectURL)
	assert.Empty(t, f.gateway.requests)
	assert.Equal(t, 4, testutil.ReloadCourse(t, f.db, f.course.ID).RemainingSeat)

	confirmed, err := f.svc.Confirm(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusSuccess, confirmed.Status)
	assert.NotNil(t, confirmed.PaymentDate)

	e := testutil.ReloadEnrollment(t, f.db, res.Enrollment.ID)
	assert.Equal(t, enrollment.StatusActive, e.Status)
	assert.Equal(t, enrollment.PaymentSuccess, e.PaymentStatus)

	sent := f.console.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, f.student.Email, sent[0].ToEmail)
	assert.Contains(t, sent[0].Body, f.course.Title)

	t.Run("ConfirmIsIdempotent", func(t *testing.T) {
		again, err := f.svc.Confirm(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, payment.StatusSuccess, again.Status)
		assert.Len(t, f.console.Sent(), 1)
	})

	t.Run("PaidCheckoutRejected", func(t *testing.T) {
		_, err := f.svc.Checkout(ctx, testutil.Principal(f.student), f.course.Slug, payment.CheckoutRequest{
			Amount:        testutil.CoursePrice,
			PaymentMethod: payment.MethodCard,
			TransactionID: "tx-again",
		})
		assert.ErrorIs(t, err, payment.ErrAlreadyPaid)
	})

	t.Run("SettledPaymentCannotFail", func(t *testing.T) {
		_, err := f.svc.Fail(ctx, "tx-1")
		assert.ErrorIs(t, err, payment.ErrInvalidTransition)
	})
}

func TestConfirmKeepsCompletedStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	e := testutil.CreateEnrollment(t, f.db, f.student.ID, f.course.ID, enrollment.StatusCompleted, enrollment.PaymentPending)
	_, err := f.svc.ProcessPayment(ctx, e.ID, testutil.CoursePrice, payment.MethodBankTransfer, "tx-late")
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, "tx-late")
	require.NoError(t, err)

	stored := testutil.ReloadEnrollment(t, f.db, e.ID)
	assert.Equal(t, enrollment.StatusCompleted, stored.Status)
	assert.Equal(t, enrollment.PaymentSuccess, stored.PaymentStatus)
	assert.Empty(t, f.console.Sent())
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := testutil.CreateEnrollment(t, f.db, f.student.ID, f.course.ID, enrollment.StatusPending, enrollment.PaymentPending)

	t.Run("AmountMismatch", func(t *testing.T) {
		_, err := f.svc.ProcessPayment(ctx, e.ID, testutil.CoursePrice-1, payment.MethodCard, "tx-low")
		assert.ErrorIs(t, err, payment.ErrAmountMismatch)
	})

	t.Run("UnknownEnrollment", func(t *testing.T) {
		_, err := f.svc.ProcessPayment(ctx, uuid.New(), testutil.CoursePrice, payment.MethodCard, "tx-none")
		assert.ErrorIs(t, err, enrollment.ErrEnrollmentNotFound)
	})

	_, err := f.svc.ProcessPayment(ctx, e.ID, testutil.CoursePrice, payment.MethodCard, "tx-dup")
	require.NoError(t, err)

	t.Run("DuplicateTransaction", func(t *testing.T) {
		other := testutil.CreateUser(t, f.db, auth.RoleStudent)
		oe := testutil.CreateEnrollment(t, f.db, other.ID, f.course.ID, enrollment.StatusPending, enrollment.PaymentPending)

		_, err := f.svc.ProcessPayment(ctx, oe.ID, testutil.CoursePrice, payment.MethodCard, "tx-dup")
		assert.ErrorIs(t, err, payment.ErrDuplicateTransaction)
	})

	t.Run("SecondPaymentForEnrollment", func(t *testing.T) {
		_, err := f.svc.ProcessPayment(ctx, e.ID, testutil.CoursePrice, payment.MethodCard, "tx-second")
		assert.ErrorIs(t, err, payment.ErrPaymentExists)
	})

	t.Run("UnknownTransaction", func(t *testing.T) {
		_, err := f.svc.Confirm(ctx, "tx-missing")
		assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
	})
}

func TestFailThenRetry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := f.checkout(t, "tx-fail")

	failed, err := f.svc.Verify(ctx, payment.VerifyRequest{TransactionID: "tx-fail", Status: payment.StatusFailed})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailed, failed.Status)

	e := testutil.ReloadEnrollment(t, f.db, res.Enrollment.ID)
	assert.Equal(t, enrollment.StatusPending, e.Status)
	assert.Equal(t, enrollment.PaymentFailed, e.PaymentStatus)

	_, err = f.svc.Confirm(ctx, "tx-fail")
	assert.ErrorIs(t, err, payment.ErrInvalidTransition)

	retry := f.checkout(t, "tx-retry")
	assert.Equal(t, res.Enrollment.ID, retry.Enrollment.ID)
	assert.Equal(t, res.Payment.ID, retry.Payment.ID)
	assert.Equal(t, payment.StatusPending, retry.Payment.Status)
	assert.Equal(t, 4, testutil.ReloadCourse(t, f.db, f.course.ID).RemainingSeat)

	_, err = f.svc.Verify(ctx, payment.VerifyRequest{TransactionID: "tx-retry", Status: payment.StatusSuccess})
	require.NoError(t, err)
	assert.Equal(t, enrollment.StatusActive, testutil.ReloadEnrollment(t, f.db, res.Enrollment.ID).Status)

	_, err = f.svc.GetByTransaction(ctx, "tx-fail")
	assert.ErrorIs(t, err, payment.ErrPaymentNotFound)
}

func TestCheckoutWithGateway(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.Principal(f.student)

	res, err := f.svc.Checkout(ctx, p, f.course.Slug, payment.CheckoutRequest{
		Amount:        testutil.CoursePrice,
		PaymentMethod: payment.MethodMidtrans,
		TransactionID: "order-1",
	})
	require.NoError(t, err)

	require.Len(t, f.gateway.requests, 1)
	assert.Equal(t, "order-1", f.gateway.requests[0].OrderID)
	assert.Equal(t, testutil.CoursePrice, f.gateway.requests[0].Amount)
	assert.Equal(t, f.student.Email, f.gateway.requests[0].CustomerEmail)
	assert.Equal(t, "https://pay.example.com/order-1", res.RedirectURL)

	stored, err := f.svc.GetByTransaction(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, res.RedirectURL, stored.RedirectURL)

	view, err := f.svc.GetCheckout(ctx, p, f.course.Slug)
	require.NoError(t, err)
	require.NotNil(t, view.Enrollment)
	require.NotNil(t, view.Payment)
	assert.Equal(t, "order-1", view.Payment.TransactionID)
}

func TestCheckoutGatewayError(t *testing.T) {
	f := newFixture(t)
	f.gateway.err = errors.New("gateway down")

	_, err := f.svc.Checkout(context.Background(), testutil.Principal(f.student), f.course.Slug, payment.CheckoutRequest{
		Amount:        testutil.CoursePrice,
		PaymentMethod: payment.MethodMidtrans,
		TransactionID: "order-2",
	})
	require.Error(t, err)

	stored, err := f.svc.GetByTransaction(context.Background(), "order-2")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, stored.Status)
	assert.Empty(t, stored.RedirectURL)
}

func TestCheckoutRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("AmountMismatch", func(t *testing.T) {
		_, err := f.svc.Checkout(ctx, testutil.Principal(f.student), f.course.Slug, payment.CheckoutRequest{
			Amount:        1,
			PaymentMethod: payment.MethodCard,
			TransactionID: "tx-cheap",
		})
		assert.ErrorIs(t, err, payment.ErrAmountMismatch)
		assert.Equal(t, 5, testutil.ReloadCourse(t, f.db, f.course.ID).RemainingSeat)
	})

	t.Run("UnknownCourse", func(t *testing.T) {
		_, err := f.svc.Checkout(ctx, testutil.Principal(f.student), "no-such-course", payment.CheckoutRequest{
			Amount:        testutil.CoursePrice,
			PaymentMethod: payment.MethodCard,
			TransactionID: "tx-ghost",
		})
		assert.ErrorIs(t, err, catalog.ErrCourseNotFound)
	})

	t.Run("NonStudent", func(t *testing.T) {
		admin := testutil.CreateUser(t, f.db, auth.RoleAdmin)
		_, err := f.svc.Checkout(ctx, testutil.Principal(admin), f.course.Slug, payment.CheckoutRequest{
			Amount:        testutil.CoursePrice,
			PaymentMethod: payment.MethodCard,
			TransactionID: "tx-admin",
		})
		assert.ErrorIs(t, err, enrollment.ErrStudentsOnly)
	})
}
