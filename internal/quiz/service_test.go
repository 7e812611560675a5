package quiz_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/container"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/progress"
	"github.com/saulo-duarte/coursehub-lambda/internal/quiz"
	"github.com/saulo-duarte/coursehub-lambda/internal/testutil"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type fixture struct {
	db      *gorm.DB
	svc     quiz.QuizService
	student *user.User
	course  *catalog.Course
	quiz    *catalog.Quiz
	enroll  *enrollment.Enrollment
}

// newFixture builds a course whose only item is a three-question quiz.
func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	c := container.Build(db, nil, nil)

	f := &fixture{db: db, svc: c.QuizContainer.Service}
	f.student = testutil.CreateUser(t, db, auth.RoleStudent)
	f.course = testutil.CreateCourse(t, db, 10)
	module := testutil.CreateModule(t, db, f.course.ID, 1)
	f.quiz = testutil.CreateQuiz(t, db, module.ID, 3)
	f.enroll = testutil.ActiveEnrollment(t, db, f.student.ID, f.course.ID)
	return f
}

// oneRight answers the first question correctly, the second wrongly and skips
// the third.
func (f *fixture) oneRight() quiz.Answers {
	q := f.quiz.Questions
	return quiz.Answers{
		q[0].ID.String(): testutil.CorrectOrder(0),
		q[1].ID.String(): testutil.CorrectOrder(1)%4 + 1,
	}
}

func TestSubmitQuiz(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.Principal(f.student)

	res, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, f.oneRight())
	require.NoError(t, err)

	assert.Equal(t, 1, res.ObtainedMarks)
	assert.Equal(t, 3, res.TotalMarks)
	assert.False(t, res.Passed)
	assert.True(t, res.Submitted)
	assert.Len(t, res.ResultData, 3)

	stored, err := f.svc.GetResult(ctx, p, f.quiz.ID)
	require.NoError(t, err)
	assert.True(t, stored.Submitted)
	assert.NotNil(t, stored.SubmissionTime)
	assert.Equal(t, 1, stored.ObtainedMarks)
	assert.Len(t, stored.SelectedOptions.Data(), 2)

	var marker progress.StudentProgress
	require.NoError(t, f.db.Where("student_id = ? AND quiz_id = ?", f.student.ID, f.quiz.ID).First(&marker).Error)
	assert.True(t, marker.Completed)

	e := testutil.ReloadEnrollment(t, f.db, f.enroll.ID)
	assert.Equal(t, 100, e.Progress)
	assert.Equal(t, enrollment.StatusCompleted, e.Status)
	assert.True(t, e.CertificateIssued)

	t.Run("SecondSubmissionRejected", func(t *testing.T) {
		_, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, f.oneRight())
		assert.ErrorIs(t, err, quiz.ErrAlreadySubmitted)

		again, err := f.svc.GetResult(ctx, p, f.quiz.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, again.ID)
		assert.Equal(t, 1, again.ObtainedMarks)
	})

	t.Run("DraftAfterSubmitRejected", func(t *testing.T) {
		_, err := f.svc.SaveDraft(ctx, p, f.quiz.ID, f.oneRight())
		assert.ErrorIs(t, err, quiz.ErrAlreadySubmitted)
	})
}

func TestSubmitQuizConcurrent(t *testing.T) {
	const attempts = 6

	ctx := context.Background()
	f := newFixture(t)
	p := testutil.Principal(f.student)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, f.oneRight())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, quiz.ErrAlreadySubmitted):
				rejected++
			default:
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)

	var count int64
	require.NoError(t, f.db.Model(&quiz.QuizResult{}).Where("student_id = ?", f.student.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSubmitQuizRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.Principal(f.student)

	const hook = "test:fail_progress"
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register(hook, func(tx *gorm.DB) {
		if tx.Statement.Table == "student_progress" {
			_ = tx.AddError(errors.New("progress store unavailable"))
		}
	}))

	_, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, f.oneRight())
	require.Error(t, err)

	_, err = f.svc.GetResult(ctx, p, f.quiz.ID)
	assert.ErrorIs(t, err, quiz.ErrResultNotFound)
	assert.Equal(t, 0, testutil.ReloadEnrollment(t, f.db, f.enroll.ID).Progress)

	require.NoError(t, f.db.Callback().Create().Remove(hook))

	res, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, f.oneRight())
	require.NoError(t, err)
	assert.Equal(t, 1, res.ObtainedMarks)
}

func TestSubmitQuizAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("UnpaidStudent", func(t *testing.T) {
		u := testutil.CreateUser(t, f.db, auth.RoleStudent)
		testutil.CreateEnrollment(t, f.db, u.ID, f.course.ID, enrollment.StatusPending, enrollment.PaymentPending)

		_, err := f.svc.SubmitQuiz(ctx, testutil.Principal(u), f.quiz.ID, f.oneRight())
		assert.ErrorIs(t, err, enrollment.ErrNotEnrolled)
	})

	t.Run("Instructor", func(t *testing.T) {
		u := testutil.CreateUser(t, f.db, auth.RoleInstructor)
		_, err := f.svc.SubmitQuiz(ctx, testutil.Principal(u), f.quiz.ID, f.oneRight())
		assert.ErrorIs(t, err, enrollment.ErrNotEnrolled)
	})

	t.Run("InvalidAnswersLeaveNoTrace", func(t *testing.T) {
		p := testutil.Principal(f.student)
		_, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, quiz.Answers{f.quiz.Questions[0].ID.String(): 9})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))

		_, err = f.svc.GetResult(ctx, p, f.quiz.ID)
		assert.ErrorIs(t, err, quiz.ErrResultNotFound)
	})
}

func TestDraftThenSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := testutil.Principal(f.student)
	q := f.quiz.Questions

	draft, err := f.svc.SaveDraft(ctx, p, f.quiz.ID, quiz.Answers{q[0].ID.String(): 2})
	require.NoError(t, err)
	assert.False(t, draft.Submitted)
	assert.Nil(t, draft.SubmissionTime)

	updated, err := f.svc.SaveDraft(ctx, p, f.quiz.ID, quiz.Answers{q[0].ID.String(): 3})
	require.NoError(t, err)
	assert.Equal(t, draft.ID, updated.ID)

	stored, err := f.svc.GetResult(ctx, p, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.SelectedOptions.Data()[q[0].ID.String()])
	assert.Zero(t, testutil.ReloadEnrollment(t, f.db, f.enroll.ID).Progress)

	res, err := f.svc.SubmitQuiz(ctx, p, f.quiz.ID, f.oneRight())
	require.NoError(t, err)
	assert.Equal(t, draft.ID, res.QuizResultID)

	final, err := f.svc.GetResult(ctx, p, f.quiz.ID)
	require.NoError(t, err)
	assert.True(t, final.Submitted)
	assert.NotNil(t, final.SubmissionTime)
}

func TestGetQuizForStudentHidesAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	view, err := f.svc.GetQuizForStudent(ctx, testutil.Principal(f.student), f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalQuestions)
	require.Len(t, view.Questions, 3)
	for _, q := range view.Questions {
		assert.Len(t, q.Options, 4)
	}
}
