package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/progress"
)

type QuizService interface {
	GetQuizForStudent(ctx context.Context, p auth.Principal, quizID uuid.UUID) (*StudentQuizView, error)
	SubmitQuiz(ctx context.Context, p auth.Principal, quizID uuid.UUID, selected Answers) (*SubmissionResult, error)
	SaveDraft(ctx context.Context, p auth.Principal, quizID uuid.UUID, selected Answers) (*QuizResult, error)
	GetResult(ctx context.Context, p auth.Principal, quizID uuid.UUID) (*QuizResult, error)
}

type quizService struct {
	repo        QuizResultRepository
	catalog     catalog.CatalogService
	enrollments enrollment.EnrollmentService
	progress    progress.ProgressRepository
	reconciler  *progress.Reconciler
	db          *gorm.DB
}

func NewService(
	db *gorm.DB,
	repo QuizResultRepository,
	catalogService catalog.CatalogService,
	enrollmentService enrollment.EnrollmentService,
	progressRepo progress.ProgressRepository,
	reconciler *progress.Reconciler,
) QuizService {
	return &quizService{
		repo:        repo,
		catalog:     catalogService,
		enrollments: enrollmentService,
		progress:    progressRepo,
		reconciler:  reconciler,
		db:          db,
	}
}

// loadForStudent resolves the quiz and its course and checks that the
// principal holds a paid enrollment there.
func (s *quizService) loadForStudent(ctx context.Context, p auth.Principal, quizID uuid.UUID) (*catalog.Quiz, uuid.UUID, error) {
	quiz, courseID, err := s.catalog.ResolveQuizCourse(ctx, quizID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if _, err := s.enrollments.RequireAccess(ctx, p, courseID); err != nil {
		return nil, uuid.Nil, err
	}
	return quiz, courseID, nil
}

func (s *quizService) GetQuizForStudent(ctx context.Context, p auth.Principal, quizID uuid.UUID) (*StudentQuizView, error) {
	quiz, _, err := s.loadForStudent(ctx, p, quizID)
	if err != nil {
		return nil, err
	}

	view := &StudentQuizView{
		ID:             quiz.ID,
		Title:          quiz.Title,
		TotalQuestions: len(quiz.Questions),
		PassingScore:   quiz.PassingScore,
		TimeLimit:      quiz.TimeLimit,
		Questions:      make([]StudentQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		sq := StudentQuestion{ID: q.ID, QuestionText: q.QuestionText, Options: make([]StudentOption, 0, len(q.Options))}
		for _, o := range q.Options {
			sq.Options = append(sq.Options, StudentOption{Order: o.Order, OptionText: o.OptionText})
		}
		view.Questions = append(view.Questions, sq)
	}
	return view, nil
}

// SubmitQuiz grades the answers and, in one transaction, stores the result,
// marks the quiz completed and reconciles the enrollment. A quiz is submitted
// at most once per student.
func (s *quizService) SubmitQuiz(ctx context.Context, p auth.Principal, quizID uuid.UUID, selected Answers) (*SubmissionResult, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"quiz_id": quizID, "student_id": p.ID})

	quiz, courseID, err := s.loadForStudent(ctx, p, quizID)
	if err != nil {
		return nil, err
	}
	answers, err := ParseAnswers(quiz, selected)
	if err != nil {
		log.WithError(err).Warn("Rejected quiz submission with invalid answers")
		return nil, err
	}
	grade := GradeAnswers(quiz.Questions, answers)

	result := &QuizResult{
		StudentID:       p.ID,
		QuizID:          quizID,
		SelectedOptions: datatypes.NewJSONType(selected),
		ResultData:      datatypes.NewJSONType(grade.Results),
		ObtainedMarks:   grade.Obtained,
		TotalMarks:      grade.Total,
		Submitted:       true,
	}

	var outcome *progress.Outcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.GetByStudentAndQuizForUpdate(ctx, p.ID, quizID)
		if err != nil {
			return err
		}
		switch {
		case existing != nil && existing.Submitted:
			return ErrAlreadySubmitted
		case existing != nil:
			result.ID = existing.ID
			result.CreatedAt = existing.CreatedAt
			ok, err := repo.SubmitDraft(ctx, result)
			if err != nil {
				return err
			}
			if !ok {
				return ErrAlreadySubmitted
			}
		default:
			if err := repo.Create(ctx, result); err != nil {
				return err
			}
		}

		if err := s.progress.WithTx(tx).MarkQuizCompleted(ctx, p.ID, quizID, time.Now().UTC()); err != nil {
			return err
		}
		outcome, err = s.reconciler.Reconcile(ctx, tx, p.ID, courseID)
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrAlreadySubmitted
	}
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			log.Warn("Quiz already submitted")
		} else {
			log.WithError(err).Error("Failed to submit quiz")
		}
		return nil, err
	}

	log.WithFields(logrus.Fields{"obtained": grade.Obtained, "total": grade.Total}).Info("Quiz submitted")
	s.reconciler.Announce(ctx, outcome)

	return &SubmissionResult{
		QuizResultID:  result.ID,
		ObtainedMarks: grade.Obtained,
		TotalMarks:    grade.Total,
		Passed:        progress.Percentage(int64(grade.Obtained), int64(grade.Total)) >= quiz.PassingScore,
		Submitted:     true,
		ResultData:    grade.Results,
	}, nil
}

// SaveDraft stores answers without grading them. Drafts are rejected once the
// quiz has been submitted.
func (s *quizService) SaveDraft(ctx context.Context, p auth.Principal, quizID uuid.UUID, selected Answers) (*QuizResult, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"quiz_id": quizID, "student_id": p.ID})

	quiz, _, err := s.loadForStudent(ctx, p, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := ParseAnswers(quiz, selected); err != nil {
		return nil, err
	}

	var draft *QuizResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.GetByStudentAndQuizForUpdate(ctx, p.ID, quizID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Submitted {
				return ErrAlreadySubmitted
			}
			ok, err := repo.UpdateDraft(ctx, existing.ID, selected)
			if err != nil {
				return err
			}
			if !ok {
				return ErrAlreadySubmitted
			}
			existing.SelectedOptions = datatypes.NewJSONType(selected)
			draft = existing
			return nil
		}

		draft = &QuizResult{
			StudentID:       p.ID,
			QuizID:          quizID,
			SelectedOptions: datatypes.NewJSONType(selected),
			ResultData:      datatypes.NewJSONType([]QuestionResult{}),
		}
		return repo.Create(ctx, draft)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrDraftConflict
	}
	if err != nil {
		if !errors.Is(err, ErrAlreadySubmitted) && !errors.Is(err, ErrDraftConflict) {
			log.WithError(err).Error("Failed to save quiz draft")
		}
		return nil, err
	}

	log.Debug("Quiz draft saved")
	return draft, nil
}

func (s *quizService) GetResult(ctx context.Context, p auth.Principal, quizID uuid.UUID) (*QuizResult, error) {
	result, err := s.repo.GetByStudentAndQuiz(ctx, p.ID, quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quiz result")
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}
