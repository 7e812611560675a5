package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

type CatalogService interface {
	GetQuizWithQuestionsAndOptions(ctx context.Context, quizID uuid.UUID) (*Quiz, error)
	ResolveQuizCourse(ctx context.Context, quizID uuid.UUID) (*Quiz, uuid.UUID, error)
	ResolveLessonCourse(ctx context.Context, lessonID uuid.UUID) (*Lesson, uuid.UUID, error)

	GetCourse(ctx context.Context, courseID uuid.UUID) (*Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*Course, error)
	ListCourses(ctx context.Context, categoryName string) ([]*Course, error)
	GetCourseOutline(ctx context.Context, courseID uuid.UUID) (*CourseOutline, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, req UpdateCourseRequest) (*Course, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error
	CreateModule(ctx context.Context, courseID uuid.UUID, req CreateModuleRequest) (*Module, error)
	CreateLesson(ctx context.Context, moduleID uuid.UUID, req CreateLessonRequest) (*Lesson, error)
	CreateQuiz(ctx context.Context, moduleID uuid.UUID, req CreateQuizRequest) (*Quiz, error)
	CreateQuestion(ctx context.Context, quizID uuid.UUID, req QuestionRequest) (*Question, error)
	UpdateQuestion(ctx context.Context, questionID uuid.UUID, req QuestionRequest) (*Question, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error
}

type catalogService struct {
	repo CatalogRepository
	db   *gorm.DB
}

func NewService(db *gorm.DB, repo CatalogRepository) CatalogService {
	return &catalogService{
		repo: repo,
		db:   db,
	}
}

func (s *catalogService) GetQuizWithQuestionsAndOptions(ctx context.Context, quizID uuid.UUID) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	quiz, err := s.repo.GetQuizWithQuestionsAndOptions(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz with questions")
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *catalogService) ResolveQuizCourse(ctx context.Context, quizID uuid.UUID) (*Quiz, uuid.UUID, error) {
	quiz, err := s.GetQuizWithQuestionsAndOptions(ctx, quizID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	courseID, err := s.repo.CourseIDForModule(ctx, quiz.ModuleID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if courseID == uuid.Nil {
		return nil, uuid.Nil, ErrModuleNotFound
	}
	return quiz, courseID, nil
}

func (s *catalogService) ResolveLessonCourse(ctx context.Context, lessonID uuid.UUID) (*Lesson, uuid.UUID, error) {
	lesson, err := s.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if lesson == nil {
		return nil, uuid.Nil, ErrLessonNotFound
	}
	courseID, err := s.repo.CourseIDForModule(ctx, lesson.ModuleID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if courseID == uuid.Nil {
		return nil, uuid.Nil, ErrModuleNotFound
	}
	return lesson, courseID, nil
}

func (s *catalogService) GetCourse(ctx context.Context, courseID uuid.UUID) (*Course, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load course")
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *catalogService) GetCourseBySlug(ctx context.Context, slug string) (*Course, error) {
	course, err := s.repo.GetCourseBySlug(ctx, slug)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load course by slug")
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *catalogService) ListCourses(ctx context.Context, categoryName string) ([]*Course, error) {
	log := config.WithContext(ctx)

	var categoryID *uuid.UUID
	if categoryName != "" {
		category, err := s.repo.GetCategoryByName(ctx, categoryName)
		if err != nil {
			log.WithError(err).Error("Failed to load category")
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		categoryID = &category.ID
	}

	courses, err := s.repo.ListCourses(ctx, categoryID)
	if err != nil {
		log.WithError(err).Error("Failed to list courses")
		return nil, err
	}
	return courses, nil
}

func (s *catalogService) GetCourseOutline(ctx context.Context, courseID uuid.UUID) (*CourseOutline, error) {
	course, err := s.repo.GetCourseTree(ctx, courseID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load course outline")
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	outline := &CourseOutline{
		CourseID: course.ID,
		Title:    course.Title,
		Modules:  make([]OutlineModule, 0, len(course.Modules)),
	}
	for _, m := range course.Modules {
		om := OutlineModule{
			ID:      m.ID,
			Title:   m.Title,
			Order:   m.Order,
			Lessons: make([]OutlineLesson, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			om.Lessons = append(om.Lessons, OutlineLesson{ID: l.ID, Title: l.Title, Order: l.Order, Duration: l.Duration})
		}
		if m.Quiz != nil {
			quizID := m.Quiz.ID
			om.QuizID = &quizID
		}
		outline.Modules = append(outline.Modules, om)
	}
	return outline, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list categories")
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	log := config.WithContext(ctx)

	category := &Category{Name: req.Name, Description: req.Description}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		log.WithError(err).Error("Failed to create category")
		return nil, err
	}

	log.WithField("category_id", category.ID).Info("Category created successfully")
	return category, nil
}

func (s *catalogService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	log := config.WithContext(ctx)

	if err := checkSchedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	category, err := s.repo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		log.WithError(err).Error("Failed to load category")
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	seats := DefaultSeatCapacity
	if req.RemainingSeat != nil {
		seats = *req.RemainingSeat
	}

	slug, err := uniqueSlug(ctx, s.repo, req.Title)
	if err != nil {
		log.WithError(err).Error("Failed to derive course slug")
		return nil, err
	}

	course := &Course{
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		Duration:      req.Duration,
		Batch:         req.Batch,
		RemainingSeat: seats,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DemoURL:       req.DemoURL,
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.WithField("slug", slug).Warn("Course slug taken concurrently")
			return nil, ErrSlugTaken
		}
		log.WithError(err).Error("Failed to create course")
		return nil, err
	}

	log.WithFields(logrus.Fields{"course_id": course.ID, "slug": course.Slug}).Info("Course created successfully")
	return course, nil
}

func (s *catalogService) UpdateCourse(ctx context.Context, courseID uuid.UUID, req UpdateCourseRequest) (*Course, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	course, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.CategoryID != nil && *req.CategoryID != course.CategoryID {
		category, err := s.repo.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Duration != nil {
		fields["duration"] = *req.Duration
	}
	if req.Batch != nil {
		fields["batch"] = *req.Batch
	}
	if req.DemoURL != nil {
		fields["demo_url"] = *req.DemoURL
	}

	start, end := course.StartDate, course.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
		fields["start_date"] = start
	}
	if req.EndDate != nil {
		end = *req.EndDate
		fields["end_date"] = end
	}
	if err := checkSchedule(start, end); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateCourse(ctx, courseID, fields); err != nil {
			log.WithError(err).Error("Failed to update course")
			return nil, err
		}
		log.Info("Course updated successfully")
	}
	return s.GetCourse(ctx, courseID)
}

func (s *catalogService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	deleted, err := s.repo.DeleteCourse(ctx, courseID)
	if err != nil {
		log.WithError(err).Error("Failed to delete course")
		return err
	}
	if !deleted {
		return ErrCourseNotFound
	}

	log.Info("Course deleted successfully")
	return nil
}

func (s *catalogService) CreateModule(ctx context.Context, courseID uuid.UUID, req CreateModuleRequest) (*Module, error) {
	log := config.WithContext(ctx).WithField("course_id", courseID)

	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	module := &Module{CourseID: courseID, Title: req.Title, Description: req.Description, Order: req.Order}
	if err := s.repo.CreateModule(ctx, module); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrModuleOrderTaken
		}
		log.WithError(err).Error("Failed to create module")
		return nil, err
	}

	log.WithField("module_id", module.ID).Info("Module created successfully")
	return module, nil
}

func (s *catalogService) CreateLesson(ctx context.Context, moduleID uuid.UUID, req CreateLessonRequest) (*Lesson, error) {
	log := config.WithContext(ctx).WithField("module_id", moduleID)

	module, err := s.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		log.WithError(err).Error("Failed to load module")
		return nil, err
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	lesson := &Lesson{
		ModuleID:    moduleID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Duration:    req.Duration,
		Order:       req.Order,
	}
	if err := s.repo.CreateLesson(ctx, lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLessonOrderTaken
		}
		log.WithError(err).Error("Failed to create lesson")
		return nil, err
	}

	log.WithField("lesson_id", lesson.ID).Info("Lesson created successfully")
	return lesson, nil
}

func (s *catalogService) CreateQuiz(ctx context.Context, moduleID uuid.UUID, req CreateQuizRequest) (*Quiz, error) {
	log := config.WithContext(ctx).WithField("module_id", moduleID)

	module, err := s.repo.GetModuleByID(ctx, moduleID)
	if err != nil {
		log.WithError(err).Error("Failed to load module")
		return nil, err
	}
	if module == nil {
		return nil, ErrModuleNotFound
	}

	timeLimit := DefaultQuizTimeLimit
	if req.TimeLimit != nil {
		timeLimit = *req.TimeLimit
	}

	quiz := &Quiz{ModuleID: moduleID, Title: req.Title, PassingScore: req.PassingScore, TimeLimit: timeLimit}
	if err := s.repo.CreateQuiz(ctx, quiz); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrQuizExists
		}
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	log.WithField("quiz_id", quiz.ID).Info("Quiz created successfully")
	return quiz, nil
}

func (s *catalogService) CreateQuestion(ctx context.Context, quizID uuid.UUID, req QuestionRequest) (*Question, error) {
	log := config.WithContext(ctx).WithField("quiz_id", quizID)

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}

	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz")
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	question.QuizID = quizID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateQuestion(ctx, question); err != nil {
			return err
		}
		return repo.SyncQuestionCount(ctx, quizID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to create question")
		return nil, err
	}

	log.WithField("question_id", question.ID).Info("Question created successfully")
	return question, nil
}

func (s *catalogService) UpdateQuestion(ctx context.Context, questionID uuid.UUID, req QuestionRequest) (*Question, error) {
	log := config.WithContext(ctx).WithField("question_id", questionID)

	question, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		log.WithError(err).Error("Failed to load question")
		return nil, err
	}
	if existing == nil {
		return nil, ErrQuestionNotFound
	}
	question.ID = existing.ID
	question.QuizID = existing.QuizID
	question.CreatedAt = existing.CreatedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceOptions(ctx, question)
	})
	if err != nil {
		log.WithError(err).Error("Failed to update question")
		return nil, err
	}

	log.Info("Question updated successfully")
	return question, nil
}

func (s *catalogService) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	log := config.WithContext(ctx).WithField("question_id", questionID)

	existing, err := s.repo.GetQuestionByID(ctx, questionID)
	if err != nil {
		log.WithError(err).Error("Failed to load question")
		return err
	}
	if existing == nil {
		return ErrQuestionNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.DeleteQuestion(ctx, questionID); err != nil {
			return err
		}
		return repo.SyncQuestionCount(ctx, existing.QuizID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete question")
		return err
	}

	log.Info("Question deleted successfully")
	return nil
}

// buildQuestion enforces the option invariants: between one and four options,
// exactly one of them correct. Orders are assigned 1..n in input order.
func buildQuestion(req QuestionRequest) (*Question, error) {
	if len(req.Options) > MaxOptionsPerQuestion {
		return nil, ErrTooManyOptions
	}

	q := &Question{QuestionText: req.QuestionText, Options: make([]Option, 0, len(req.Options))}
	correct := 0
	for i, in := range req.Options {
		order := i + 1
		if in.IsCorrect {
			correct++
			q.CorrectOptionIndex = order
		}
		q.Options = append(q.Options, Option{OptionText: in.OptionText, Order: order, IsCorrect: in.IsCorrect})
	}
	if correct != 1 {
		return nil, ErrCorrectOptionCount
	}
	return q, nil
}

func checkSchedule(start, end util.Date) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		return ErrInvalidSchedule
	}
	return nil
}
