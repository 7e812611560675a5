package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/testutil"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

func newService(t *testing.T) (catalog.CatalogService, *gorm.DB) {
	db := testutil.NewDB(t)
	return catalog.NewService(db, catalog.NewRepository(db)), db
}

func courseRequest(categoryID uuid.UUID, title string) catalog.CreateCourseRequest {
	return catalog.CreateCourseRequest{
		CategoryID: categoryID,
		Title:      title,
		Price:      2500,
		Duration:   40,
		StartDate:  util.NewDate(2026, time.February, 1),
		EndDate:    util.NewDate(2026, time.April, 1),
	}
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	category := testutil.CreateCategory(t, db)

	t.Run("SlugGetsNumericSuffix", func(t *testing.T) {
		first, err := svc.CreateCourse(ctx, courseRequest(category.ID, "Go Basics"))
		require.NoError(t, err)
		second, err := svc.CreateCourse(ctx, courseRequest(category.ID, "Go Basics"))
		require.NoError(t, err)
		third, err := svc.CreateCourse(ctx, courseRequest(category.ID, "Go  basics!"))
		require.NoError(t, err)

		assert.Equal(t, "go-basics", first.Slug)
		assert.Equal(t, "go-basics-2", second.Slug)
		assert.Equal(t, "go-basics-3", third.Slug)

		found, err := svc.GetCourseBySlug(ctx, "go-basics-2")
		require.NoError(t, err)
		assert.Equal(t, second.ID, found.ID)
	})

	t.Run("DefaultSeats", func(t *testing.T) {
		course, err := svc.CreateCourse(ctx, courseRequest(category.ID, "Default Seats"))
		require.NoError(t, err)
		assert.Equal(t, catalog.DefaultSeatCapacity, course.RemainingSeat)
	})

	t.Run("ExplicitZeroSeats", func(t *testing.T) {
		req := courseRequest(category.ID, "Sold Out")
		zero := 0
		req.RemainingSeat = &zero

		course, err := svc.CreateCourse(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 0, testutil.ReloadCourse(t, db, course.ID).RemainingSeat)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		req := courseRequest(category.ID, "Backwards")
		req.EndDate = util.NewDate(2026, time.January, 1)

		_, err := svc.CreateCourse(ctx, req)
		assert.ErrorIs(t, err, catalog.ErrInvalidSchedule)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, courseRequest(uuid.New(), "Orphan"))
		assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	})
}

func TestUpdateCourseKeepsSeats(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	course := testutil.CreateCourse(t, db, 7)

	title := "Advanced Go"
	price := int64(9900)
	updated, err := svc.UpdateCourse(ctx, course.ID, catalog.UpdateCourseRequest{Title: &title, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, 7, updated.RemainingSeat)
	assert.Equal(t, course.Slug, updated.Slug)
}

func TestListCourses(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	a := testutil.CreateCourse(t, db, 10)
	testutil.CreateCourse(t, db, 10)

	all, err := svc.ListCourses(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	var category catalog.Category
	require.NoError(t, db.First(&category, "id = ?", a.CategoryID).Error)

	filtered, err := svc.ListCourses(ctx, category.Name)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, a.ID, filtered[0].ID)

	_, err = svc.ListCourses(ctx, "missing")
	assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
}

func TestModuleAndLessonOrder(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	course := testutil.CreateCourse(t, db, 10)

	module, err := svc.CreateModule(ctx, course.ID, catalog.CreateModuleRequest{Title: "Intro", Order: 1})
	require.NoError(t, err)

	_, err = svc.CreateModule(ctx, course.ID, catalog.CreateModuleRequest{Title: "Again", Order: 1})
	assert.ErrorIs(t, err, catalog.ErrModuleOrderTaken)

	_, err = svc.CreateLesson(ctx, module.ID, catalog.CreateLessonRequest{Title: "Hello", Order: 1})
	require.NoError(t, err)

	_, err = svc.CreateLesson(ctx, module.ID, catalog.CreateLessonRequest{Title: "Hello again", Order: 1})
	assert.ErrorIs(t, err, catalog.ErrLessonOrderTaken)

	_, err = svc.CreateLesson(ctx, uuid.New(), catalog.CreateLessonRequest{Title: "Nowhere", Order: 1})
	assert.ErrorIs(t, err, catalog.ErrModuleNotFound)
}

func TestCreateQuiz(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	course := testutil.CreateCourse(t, db, 10)
	module := testutil.CreateModule(t, db, course.ID, 1)

	quiz, err := svc.CreateQuiz(ctx, module.ID, catalog.CreateQuizRequest{Title: "Check", PassingScore: 60})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultQuizTimeLimit, quiz.TimeLimit)
	assert.Equal(t, 0, quiz.TotalQuestions)

	_, err = svc.CreateQuiz(ctx, module.ID, catalog.CreateQuizRequest{Title: "Second", PassingScore: 60})
	assert.ErrorIs(t, err, catalog.ErrQuizExists)
}

func TestQuestionInvariants(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	course := testutil.CreateCourse(t, db, 10)
	module := testutil.CreateModule(t, db, course.ID, 1)
	quiz := testutil.CreateQuiz(t, db, module.ID, 0)

	options := func(n, correct int) []catalog.OptionInput {
		out := make([]catalog.OptionInput, n)
		for i := range out {
			out[i] = catalog.OptionInput{OptionText: "opt", IsCorrect: i+1 == correct}
		}
		return out
	}

	t.Run("TooManyOptions", func(t *testing.T) {
		_, err := svc.CreateQuestion(ctx, quiz.ID, catalog.QuestionRequest{QuestionText: "?", Options: options(5, 1)})
		assert.ErrorIs(t, err, catalog.ErrTooManyOptions)
	})

	t.Run("NoCorrectOption", func(t *testing.T) {
		_, err := svc.CreateQuestion(ctx, quiz.ID, catalog.QuestionRequest{QuestionText: "?", Options: options(3, 0)})
		assert.ErrorIs(t, err, catalog.ErrCorrectOptionCount)
	})

	t.Run("TwoCorrectOptions", func(t *testing.T) {
		in := options(3, 1)
		in[2].IsCorrect = true
		_, err := svc.CreateQuestion(ctx, quiz.ID, catalog.QuestionRequest{QuestionText: "?", Options: in})
		assert.ErrorIs(t, err, catalog.ErrCorrectOptionCount)
	})

	var created *catalog.Question
	t.Run("Valid", func(t *testing.T) {
		q, err := svc.CreateQuestion(ctx, quiz.ID, catalog.QuestionRequest{QuestionText: "2+2?", Options: options(4, 3)})
		require.NoError(t, err)
		created = q

		assert.Equal(t, 3, q.CorrectOptionIndex)
		for i, o := range q.Options {
			assert.Equal(t, i+1, o.Order)
		}

		loaded, err := svc.GetQuizWithQuestionsAndOptions(ctx, quiz.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.TotalQuestions)
		require.Len(t, loaded.Questions, 1)
		require.Len(t, loaded.Questions[0].Options, 4)
		correct, ok := loaded.Questions[0].CorrectOption()
		require.True(t, ok)
		assert.Equal(t, 3, correct.Order)
	})

	t.Run("UpdateReplacesOptions", func(t *testing.T) {
		require.NotNil(t, created)
		_, err := svc.UpdateQuestion(ctx, created.ID, catalog.QuestionRequest{QuestionText: "2+3?", Options: options(2, 2)})
		require.NoError(t, err)

		loaded, err := svc.GetQuizWithQuestionsAndOptions(ctx, quiz.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Questions, 1)
		assert.Equal(t, "2+3?", loaded.Questions[0].QuestionText)
		assert.Len(t, loaded.Questions[0].Options, 2)
	})

	t.Run("DeleteSyncsCount", func(t *testing.T) {
		require.NotNil(t, created)
		require.NoError(t, svc.DeleteQuestion(ctx, created.ID))

		loaded, err := svc.GetQuizWithQuestionsAndOptions(ctx, quiz.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, loaded.TotalQuestions)
		assert.Empty(t, loaded.Questions)

		assert.ErrorIs(t, svc.DeleteQuestion(ctx, created.ID), catalog.ErrQuestionNotFound)
	})
}

func TestGetCourseOutline(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	course := testutil.CreateCourse(t, db, 10)

	second := testutil.CreateModule(t, db, course.ID, 2)
	first := testutil.CreateModule(t, db, course.ID, 1)
	testutil.CreateLesson(t, db, first.ID, 2)
	testutil.CreateLesson(t, db, first.ID, 1)
	quiz := testutil.CreateQuiz(t, db, second.ID, 1)

	outline, err := svc.GetCourseOutline(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, outline.Modules, 2)

	assert.Equal(t, first.ID, outline.Modules[0].ID)
	require.Len(t, outline.Modules[0].Lessons, 2)
	assert.Equal(t, 1, outline.Modules[0].Lessons[0].Order)
	assert.Equal(t, 2, outline.Modules[0].Lessons[1].Order)
	assert.Nil(t, outline.Modules[0].QuizID)

	require.NotNil(t, outline.Modules[1].QuizID)
	assert.Equal(t, quiz.ID, *outline.Modules[1].QuizID)

	_, err = svc.GetCourseOutline(ctx, uuid.New())
	assert.ErrorIs(t, err, catalog.ErrCourseNotFound)
}

func TestDeleteCourseCascades(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(t)
	course := testutil.CreateCourse(t, db, 10)
	module := testutil.CreateModule(t, db, course.ID, 1)
	testutil.CreateLesson(t, db, module.ID, 1)
	quiz := testutil.CreateQuiz(t, db, module.ID, 2)

	require.NoError(t, svc.DeleteCourse(ctx, course.ID))

	var count int64
	require.NoError(t, db.Model(&catalog.Module{}).Where("course_id = ?", course.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&catalog.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.DeleteCourse(ctx, course.ID), catalog.ErrCourseNotFound)
}
