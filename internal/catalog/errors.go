package catalog

import "github.com/saulo-duarte/coursehub-lambda/internal/apperror"

var (
	ErrCategoryNotFound = apperror.NotFound("category not found")
	ErrCourseNotFound   = apperror.NotFound("course not found")
	ErrModuleNotFound   = apperror.NotFound("module not found")
	ErrLessonNotFound   = apperror.NotFound("lesson not found")
	ErrQuizNotFound     = apperror.NotFound("quiz not found")
	ErrQuestionNotFound = apperror.NotFound("question not found")

	ErrCategoryExists   = apperror.Conflict("category already exists")
	ErrSlugTaken        = apperror.Conflict("course slug already exists")
	ErrModuleOrderTaken = apperror.Conflict("module order already used in this course")
	ErrLessonOrderTaken = apperror.Conflict("lesson order already used in this module")
	ErrQuizExists       = apperror.Conflict("module already has a quiz")

	ErrInvalidSchedule = apperror.Validation("end_date must not be before start_date",
		apperror.FieldError{Field: "end_date", Error: "must not be before start_date"})
	ErrTooManyOptions = apperror.Validation("a question has at most 4 options",
		apperror.FieldError{Field: "options", Error: "at most 4 options are allowed"})
	ErrCorrectOptionCount = apperror.Validation("a question must have exactly one correct option",
		apperror.FieldError{Field: "options", Error: "exactly one option must be marked correct"})
)
