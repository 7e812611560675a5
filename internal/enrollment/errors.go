package enrollment

import "github.com/saulo-duarte/coursehub-lambda/internal/apperror"

var (
	ErrEnrollmentNotFound = apperror.NotFound("enrollment not found")
	ErrNoSeatsAvailable   = apperror.Conflict("no seats available for this course")
	ErrStudentsOnly       = apperror.Unauthorized("only students can enroll in courses")
	ErrNotEnrolled        = apperror.Unauthorized("an active, paid enrollment in this course is required")
)
