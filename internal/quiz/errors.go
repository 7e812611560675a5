package quiz

import "github.com/saulo-duarte/coursehub-lambda/internal/apperror"

var (
	ErrAlreadySubmitted = apperror.Conflict("quiz already submitted")
	ErrResultNotFound   = apperror.NotFound("quiz result not found")
	ErrDraftConflict    = apperror.Conflict("quiz attempt changed concurrently, retry")
)
