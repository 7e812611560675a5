package payment

import "github.com/saulo-duarte/coursehub-lambda/internal/apperror"

var (
	ErrPaymentNotFound      = apperror.NotFound("payment not found")
	ErrDuplicateTransaction = apperror.Conflict("transaction id already used")
	ErrPaymentExists        = apperror.Conflict("enrollment already has a payment")
	ErrAlreadyPaid          = apperror.Conflict("enrollment is already paid")
	ErrInvalidTransition    = apperror.Conflict("payment cannot move to the requested status")
	ErrAmountMismatch       = apperror.Validation("amount does not match the course price",
		apperror.FieldError{Field: "amount", Error: "must equal the course price"})
)
