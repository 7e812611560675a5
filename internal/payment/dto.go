package payment

import (
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
)

type CheckoutRequest struct {
	Amount        int64  `json:"amount" validate:"gte=0"`
	PaymentMethod Method `json:"payment_method" validate:"required,oneof=card bkash stripe bank_transfer midtrans"`
	TransactionID string `json:"transaction_id" validate:"notblank,max=100"`
}

type VerifyRequest struct {
	TransactionID string `json:"transaction_id" validate:"notblank"`
	Status        Status `json:"status" validate:"required,oneof=success failed"`
}

type CheckoutResult struct {
	Enrollment  *enrollment.Enrollment `json:"enrollment"`
	Payment     *Payment               `json:"payment"`
	RedirectURL string                 `json:"redirect_url,omitempty"`
}

type CheckoutView struct {
	Course     *catalog.Course        `json:"course"`
	Enrollment *enrollment.Enrollment `json:"enrollment,omitempty"`
	Payment    *Payment               `json:"payment,omitempty"`
}
