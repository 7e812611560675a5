package payment

import (
	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
)

func CheckoutRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Checkout)
	r.Get("/{slug}", h.GetCheckout)
	return r
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleInstructor))

	r.Post("/verify", h.Verify)
	r.Get("/{transactionID}", h.GetPayment)
	return r
}
