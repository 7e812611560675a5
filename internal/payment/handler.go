package payment

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

var errMissingCourse = apperror.Validation("course query parameter is required",
	apperror.FieldError{Field: "course", Error: "this field is required"})

type Handler struct {
	service PaymentService
}

func NewHandler(s PaymentService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	courseSlug := strings.TrimSpace(r.URL.Query().Get("course"))
	if courseSlug == "" {
		apperror.Write(w, r, errMissingCourse)
		return
	}

	var req CheckoutRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	result, err := h.service.Checkout(r.Context(), p, courseSlug, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, result)
}

func (h *Handler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	view, err := h.service.GetCheckout(r.Context(), p, chi.URLParam(r, "slug"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	payment, err := h.service.Verify(r.Context(), req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, payment)
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetByTransaction(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, payment)
}
