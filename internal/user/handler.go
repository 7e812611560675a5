package user

import (
	"net/http"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	u, err := h.service.GetCurrent(r.Context(), p)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, u)
}
