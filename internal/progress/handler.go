package progress

import (
	"net/http"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

type Handler struct {
	service ProgressService
}

func NewHandler(s ProgressService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	lessonID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	e, err := h.service.CompleteLesson(r.Context(), p, lessonID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	enrollmentID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), p, enrollmentID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, summary)
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	enrollmentID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	e, err := h.service.ReconcileEnrollment(r.Context(), p, enrollmentID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, e)
}
