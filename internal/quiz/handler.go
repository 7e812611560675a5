package quiz

import (
	"net/http"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	quizID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	view, err := h.service.GetQuizForStudent(r.Context(), p, quizID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	quizID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req SubmitRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	result, err := h.service.SubmitQuiz(r.Context(), p, quizID, req.SelectedOptions)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, result)
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	quizID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req SubmitRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	draft, err := h.service.SaveDraft(r.Context(), p, quizID, req.SelectedOptions)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, draft)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	quizID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	result, err := h.service.GetResult(r.Context(), p, quizID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, result)
}
