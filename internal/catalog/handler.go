package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

type Handler struct {
	service CatalogService
}

func NewHandler(s CatalogService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourseBySlug(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.GetCourseBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, course)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, category)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CreateCourseRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req UpdateCourseRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), courseID, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, course)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "course deleted successfully",
	})
}

func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	courseID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req CreateModuleRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	module, err := h.service.CreateModule(r.Context(), courseID, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, module)
}

func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	moduleID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req CreateLessonRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), moduleID, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, lesson)
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	moduleID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req CreateQuizRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	quiz, err := h.service.CreateQuiz(r.Context(), moduleID, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, quiz)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req QuestionRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	question, err := h.service.CreateQuestion(r.Context(), quizID, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, question)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var req QuestionRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		apperror.Write(w, r, err)
		return
	}

	question, err := h.service.UpdateQuestion(r.Context(), questionID, req)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, question)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), questionID); err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "question deleted successfully",
	})
}
