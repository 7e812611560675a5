package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListCourses)
	r.Get("/{slug}", h.GetCourseBySlug)
	return r
}

func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)
	r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleInstructor))

	r.Post("/categories", h.CreateCategory)
	r.Post("/courses", h.CreateCourse)
	r.Put("/courses/{id}", h.UpdateCourse)
	r.Delete("/courses/{id}", h.DeleteCourse)
	r.Post("/courses/{id}/modules", h.CreateModule)
	r.Post("/modules/{id}/lessons", h.CreateLesson)
	r.Post("/modules/{id}/quiz", h.CreateQuiz)
	r.Post("/quizzes/{id}/questions", h.CreateQuestion)
	r.Put("/questions/{id}", h.UpdateQuestion)
	r.Delete("/questions/{id}", h.DeleteQuestion)
	return r
}
