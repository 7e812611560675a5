package enrollment

import (
	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/mine", h.ListMine)
	r.With(auth.RequireRole(auth.RoleAdmin, auth.RoleInstructor)).Get("/by-course/{id}", h.ListForCourse)
	r.Get("/{id}", h.GetEnrollment)
	r.Post("/{id}/cancel", h.CancelEnrollment)
	r.Get("/{id}/outline", h.GetOutline)
	return r
}
