package enrollment

import (
	"net/http"

	"github.com/saulo-duarte/coursehub-lambda/internal/apperror"
	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

type Handler struct {
	service EnrollmentService
	catalog catalog.CatalogService
}

func NewHandler(s EnrollmentService, catalogService catalog.CatalogService) *Handler {
	return &Handler{service: s, catalog: catalogService}
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	enrollments, err := h.service.ListForStudent(r.Context(), p, activeOnly)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, enrollments)
}

func (h *Handler) GetEnrollment(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) CancelEnrollment(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), e.ID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, cancelled)
}

// GetOutline returns the course outline behind an enrollment. Students need
// paid access; staff can always read it.
func (h *Handler) GetOutline(w http.ResponseWriter, r *http.Request) {
	e, ok := h.load(w, r)
	if !ok {
		return
	}

	p, _ := auth.PrincipalFromContext(r.Context())
	if p.IsStudent() {
		if _, err := h.service.RequireAccess(r.Context(), p, e.CourseID); err != nil {
			apperror.Write(w, r, err)
			return
		}
	}

	outline, err := h.catalog.GetCourseOutline(r.Context(), e.CourseID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, outline)
}

func (h *Handler) ListForCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	enrollments, err := h.service.ListForCourse(r.Context(), courseID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, enrollments)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Enrollment, bool) {
	p, err := auth.PrincipalFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return nil, false
	}

	enrollmentID, err := util.PathUUID(r, "id")
	if err != nil {
		apperror.Write(w, r, err)
		return nil, false
	}

	e, err := h.service.Get(r.Context(), p, enrollmentID)
	if err != nil {
		apperror.Write(w, r, err)
		return nil, false
	}
	return e, true
}
