package enrollment

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
)

type EnrollmentContainer struct {
	Repo    EnrollmentRepository
	Service EnrollmentService
	Handler *Handler
}

func NewEnrollmentContainer(db *gorm.DB, catalogService catalog.CatalogService) *EnrollmentContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, catalogService)
	handler := NewHandler(service, catalogService)

	return &EnrollmentContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
