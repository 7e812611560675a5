package quiz

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/progress"
)

type QuizContainer struct {
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(
	db *gorm.DB,
	catalogService catalog.CatalogService,
	enrollmentService enrollment.EnrollmentService,
	progressContainer *progress.ProgressContainer,
) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, catalogService, enrollmentService, progressContainer.Repo, progressContainer.Reconciler)
	handler := NewHandler(service)

	return &QuizContainer{
		Service: service,
		Handler: handler,
	}
}
