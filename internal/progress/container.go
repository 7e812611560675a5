package progress

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/notification"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type ProgressContainer struct {
	Repo       ProgressRepository
	Reconciler *Reconciler
	Service    ProgressService
	Handler    *Handler
}

func NewProgressContainer(
	db *gorm.DB,
	catalogContainer *catalog.CatalogContainer,
	enrollmentContainer *enrollment.EnrollmentContainer,
	userRepo user.UserRepository,
	notifier *notification.Notifier,
) *ProgressContainer {
	repo := NewRepository(db)
	reconciler := NewReconciler(repo, enrollmentContainer.Repo, catalogContainer.Repo, userRepo, notifier)
	service := NewService(db, repo, reconciler, catalogContainer.Service, enrollmentContainer.Service)
	handler := NewHandler(service)

	return &ProgressContainer{
		Repo:       repo,
		Reconciler: reconciler,
		Service:    service,
		Handler:    handler,
	}
}
