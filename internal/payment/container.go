package payment

import (
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/notification"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type PaymentContainer struct {
	Repo    PaymentRepository
	Service PaymentService
	Handler *Handler
}

func NewPaymentContainer(
	db *gorm.DB,
	catalogService catalog.CatalogService,
	enrollmentContainer *enrollment.EnrollmentContainer,
	userRepo user.UserRepository,
	notifier *notification.Notifier,
	gateway Gateway,
) *PaymentContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, enrollmentContainer.Repo, enrollmentContainer.Service, catalogService, userRepo, notifier, gateway)
	handler := NewHandler(service)

	return &PaymentContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
