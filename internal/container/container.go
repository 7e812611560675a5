package container

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/migrations"
	"github.com/saulo-duarte/coursehub-lambda/internal/notification"
	"github.com/saulo-duarte/coursehub-lambda/internal/payment"
	"github.com/saulo-duarte/coursehub-lambda/internal/progress"
	"github.com/saulo-duarte/coursehub-lambda/internal/quiz"
	"github.com/saulo-duarte/coursehub-lambda/internal/router"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CatalogContainer    *catalog.CatalogContainer
	EnrollmentContainer *enrollment.EnrollmentContainer
	ProgressContainer   *progress.ProgressContainer
	QuizContainer       *quiz.QuizContainer
	PaymentContainer    *payment.PaymentContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	if err := config.Connect(context.Background(), config.Conf.GetString("DATABASE_DSN")); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if config.Conf.GetBool("AUTO_MIGRATE") {
		if err := migrations.Run(config.DB); err != nil {
			log.Fatalf("failed to migrate DB: %v", err)
		}
	}

	notifier := notification.NewNotifier(notification.NewSender())
	return Build(config.DB, notifier, payment.NewGateway())
}

// Build wires every feature container on top of db.
func Build(db *gorm.DB, notifier *notification.Notifier, gateway payment.Gateway) *Container {
	userContainer := user.NewUserContainer(db)
	catalogContainer := catalog.NewCatalogContainer(db)
	enrollmentContainer := enrollment.NewEnrollmentContainer(db, catalogContainer.Service)

	progressContainer := progress.NewProgressContainer(
		db,
		catalogContainer,
		enrollmentContainer,
		userContainer.Repo,
		notifier,
	)
	quizContainer := quiz.NewQuizContainer(
		db,
		catalogContainer.Service,
		enrollmentContainer.Service,
		progressContainer,
	)
	paymentContainer := payment.NewPaymentContainer(
		db,
		catalogContainer.Service,
		enrollmentContainer,
		userContainer.Repo,
		notifier,
		gateway,
	)

	return &Container{
		UserContainer:       userContainer,
		CatalogContainer:    catalogContainer,
		EnrollmentContainer: enrollmentContainer,
		ProgressContainer:   progressContainer,
		QuizContainer:       quizContainer,
		PaymentContainer:    paymentContainer,
	}
}

func (c *Container) RouterConfig() router.RouterConfig {
	return router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CatalogHandler:    c.CatalogContainer.Handler,
		EnrollmentHandler: c.EnrollmentContainer.Handler,
		ProgressHandler:   c.ProgressContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		PaymentHandler:    c.PaymentContainer.Handler,
	}
}
