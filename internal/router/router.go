package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/config"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/middlewares"
	"github.com/saulo-duarte/coursehub-lambda/internal/payment"
	"github.com/saulo-duarte/coursehub-lambda/internal/progress"
	"github.com/saulo-duarte/coursehub-lambda/internal/quiz"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CatalogHandler    *catalog.Handler
	EnrollmentHandler *enrollment.Handler
	ProgressHandler   *progress.Handler
	QuizHandler       *quiz.Handler
	PaymentHandler    *payment.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/health", health)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Mount("/courses", catalog.Routes(cfg.CatalogHandler))
	r.Get("/categories", cfg.CatalogHandler.ListCategories)
	r.Mount("/admin", catalog.AdminRoutes(cfg.CatalogHandler))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/checkout", payment.CheckoutRoutes(cfg.PaymentHandler))
		r.Mount("/payments", payment.Routes(cfg.PaymentHandler))
		r.Mount("/enrollments", enrollment.Routes(cfg.EnrollmentHandler))
		r.Mount("/lessons", progress.Routes(cfg.ProgressHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))

		r.Get("/enrollments/{id}/progress", cfg.ProgressHandler.GetSummary)
		r.With(auth.RequireRole(auth.RoleAdmin, auth.RoleInstructor)).
			Post("/enrollments/{id}/reconcile", cfg.ProgressHandler.Reconcile)
	})
	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
