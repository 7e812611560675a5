package migrations

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/payment"
	"github.com/saulo-duarte/coursehub-lambda/internal/progress"
	"github.com/saulo-duarte/coursehub-lambda/internal/quiz"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

// Models lists every table in foreign key order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&catalog.Category{},
		&catalog.Course{},
		&catalog.Module{},
		&catalog.Lesson{},
		&catalog.Quiz{},
		&catalog.Question{},
		&catalog.Option{},
		&enrollment.Enrollment{},
		&payment.Payment{},
		&progress.StudentProgress{},
		&quiz.QuizResult{},
	}
}

func Run(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return errors.Wrapf(err, "migrating %T", m)
		}
	}
	return nil
}
