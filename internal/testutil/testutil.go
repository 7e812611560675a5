// Package testutil provides an in-memory database and catalog fixtures for
// package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saulo-duarte/coursehub-lambda/internal/auth"
	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
	"github.com/saulo-duarte/coursehub-lambda/internal/migrations"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
	util "github.com/saulo-duarte/coursehub-lambda/internal/utils"
)

const CoursePrice int64 = 1500

// NewDB opens a private in-memory SQLite database with the full schema. A
// single connection serialises concurrent callers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.Run(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, role auth.Role) *user.User {
	t.Helper()

	id := uuid.New()
	u := &user.User{
		ID:       id,
		FullName: "User " + id.String()[:8],
		Email:    id.String()[:8] + "@example.com",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.NewRepository(db).Create(context.Background(), u))
	return u
}

func Principal(u *user.User) auth.Principal {
	return auth.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func CreateCategory(t *testing.T, db *gorm.DB) *catalog.Category {
	t.Helper()

	c := &catalog.Category{Name: "Category " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateCourse creates a course priced at CoursePrice with the given number of
// seats.
func CreateCourse(t *testing.T, db *gorm.DB, seats int) *catalog.Course {
	t.Helper()

	category := CreateCategory(t, db)
	c := &catalog.Course{
		CategoryID:    category.ID,
		Title:         "Go Fundamentals",
		Slug:          "go-fundamentals-" + uuid.NewString()[:8],
		Price:         CoursePrice,
		Duration:      30,
		RemainingSeat: seats,
		StartDate:     util.NewDate(2026, time.January, 5),
		EndDate:       util.NewDate(2026, time.March, 5),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateModule(t *testing.T, db *gorm.DB, courseID uuid.UUID, order int) *catalog.Module {
	t.Helper()

	m := &catalog.Module{CourseID: courseID, Title: fmt.Sprintf("Module %d", order), Order: order}
	require.NoError(t, db.Create(m).Error)
	return m
}

func CreateLesson(t *testing.T, db *gorm.DB, moduleID uuid.UUID, order int) *catalog.Lesson {
	t.Helper()

	l := &catalog.Lesson{ModuleID: moduleID, Title: fmt.Sprintf("Lesson %d", order), Duration: 10, Order: order}
	require.NoError(t, db.Create(l).Error)
	return l
}

// CreateQuiz creates a quiz with the given number of four-option questions.
// Question i has its correct option at order CorrectOrder(i).
func CreateQuiz(t *testing.T, db *gorm.DB, moduleID uuid.UUID, questions int) *catalog.Quiz {
	t.Helper()

	q := &catalog.Quiz{
		ModuleID:       moduleID,
		Title:          "Checkpoint",
		TotalQuestions: questions,
		PassingScore:   50,
		TimeLimit:      catalog.DefaultQuizTimeLimit,
	}
	require.NoError(t, db.Create(q).Error)

	for i := 0; i < questions; i++ {
		correct := CorrectOrder(i)
		question := &catalog.Question{
			QuizID:             q.ID,
			QuestionText:       fmt.Sprintf("Question %d", i+1),
			CorrectOptionIndex: correct,
		}
		require.NoError(t, db.Create(question).Error)

		for order := 1; order <= catalog.MaxOptionsPerQuestion; order++ {
			o := catalog.Option{
				QuestionID: question.ID,
				OptionText: fmt.Sprintf("Option %d", order),
				Order:      order,
				IsCorrect:  order == correct,
			}
			require.NoError(t, db.Create(&o).Error)
			question.Options = append(question.Options, o)
		}
		q.Questions = append(q.Questions, *question)
	}
	return q
}

func CorrectOrder(i int) int {
	return i%catalog.MaxOptionsPerQuestion + 1
}

// CreateEnrollment inserts an enrollment directly, without consuming a seat.
func CreateEnrollment(
	t *testing.T,
	db *gorm.DB,
	studentID, courseID uuid.UUID,
	status enrollment.Status,
	paymentStatus enrollment.PaymentStatus,
) *enrollment.Enrollment {
	t.Helper()

	e := &enrollment.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: time.Now().UTC(),
		Status:         status,
		PaymentStatus:  paymentStatus,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

func ActiveEnrollment(t *testing.T, db *gorm.DB, studentID, courseID uuid.UUID) *enrollment.Enrollment {
	t.Helper()
	return CreateEnrollment(t, db, studentID, courseID, enrollment.StatusActive, enrollment.PaymentSuccess)
}

func ReloadEnrollment(t *testing.T, db *gorm.DB, id uuid.UUID) *enrollment.Enrollment {
	t.Helper()

	var e enrollment.Enrollment
	require.NoError(t, db.First(&e, "id = ?", id).Error)
	return &e
}

func ReloadCourse(t *testing.T, db *gorm.DB, id uuid.UUID) *catalog.Course {
	t.Helper()

	var c catalog.Course
	require.NoError(t, db.First(&c, "id = ?", id).Error)
	return &c
}
