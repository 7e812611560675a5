package enrollment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/catalog"
	"github.com/saulo-duarte/coursehub-lambda/internal/user"
)

type Enrollment struct {
	ID                uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID         uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_student_course,priority:1" json:"student_id"`
	CourseID          uuid.UUID     `gorm:"type:uuid;not null;index;uniqueIndex:idx_enrollments_student_course,priority:2" json:"course_id"`
	EnrollmentDate    time.Time     `gorm:"not null" json:"enrollment_date"`
	Progress          int           `gorm:"not null;default:0;check:chk_enrollments_progress,progress >= 0 AND progress <= 100" json:"progress"`
	Status            Status        `gorm:"type:varchar(20);not null" json:"status"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	CompletionDate    *time.Time    `json:"completion_date,omitempty"`
	CertificateIssued bool          `gorm:"not null;default:false" json:"certificate_issued"`
	CreatedAt         time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Student *user.User      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Course  *catalog.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// GrantsAccess reports whether the enrollment unlocks course content.
func (e *Enrollment) GrantsAccess() bool {
	return e.PaymentStatus == PaymentSuccess && e.Status != StatusCancelled
}
