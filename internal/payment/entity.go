package payment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/coursehub-lambda/internal/enrollment"
)

type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"enrollment_id"`
	Amount        int64      `gorm:"not null" json:"amount"`
	PaymentMethod Method     `gorm:"type:varchar(20);not null" json:"payment_method"`
	TransactionID string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"transaction_id"`
	Status        Status     `gorm:"type:varchar(20);not null" json:"status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	RedirectURL   string     `gorm:"type:varchar(500)" json:"redirect_url,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Enrollment *enrollment.Enrollment `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
