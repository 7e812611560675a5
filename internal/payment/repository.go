package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository

	Create(ctx context.Context, p *Payment) error
	GetByTransaction(ctx context.Context, transactionID string) (*Payment, error)
	GetByTransactionForUpdate(ctx context.Context, transactionID string) (*Payment, error)
	GetByEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*Payment, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	return &paymentRepository{db: tx}
}

func (r *paymentRepository) Create(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *paymentRepository) find(db *gorm.DB, query string, args ...interface{}) (*Payment, error) {
	var p Payment
	if err := db.Where(query, args...).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) GetByTransaction(ctx context.Context, transactionID string) (*Payment, error) {
	return r.find(r.db.WithContext(ctx), "transaction_id = ?", transactionID)
}

func (r *paymentRepository) GetByTransactionForUpdate(ctx context.Context, transactionID string) (*Payment, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "transaction_id = ?", transactionID)
}

func (r *paymentRepository) GetByEnrollment(ctx context.Context, enrollmentID uuid.UUID) (*Payment, error) {
	return r.find(r.db.WithContext(ctx), "enrollment_id = ?", enrollmentID)
}

func (r *paymentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Payment{ID: id}).Updates(fields).Error
}
