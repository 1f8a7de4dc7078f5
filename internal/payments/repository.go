package payments

import (
	"context"

	"gorm.io/gorm"

	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
	"github.com/avalosmendoza/wedding-backend/pkg/enums"
)

// Repository persists payment transactions. One row exists per Stripe
// checkout session; only payment_status ever changes after insert.
type Repository interface {
	Insert(ctx context.Context, transaction *models.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)
	UpdateStatusBySessionID(ctx context.Context, sessionID string, status enums.PaymentStatus) error
	List(ctx context.Context) ([]models.PaymentTransaction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a transaction repository backed by the provided DB.
func NewRepository(db *gorm.DB) Repository {
	if db == nil {
		return nil
	}
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, transaction *models.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *repository) FindBySessionID(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// UpdateStatusBySessionID is a single-column last-write-wins update.
// Matching zero rows is not an error: webhook events for unknown
// sessions are acked without effect.
func (r *repository) UpdateStatusBySessionID(ctx context.Context, sessionID string, status enums.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Where("session_id = ?", sessionID).
		Update("payment_status", status).Error
}

func (r *repository) List(ctx context.Context) ([]models.PaymentTransaction, error) {
	var transactions []models.PaymentTransaction
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}
