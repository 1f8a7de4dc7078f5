package comments

import (
	"context"

	"gorm.io/gorm"

	"github.com/avalosmendoza/wedding-backend/pkg/db/models"
)

// Repository persists guest-book comments.
type Repository interface {
	Insert(ctx context.Context, comment *models.Comment) error
	ListRecent(ctx context.Context, limit int) ([]models.Comment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a comment repository backed by the provided DB.
func NewRepository(db *gorm.DB) Repository {
	if db == nil {
		return nil
	}
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repository) ListRecent(ctx context.Context, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
