package tenderos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tenderos repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tendero *models.Tendero) (*models.Tendero, error) {
	if err := r.db.WithContext(ctx).Create(tendero).Error; err != nil {
		return nil, err
	}
	return tendero, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Tendero, error) {
	var tendero models.Tendero
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tendero).Error
	if err != nil {
		return nil, err
	}
	return &tendero, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Tendero{}).
		Where("id = ?", id).
		Updates(updates).Error
}
