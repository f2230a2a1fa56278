package coupons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cupones repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, cupon *models.Cupon) (*models.Cupon, error) {
	if err := r.db.WithContext(ctx).Create(cupon).Error; err != nil {
		return nil, err
	}
	return cupon, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cupon, error) {
	var cupon models.Cupon
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cupon).Error
	if err != nil {
		return nil, err
	}
	return &cupon, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Cupon{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Cupon{}).Error
}

func (r *repository) ListForBodega(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error) {
	var cupones []models.Cupon
	err := r.db.WithContext(ctx).
		Where("bodega_id = ?", bodegaID).
		Order("created_at DESC").
		Find(&cupones).Error
	return cupones, err
}

// ListRedeemableAt returns the coupons a checkout at the bodega may match:
// the bodega's own plus platform-wide ones (nil bodega_id).
func (r *repository) ListRedeemableAt(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error) {
	var cupones []models.Cupon
	err := r.db.WithContext(ctx).
		Where("bodega_id = ? OR bodega_id IS NULL", bodegaID).
		Find(&cupones).Error
	return cupones, err
}
