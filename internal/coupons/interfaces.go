package coupons

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
)

// Repository defines persistence operations for cupones.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cupon *models.Cupon) (*models.Cupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cupon, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForBodega(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error)
	ListRedeemableAt(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error)
}
