package bodegas

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Repository persists bodega profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bodega *models.Bodega) (*models.Bodega, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bodega, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	List(ctx context.Context, filters Filters, params pagination.Params) (*BodegaList, error)
}
