package productos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Repository persists bodega catalog entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, producto *models.Producto) (*models.Producto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Producto, error)
	FindByNombre(ctx context.Context, bodegaID uuid.UUID, nombre string) (*models.Producto, error)
	FindActiveByIDs(ctx context.Context, bodegaID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, bodegaID uuid.UUID, filters Filters, params pagination.Params) (*ProductoList, error)
}
