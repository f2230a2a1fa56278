package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Repository defines persistence operations for pedidos.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, pedido *models.Pedido) (*models.Pedido, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListByTendero(ctx context.Context, tenderoID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error)
	ListByBodega(ctx context.Context, bodegaID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error)
}
