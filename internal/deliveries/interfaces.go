package deliveries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Repository persists entregas and surfaces the pedido fields the courier
// flows need alongside each row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entrega *models.Entrega) (*models.Entrega, error)
	FindByID(ctx context.Context, id uuid.UUID) (*EntregaRow, error)
	FindByPedido(ctx context.Context, pedidoID uuid.UUID) (*models.Entrega, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListDisponibles(ctx context.Context, params pagination.Params) (*EntregaList, error)
	ListForRepartidor(ctx context.Context, repartidorID uuid.UUID, params pagination.Params) (*EntregaList, error)
}
