package loyalty

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Repository defines persistence operations for the points ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPedido(ctx context.Context, pedidoID uuid.UUID) (*models.Pedido, error)
	FindTendero(ctx context.Context, tenderoID uuid.UUID) (*models.Tendero, error)
	FindAcreditacion(ctx context.Context, pedidoID uuid.UUID) (*models.MovimientoPuntos, error)
	InsertMovimiento(ctx context.Context, mov *models.MovimientoPuntos) error
	AdjustSaldo(ctx context.Context, tenderoID uuid.UUID, delta int64) error
	ListMovimientos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*MovimientoList, error)
}
