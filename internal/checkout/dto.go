package checkout

import (
	"github.com/google/uuid"
)

// Input submits the tendero's current cart at one bodega as a pedido.
type Input struct {
	TenderoID   uuid.UUID
	BodegaID    uuid.UUID
	CuponCodigo string
	Notas       *string
}

// PedidoCreadoEvent is the outbox payload emitted when checkout succeeds.
type PedidoCreadoEvent struct {
	PedidoID         uuid.UUID `json:"pedido_id"`
	NumeroPedido     int64     `json:"numero_pedido"`
	TenderoID        uuid.UUID `json:"tendero_id"`
	BodegaID         uuid.UUID `json:"bodega_id"`
	TotalOriginalCOP int64     `json:"total_original_cop"`
	DescuentoCOP     int64     `json:"descuento_cop"`
	TotalCOP         int64     `json:"total_cop"`
	TotalItems       int       `json:"total_items"`
}

// CuponRedimidoEvent is the outbox payload emitted when a pedido consumes a
// coupon.
type CuponRedimidoEvent struct {
	CuponID      uuid.UUID `json:"cupon_id"`
	Codigo       string    `json:"codigo"`
	PedidoID     uuid.UUID `json:"pedido_id"`
	TenderoID    uuid.UUID `json:"tendero_id"`
	BodegaID     uuid.UUID `json:"bodega_id"`
	DescuentoCOP int64     `json:"descuento_cop"`
}
