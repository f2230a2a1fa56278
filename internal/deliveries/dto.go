package deliveries

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// EntregaRow is an entrega joined with the pedido fields couriers act on.
type EntregaRow struct {
	ID           uuid.UUID          `gorm:"column:id" json:"id"`
	PedidoID     uuid.UUID          `gorm:"column:pedido_id" json:"pedido_id"`
	NumeroPedido int64              `gorm:"column:numero_pedido" json:"numero_pedido"`
	Estado       enums.PedidoEstado `gorm:"column:estado" json:"estado"`
	BodegaID     uuid.UUID          `gorm:"column:bodega_id" json:"bodega_id"`
	TenderoID    uuid.UUID          `gorm:"column:tendero_id" json:"tendero_id"`
	RepartidorID *uuid.UUID         `gorm:"column:repartidor_id" json:"repartidor_id,omitempty"`
	RecogidaAt   *time.Time         `gorm:"column:recogida_at" json:"recogida_at,omitempty"`
	EntregadaAt  *time.Time         `gorm:"column:entregada_at" json:"entregada_at,omitempty"`
	Incidencia   *string            `gorm:"column:incidencia" json:"incidencia,omitempty"`
	CreatedAt    time.Time          `gorm:"column:created_at" json:"created_at"`
}

// EntregaList is a cursor-paginated page of entregas.
type EntregaList struct {
	Entregas   []EntregaRow `json:"entregas"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// IncidenciaInput describes a courier-reported problem on an entrega.
type IncidenciaInput struct {
	EntregaID    uuid.UUID
	RepartidorID uuid.UUID
	Nota         string
}

// IncidenciaEvent is the outbox payload emitted when a courier reports a
// problem with a delivery.
type IncidenciaEvent struct {
	EntregaID    uuid.UUID `json:"entrega_id"`
	PedidoID     uuid.UUID `json:"pedido_id"`
	NumeroPedido int64     `json:"numero_pedido"`
	BodegaID     uuid.UUID `json:"bodega_id"`
	RepartidorID uuid.UUID `json:"repartidor_id"`
	Nota         string    `json:"nota"`
}
