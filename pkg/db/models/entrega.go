package models

import (
	"time"

	"github.com/google/uuid"
)

// Entrega tracks the courier leg of a pedido. One row per pedido, created when
// the bodega marks the order listo.
type Entrega struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PedidoID     uuid.UUID  `gorm:"column:pedido_id;type:uuid;not null;uniqueIndex:ux_entregas_pedido"`
	RepartidorID *uuid.UUID `gorm:"column:repartidor_id;type:uuid"`
	RecogidaAt   *time.Time `gorm:"column:recogida_at"`
	EntregadaAt  *time.Time `gorm:"column:entregada_at"`
	Incidencia   *string    `gorm:"column:incidencia"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Entrega) TableName() string { return "entregas" }
