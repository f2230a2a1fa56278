package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// MovimientoPuntos is one signed entry in a tendero's loyalty ledger. Accruals
// are positive, redemptions negative; the running balance never goes below 0.
type MovimientoPuntos struct {
	ID        uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenderoID uuid.UUID                    `gorm:"column:tendero_id;type:uuid;not null"`
	PedidoID  *uuid.UUID                   `gorm:"column:pedido_id;type:uuid"`
	Puntos    int64                        `gorm:"column:puntos;not null"`
	Motivo    enums.MovimientoPuntosMotivo `gorm:"column:motivo;type:movimiento_motivo;not null"`
	Detalle   *string                      `gorm:"column:detalle"`
	CreatedAt time.Time                    `gorm:"column:created_at;autoCreateTime"`
}

func (MovimientoPuntos) TableName() string { return "movimientos_puntos" }
