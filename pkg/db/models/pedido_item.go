package models

import (
	"time"

	"github.com/google/uuid"
)

// PedidoItem snapshots one product line at order time, so later catalog edits
// never rewrite history. PuntosBase > 0 marks a flat loyalty-point override.
type PedidoItem struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PedidoID          uuid.UUID  `gorm:"column:pedido_id;type:uuid;not null"`
	ProductoID        *uuid.UUID `gorm:"column:producto_id;type:uuid"`
	Nombre            string     `gorm:"column:nombre;not null"`
	PrecioUnitarioCOP int64      `gorm:"column:precio_unitario_cop;not null"`
	Cantidad          int        `gorm:"column:cantidad;not null"`
	PuntosBase        int64      `gorm:"column:puntos_base;not null;default:0"`
	SubtotalCOP       int64      `gorm:"column:subtotal_cop;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (PedidoItem) TableName() string { return "pedido_items" }
