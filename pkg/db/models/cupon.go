package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// Cupon is a discount rule owned by a bodega or, when BodegaID is nil, by the
// platform (valid at every bodega). Codigo is unique case-insensitively.
type Cupon struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BodegaID       *uuid.UUID      `gorm:"column:bodega_id;type:uuid"`
	Codigo         string          `gorm:"column:codigo;not null;uniqueIndex:ux_cupones_codigo"`
	Tipo           enums.CuponTipo `gorm:"column:tipo;type:cupon_tipo;not null"`
	Valor          int64           `gorm:"column:valor;not null"`
	MinSubtotalCOP int64           `gorm:"column:min_subtotal_cop;not null;default:0"`
	Activo         bool            `gorm:"column:activo;not null;default:true"`
	VigenteDesde   *time.Time      `gorm:"column:vigente_desde"`
	VigenteHasta   *time.Time      `gorm:"column:vigente_hasta"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Cupon) TableName() string { return "cupones" }
