package models

import (
	"time"

	"github.com/google/uuid"
)

// Producto belongs to one bodega's catalog. Sinonimos holds comma-separated
// alternate names used by search (CSV imports carry regional product names).
type Producto struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BodegaID   uuid.UUID `gorm:"column:bodega_id;type:uuid;not null"`
	Nombre     string    `gorm:"column:nombre;not null"`
	Categoria  string    `gorm:"column:categoria;not null"`
	PrecioCOP  int64     `gorm:"column:precio_cop;not null"`
	PuntosBase int64     `gorm:"column:puntos_base;not null;default:0"`
	Sinonimos  *string   `gorm:"column:sinonimos"`
	ImagenURL  *string   `gorm:"column:imagen_url"`
	Stock      int       `gorm:"column:stock;not null;default:0"`
	Activo     bool      `gorm:"column:activo;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Producto) TableName() string { return "productos" }
