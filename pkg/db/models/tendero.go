package models

import (
	"time"

	"github.com/google/uuid"
)

// Tendero is a neighborhood shop owner. PuntosSaldo is the loyalty balance,
// maintained exclusively through movimientos_puntos rows.
type Tendero struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Nombre      string    `gorm:"column:nombre;not null"`
	Tienda      string    `gorm:"column:tienda;not null"`
	Direccion   string    `gorm:"column:direccion;not null"`
	Barrio      *string   `gorm:"column:barrio"`
	Telefono    *string   `gorm:"column:telefono"`
	PuntosSaldo int64     `gorm:"column:puntos_saldo;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tendero) TableName() string { return "tenderos" }
