package models

import (
	"time"

	"github.com/google/uuid"
)

// Bodega is a wholesale warehouse selling into neighborhood shops.
type Bodega struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Nombre    string    `gorm:"column:nombre;not null"`
	NIT       *string   `gorm:"column:nit"`
	Direccion string    `gorm:"column:direccion;not null"`
	Barrio    *string   `gorm:"column:barrio"`
	Telefono  *string   `gorm:"column:telefono"`
	Activa    bool      `gorm:"column:activa;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Bodega) TableName() string { return "bodegas" }
