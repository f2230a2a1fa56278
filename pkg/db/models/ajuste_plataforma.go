package models

import "time"

// AjustePlataforma is a keyed platform setting row. The admin UI currently
// manages only the AI-assistant toggle, but the table is generic.
type AjustePlataforma struct {
	Clave     string    `gorm:"column:clave;primaryKey"`
	Valor     string    `gorm:"column:valor;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (AjustePlataforma) TableName() string { return "ajustes_plataforma" }
