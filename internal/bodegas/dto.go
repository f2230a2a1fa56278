package bodegas

import (
	"time"

	"github.com/google/uuid"
)

// Filters narrows the bodega directory. Query matches nombre and barrio.
type Filters struct {
	Query      string
	Barrio     string
	OnlyActive bool
}

// BodegaSummary is the directory-level shape of a bodega.
type BodegaSummary struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	Barrio    *string   `json:"barrio,omitempty"`
	Telefono  *string   `json:"telefono,omitempty"`
	Activa    bool      `json:"activa"`
	CreatedAt time.Time `json:"created_at"`
}

// BodegaList is a cursor-paginated page of bodegas.
type BodegaList struct {
	Bodegas    []BodegaSummary `json:"bodegas"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// CreateInput registers a bodega.
type CreateInput struct {
	Nombre    string  `json:"nombre" validate:"required"`
	NIT       *string `json:"nit"`
	Direccion string  `json:"direccion" validate:"required"`
	Barrio    *string `json:"barrio"`
	Telefono  *string `json:"telefono"`
}

// UpdateInput carries partial profile edits. Nil fields stay untouched.
type UpdateInput struct {
	Nombre    *string `json:"nombre"`
	NIT       *string `json:"nit"`
	Direccion *string `json:"direccion"`
	Barrio    *string `json:"barrio"`
	Telefono  *string `json:"telefono"`
	Activa    *bool   `json:"activa"`
}
