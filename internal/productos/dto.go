package productos

import (
	"time"

	"github.com/google/uuid"
)

// Filters narrows a catalog search. Query matches nombre and sinonimos.
type Filters struct {
	Query      string
	Categoria  string
	OnlyActive bool
}

// ProductoSummary is the list-level shape of a catalog entry.
type ProductoSummary struct {
	ID         uuid.UUID `json:"id"`
	Nombre     string    `json:"nombre"`
	Categoria  string    `json:"categoria"`
	PrecioCOP  int64     `json:"precio_cop"`
	PuntosBase int64     `json:"puntos_base"`
	Stock      int       `json:"stock"`
	Activo     bool      `json:"activo"`
	ImagenURL  *string   `json:"imagen_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProductoList is a cursor-paginated page of catalog entries.
type ProductoList struct {
	Productos  []ProductoSummary `json:"productos"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// CreateInput describes a new catalog entry.
type CreateInput struct {
	Nombre     string  `json:"nombre" validate:"required"`
	Categoria  string  `json:"categoria" validate:"required"`
	PrecioCOP  int64   `json:"precio_cop" validate:"required,gt=0"`
	PuntosBase int64   `json:"puntos_base" validate:"gte=0"`
	Sinonimos  *string `json:"sinonimos"`
	ImagenURL  *string `json:"imagen_url"`
	Stock      int     `json:"stock" validate:"gte=0"`
}

// UpdateInput carries partial catalog edits. Nil fields stay untouched.
type UpdateInput struct {
	Nombre     *string `json:"nombre"`
	Categoria  *string `json:"categoria"`
	PrecioCOP  *int64  `json:"precio_cop"`
	PuntosBase *int64  `json:"puntos_base"`
	Sinonimos  *string `json:"sinonimos"`
	ImagenURL  *string `json:"imagen_url"`
	Stock      *int    `json:"stock"`
	Activo     *bool   `json:"activo"`
}

// ImportReport summarizes one CSV catalog import.
type ImportReport struct {
	Creados      int      `json:"creados"`
	Actualizados int      `json:"actualizados"`
	Errores      []string `json:"errores,omitempty"`
}

// ImportedEvent is the outbox payload emitted after a CSV import.
type ImportedEvent struct {
	BodegaID     uuid.UUID `json:"bodega_id"`
	Creados      int       `json:"creados"`
	Actualizados int       `json:"actualizados"`
	Errores      int       `json:"errores"`
}
