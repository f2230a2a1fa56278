package tenderos

import (
	"github.com/veciplaza/veciplaza-backend/internal/loyalty"
)

// CreateInput registers a tendero and their shop.
type CreateInput struct {
	Nombre    string  `json:"nombre" validate:"required"`
	Tienda    string  `json:"tienda" validate:"required"`
	Direccion string  `json:"direccion" validate:"required"`
	Barrio    *string `json:"barrio"`
	Telefono  *string `json:"telefono"`
}

// UpdateInput carries partial profile edits. Nil fields stay untouched.
type UpdateInput struct {
	Nombre    *string `json:"nombre"`
	Tienda    *string `json:"tienda"`
	Direccion *string `json:"direccion"`
	Barrio    *string `json:"barrio"`
	Telefono  *string `json:"telefono"`
}

// PuntosView pairs the current saldo with its recent ledger page.
type PuntosView struct {
	Saldo       int64                     `json:"saldo"`
	Movimientos []loyalty.MovimientoSummary `json:"movimientos"`
	NextCursor  string                    `json:"next_cursor,omitempty"`
}
