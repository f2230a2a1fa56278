package cart

import (
	"time"

	"github.com/google/uuid"
)

// storedCart is the JSON document kept in Redis. Only product references and
// quantities are stored; prices come from the catalog at read time.
type storedCart struct {
	BodegaID  uuid.UUID    `json:"bodega_id"`
	Items     []storedItem `json:"items"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type storedItem struct {
	ProductoID uuid.UUID `json:"producto_id"`
	Cantidad   int       `json:"cantidad"`
}

// ItemInput adds or adjusts one product in the cart.
type ItemInput struct {
	ProductoID uuid.UUID `json:"producto_id" validate:"required"`
	Cantidad   int       `json:"cantidad" validate:"required,gt=0"`
}

// Line is a cart item enriched with current catalog data.
type Line struct {
	ProductoID  uuid.UUID `json:"producto_id"`
	Nombre      string    `json:"nombre"`
	PrecioCOP   int64     `json:"precio_cop"`
	Cantidad    int       `json:"cantidad"`
	SubtotalCOP int64     `json:"subtotal_cop"`
}

// View is the cart as the tendero sees it.
type View struct {
	BodegaID    uuid.UUID `json:"bodega_id"`
	Items       []Line    `json:"items"`
	SubtotalCOP int64     `json:"subtotal_cop"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Quote previews checkout totals, optionally applying a coupon.
type Quote struct {
	BodegaID         uuid.UUID `json:"bodega_id"`
	Items            []Line    `json:"items"`
	TotalOriginalCOP int64     `json:"total_original_cop"`
	DescuentoCOP     int64     `json:"descuento_cop"`
	TotalCOP         int64     `json:"total_cop"`
	CuponCodigo      string    `json:"cupon_codigo,omitempty"`
	CuponOK          bool      `json:"cupon_ok"`
	CuponReason      string    `json:"cupon_reason,omitempty"`
}
