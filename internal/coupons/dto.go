package coupons

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// CreateInput captures a new coupon from a bodega or admin operator.
type CreateInput struct {
	BodegaID       *uuid.UUID
	Codigo         string
	Tipo           enums.CuponTipo
	Valor          int64
	MinSubtotalCOP int64
	Activo         bool
	VigenteDesde   *time.Time
	VigenteHasta   *time.Time
}

// UpdateInput carries the editable coupon fields. Nil fields stay untouched.
type UpdateInput struct {
	Valor          *int64
	MinSubtotalCOP *int64
	Activo         *bool
	VigenteDesde   *time.Time
	VigenteHasta   *time.Time
}
