package coupons

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// Rejection reasons surfaced verbatim to the end user.
const (
	ReasonNoExiste      = "Cupón no existe"
	ReasonInactivo      = "Cupón inactivo"
	ReasonOtraBodega    = "Cupón no válido para esta bodega"
	ReasonTodavia       = "Cupón no disponible todavía"
	ReasonVencido       = "Cupón vencido"
	reasonMinimoFormato = "Compra mínima de $%d COP requerida"
)

// Result is the outcome of validating a coupon code against an order.
type Result struct {
	OK           bool          `json:"ok"`
	DescuentoCOP int64         `json:"descuento_cop"`
	Reason       string        `json:"reason,omitempty"`
	Cupon        *models.Cupon `json:"cupon,omitempty"`
}

// Validate checks whether a coupon code is redeemable at a bodega for the
// given subtotal, and computes its discount. Codes match case-insensitively
// after trimming. Checks short-circuit in a fixed order so the user always
// sees the first failing condition. The clock is injected so validity windows
// are deterministic under test.
func Validate(cupones []models.Cupon, code string, bodegaID uuid.UUID, subtotalCOP int64, now time.Time) Result {
	cupon := findByCode(cupones, code)
	if cupon == nil {
		return rejected(ReasonNoExiste)
	}

	if !cupon.Activo {
		return rejected(ReasonInactivo)
	}
	if cupon.BodegaID != nil && *cupon.BodegaID != bodegaID {
		return rejected(ReasonOtraBodega)
	}
	if subtotalCOP < cupon.MinSubtotalCOP {
		return rejected(fmt.Sprintf(reasonMinimoFormato, cupon.MinSubtotalCOP))
	}
	if cupon.VigenteDesde != nil && now.Before(*cupon.VigenteDesde) {
		return rejected(ReasonTodavia)
	}
	if cupon.VigenteHasta != nil && now.After(*cupon.VigenteHasta) {
		return rejected(ReasonVencido)
	}

	return Result{
		OK:           true,
		DescuentoCOP: Descuento(cupon.Tipo, cupon.Valor, subtotalCOP),
		Cupon:        cupon,
	}
}

// Descuento computes the discount for a coupon type and value, clamped so it
// never exceeds the subtotal and never goes negative.
func Descuento(tipo enums.CuponTipo, valor, subtotalCOP int64) int64 {
	if subtotalCOP <= 0 || valor <= 0 {
		return 0
	}

	var descuento int64
	switch tipo {
	case enums.CuponTipoPorcentaje:
		descuento = decimal.NewFromInt(subtotalCOP).
			Mul(decimal.NewFromInt(valor)).
			Div(decimal.NewFromInt(100)).
			Floor().
			IntPart()
	case enums.CuponTipoFijo:
		descuento = valor
	default:
		return 0
	}

	if descuento > subtotalCOP {
		return subtotalCOP
	}
	return descuento
}

func findByCode(cupones []models.Cupon, code string) *models.Cupon {
	normalized := normalizeCode(code)
	if normalized == "" {
		return nil
	}
	for i := range cupones {
		if normalizeCode(cupones[i].Codigo) == normalized {
			return &cupones[i]
		}
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func rejected(reason string) Result {
	return Result{OK: false, DescuentoCOP: 0, Reason: reason}
}
