package enums

import "fmt"

// MovimientoPuntosMotivo explains why a loyalty-point movement was recorded.
type MovimientoPuntosMotivo string

const (
	MovimientoMotivoAcreditacionPedido MovimientoPuntosMotivo = "acreditacion_pedido"
	MovimientoMotivoRedencion          MovimientoPuntosMotivo = "redencion"
	MovimientoMotivoAjusteAdmin        MovimientoPuntosMotivo = "ajuste_admin"
)

var validMovimientoMotivos = []MovimientoPuntosMotivo{
	MovimientoMotivoAcreditacionPedido,
	MovimientoMotivoRedencion,
	MovimientoMotivoAjusteAdmin,
}

// String implements fmt.Stringer.
func (m MovimientoPuntosMotivo) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MovimientoPuntosMotivo.
func (m MovimientoPuntosMotivo) IsValid() bool {
	for _, candidate := range validMovimientoMotivos {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMovimientoPuntosMotivo converts raw input into a MovimientoPuntosMotivo.
func ParseMovimientoPuntosMotivo(value string) (MovimientoPuntosMotivo, error) {
	for _, candidate := range validMovimientoMotivos {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movimiento motivo %q", value)
}
