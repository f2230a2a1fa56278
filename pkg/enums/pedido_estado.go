package enums

import "fmt"

// PedidoEstado tracks the lifecycle of a pedido.
type PedidoEstado string

const (
	PedidoEstadoNuevo      PedidoEstado = "nuevo"
	PedidoEstadoAceptado   PedidoEstado = "aceptado"
	PedidoEstadoPreparando PedidoEstado = "preparando"
	PedidoEstadoListo      PedidoEstado = "listo"
	PedidoEstadoEnCamino   PedidoEstado = "en_camino"
	PedidoEstadoEntregado  PedidoEstado = "entregado"
	PedidoEstadoCancelado  PedidoEstado = "cancelado"
)

var validPedidoEstados = []PedidoEstado{
	PedidoEstadoNuevo,
	PedidoEstadoAceptado,
	PedidoEstadoPreparando,
	PedidoEstadoListo,
	PedidoEstadoEnCamino,
	PedidoEstadoEntregado,
	PedidoEstadoCancelado,
}

// String implements fmt.Stringer.
func (p PedidoEstado) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PedidoEstado.
func (p PedidoEstado) IsValid() bool {
	for _, candidate := range validPedidoEstados {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePedidoEstado converts raw input into a PedidoEstado.
func ParsePedidoEstado(value string) (PedidoEstado, error) {
	for _, candidate := range validPedidoEstados {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pedido estado %q", value)
}
