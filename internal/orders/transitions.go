package orders

import "github.com/veciplaza/veciplaza-backend/pkg/enums"

// forwardChain is the strict linear progression of a pedido. Cancellation is
// handled separately and never appears here.
var forwardChain = map[enums.PedidoEstado]enums.PedidoEstado{
	enums.PedidoEstadoNuevo:      enums.PedidoEstadoAceptado,
	enums.PedidoEstadoAceptado:   enums.PedidoEstadoPreparando,
	enums.PedidoEstadoPreparando: enums.PedidoEstadoListo,
	enums.PedidoEstadoListo:      enums.PedidoEstadoEnCamino,
	enums.PedidoEstadoEnCamino:   enums.PedidoEstadoEntregado,
}

// CanTransition reports whether a pedido may move from one estado to another.
// Unknown estados are invalid. A cancelled pedido is absorbing: nothing moves
// out of cancelado. Cancelling is allowed from every other estado, entregado
// included (support reverses bad deliveries this way). Everything else must
// follow the forward chain one step at a time; entregado has no forward moves.
func CanTransition(from, to enums.PedidoEstado) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == enums.PedidoEstadoCancelado {
		return false
	}
	if to == enums.PedidoEstadoCancelado {
		return true
	}
	return forwardChain[from] == to
}
