package orders

import (
	"testing"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

func TestCanTransitionForwardChain(t *testing.T) {
	cases := []struct {
		from enums.PedidoEstado
		to   enums.PedidoEstado
		want bool
	}{
		{enums.PedidoEstadoNuevo, enums.PedidoEstadoAceptado, true},
		{enums.PedidoEstadoAceptado, enums.PedidoEstadoPreparando, true},
		{enums.PedidoEstadoPreparando, enums.PedidoEstadoListo, true},
		{enums.PedidoEstadoListo, enums.PedidoEstadoEnCamino, true},
		{enums.PedidoEstadoEnCamino, enums.PedidoEstadoEntregado, true},

		// no skipping steps
		{enums.PedidoEstadoNuevo, enums.PedidoEstadoPreparando, false},
		{enums.PedidoEstadoNuevo, enums.PedidoEstadoEntregado, false},
		{enums.PedidoEstadoAceptado, enums.PedidoEstadoListo, false},

		// no moving backwards
		{enums.PedidoEstadoAceptado, enums.PedidoEstadoNuevo, false},
		{enums.PedidoEstadoEnCamino, enums.PedidoEstadoListo, false},
		{enums.PedidoEstadoEntregado, enums.PedidoEstadoAceptado, false},

		// entregado has no forward moves
		{enums.PedidoEstadoEntregado, enums.PedidoEstadoEntregado, false},
		{enums.PedidoEstadoEntregado, enums.PedidoEstadoNuevo, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanTransitionCanceladoIsAbsorbing(t *testing.T) {
	all := []enums.PedidoEstado{
		enums.PedidoEstadoNuevo,
		enums.PedidoEstadoAceptado,
		enums.PedidoEstadoPreparando,
		enums.PedidoEstadoListo,
		enums.PedidoEstadoEnCamino,
		enums.PedidoEstadoEntregado,
		enums.PedidoEstadoCancelado,
	}
	for _, to := range all {
		if CanTransition(enums.PedidoEstadoCancelado, to) {
			t.Errorf("CanTransition(cancelado, %s) = true, want false", to)
		}
	}
}

func TestCanTransitionCancelFromAnyNonCancelled(t *testing.T) {
	froms := []enums.PedidoEstado{
		enums.PedidoEstadoNuevo,
		enums.PedidoEstadoAceptado,
		enums.PedidoEstadoPreparando,
		enums.PedidoEstadoListo,
		enums.PedidoEstadoEnCamino,
		enums.PedidoEstadoEntregado,
	}
	for _, from := range froms {
		if !CanTransition(from, enums.PedidoEstadoCancelado) {
			t.Errorf("CanTransition(%s, cancelado) = false, want true", from)
		}
	}
}

func TestCanTransitionRejectsUnknownEstados(t *testing.T) {
	if CanTransition("enviado", enums.PedidoEstadoEntregado) {
		t.Errorf("unknown from estado should be rejected")
	}
	if CanTransition(enums.PedidoEstadoNuevo, "despachado") {
		t.Errorf("unknown to estado should be rejected")
	}
	if CanTransition("", "") {
		t.Errorf("empty estados should be rejected")
	}
	if CanTransition("enviado", enums.PedidoEstadoCancelado) {
		t.Errorf("unknown from estado should not be cancellable")
	}
}
