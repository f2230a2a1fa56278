package enums

import "fmt"

// NotificacionTipo classifies in-app notifications.
type NotificacionTipo string

const (
	NotificacionTipoPedidoNuevo   NotificacionTipo = "pedido_nuevo"
	NotificacionTipoPedidoEstado  NotificacionTipo = "pedido_estado"
	NotificacionTipoPuntosGanados NotificacionTipo = "puntos_ganados"
	NotificacionTipoIncidencia    NotificacionTipo = "incidencia"
	NotificacionTipoAnuncio       NotificacionTipo = "anuncio"
)

var validNotificacionTipos = []NotificacionTipo{
	NotificacionTipoPedidoNuevo,
	NotificacionTipoPedidoEstado,
	NotificacionTipoPuntosGanados,
	NotificacionTipoIncidencia,
	NotificacionTipoAnuncio,
}

// String implements fmt.Stringer.
func (n NotificacionTipo) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificacionTipo.
func (n NotificacionTipo) IsValid() bool {
	for _, candidate := range validNotificacionTipos {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificacionTipo converts raw input into a NotificacionTipo.
func ParseNotificacionTipo(value string) (NotificacionTipo, error) {
	for _, candidate := range validNotificacionTipos {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notificacion tipo %q", value)
}
