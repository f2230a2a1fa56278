package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// NotificacionSummary is the list-level shape of a notificacion.
type NotificacionSummary struct {
	ID        uuid.UUID              `json:"id"`
	Tipo      enums.NotificacionTipo `json:"tipo"`
	Titulo    string                 `json:"titulo"`
	Mensaje   string                 `json:"mensaje"`
	PedidoID  *uuid.UUID             `json:"pedido_id,omitempty"`
	LeidaAt   *time.Time             `json:"leida_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NotificacionList is a cursor-paginated page of notificaciones.
type NotificacionList struct {
	Notificaciones []NotificacionSummary `json:"notificaciones"`
	NextCursor     string                `json:"next_cursor,omitempty"`
}
