package loyalty

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// MovimientoSummary is one ledger entry in list responses.
type MovimientoSummary struct {
	ID        uuid.UUID                    `json:"id"`
	PedidoID  *uuid.UUID                   `json:"pedido_id,omitempty"`
	Puntos    int64                        `json:"puntos"`
	Motivo    enums.MovimientoPuntosMotivo `json:"motivo"`
	Detalle   *string                      `json:"detalle,omitempty"`
	CreatedAt time.Time                    `json:"created_at"`
}

// MovimientoList wraps paginated ledger entries plus the next cursor.
type MovimientoList struct {
	Movimientos []MovimientoSummary `json:"movimientos"`
	NextCursor  string              `json:"next_cursor,omitempty"`
}

// Saldo is a tendero's current balance.
type Saldo struct {
	TenderoID   uuid.UUID `json:"tendero_id"`
	PuntosSaldo int64     `json:"puntos_saldo"`
}

// RedeemInput captures a points redemption request.
type RedeemInput struct {
	TenderoID uuid.UUID
	Puntos    int64
	Detalle   *string
}
