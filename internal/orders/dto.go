package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// Filters describe the inputs supported by the pedido lists.
type Filters struct {
	Estado   *enums.PedidoEstado
	DateFrom *time.Time
	DateTo   *time.Time
}

// PedidoSummary exposes the aggregated fields returned in list endpoints.
type PedidoSummary struct {
	ID           uuid.UUID          `json:"id"`
	NumeroPedido int64              `json:"numero_pedido"`
	Estado       enums.PedidoEstado `json:"estado"`
	TenderoID    uuid.UUID          `json:"tendero_id"`
	BodegaID     uuid.UUID          `json:"bodega_id"`
	TotalCOP     int64              `json:"total_cop"`
	DescuentoCOP int64              `json:"descuento_cop"`
	TotalItems   int                `json:"total_items"`
	CreatedAt    time.Time          `json:"created_at"`
}

// PedidoList wraps the paginated pedidos plus the next page cursor.
type PedidoList struct {
	Pedidos    []PedidoSummary `json:"pedidos"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// ItemDetail is one snapshotted line of a pedido.
type ItemDetail struct {
	ID                uuid.UUID  `json:"id"`
	ProductoID        *uuid.UUID `json:"producto_id,omitempty"`
	Nombre            string     `json:"nombre"`
	PrecioUnitarioCOP int64      `json:"precio_unitario_cop"`
	Cantidad          int        `json:"cantidad"`
	PuntosBase        int64      `json:"puntos_base"`
	SubtotalCOP       int64      `json:"subtotal_cop"`
}

// PedidoDetail is the full pedido view returned by detail and mutation calls.
type PedidoDetail struct {
	ID               uuid.UUID          `json:"id"`
	NumeroPedido     int64              `json:"numero_pedido"`
	Estado           enums.PedidoEstado `json:"estado"`
	TenderoID        uuid.UUID          `json:"tendero_id"`
	BodegaID         uuid.UUID          `json:"bodega_id"`
	TotalOriginalCOP int64              `json:"total_original_cop"`
	DescuentoCOP     int64              `json:"descuento_cop"`
	TotalCOP         int64              `json:"total_cop"`
	CuponCodigo      *string            `json:"cupon_codigo,omitempty"`
	PuntosOtorgados  int64              `json:"puntos_otorgados"`
	RepartidorID     *uuid.UUID         `json:"repartidor_id,omitempty"`
	Notas            *string            `json:"notas,omitempty"`
	Items            []ItemDetail       `json:"items"`
	CreatedAt        time.Time          `json:"created_at"`
}

// ChangeEstadoInput captures a gated status-transition request.
type ChangeEstadoInput struct {
	PedidoID  uuid.UUID
	Estado    enums.PedidoEstado
	ActorID   uuid.UUID
	ActorRole enums.ActorRole
	BodegaID  *uuid.UUID
}

// EstadoCambiadoEvent is emitted on every applied transition.
type EstadoCambiadoEvent struct {
	PedidoID     uuid.UUID          `json:"pedido_id"`
	NumeroPedido int64              `json:"numero_pedido"`
	TenderoID    uuid.UUID          `json:"tendero_id"`
	BodegaID     uuid.UUID          `json:"bodega_id"`
	Desde        enums.PedidoEstado `json:"desde"`
	Hacia        enums.PedidoEstado `json:"hacia"`
}

// PuntosAcreditadosEvent is emitted once when a delivered pedido earns points.
type PuntosAcreditadosEvent struct {
	PedidoID  uuid.UUID `json:"pedido_id"`
	TenderoID uuid.UUID `json:"tendero_id"`
	Puntos    int64     `json:"puntos"`
}

func buildDetail(p *models.Pedido) *PedidoDetail {
	detail := &PedidoDetail{
		ID:               p.ID,
		NumeroPedido:     p.NumeroPedido,
		Estado:           p.Estado,
		TenderoID:        p.TenderoID,
		BodegaID:         p.BodegaID,
		TotalOriginalCOP: p.TotalOriginalCOP,
		DescuentoCOP:     p.DescuentoCOP,
		TotalCOP:         p.TotalCOP,
		CuponCodigo:      p.CuponCodigo,
		PuntosOtorgados:  p.PuntosOtorgados,
		RepartidorID:     p.RepartidorID,
		Notas:            p.Notas,
		Items:            make([]ItemDetail, 0, len(p.Items)),
		CreatedAt:        p.CreatedAt,
	}
	for _, item := range p.Items {
		detail.Items = append(detail.Items, ItemDetail{
			ID:                item.ID,
			ProductoID:        item.ProductoID,
			Nombre:            item.Nombre,
			PrecioUnitarioCOP: item.PrecioUnitarioCOP,
			Cantidad:          item.Cantidad,
			PuntosBase:        item.PuntosBase,
			SubtotalCOP:       item.SubtotalCOP,
		})
	}
	return detail
}
