package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// Pedido is a tendero's order against a single bodega. Monetary amounts are
// integer COP. Invariant: TotalCOP = TotalOriginalCOP - DescuentoCOP, with
// 0 <= DescuentoCOP <= TotalOriginalCOP.
type Pedido struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenderoID        uuid.UUID          `gorm:"column:tendero_id;type:uuid;not null"`
	BodegaID         uuid.UUID          `gorm:"column:bodega_id;type:uuid;not null"`
	Estado           enums.PedidoEstado `gorm:"column:estado;type:pedido_estado;not null;default:'nuevo'"`
	TotalOriginalCOP int64              `gorm:"column:total_original_cop;not null"`
	DescuentoCOP     int64              `gorm:"column:descuento_cop;not null;default:0"`
	TotalCOP         int64              `gorm:"column:total_cop;not null"`
	CuponID          *uuid.UUID         `gorm:"column:cupon_id;type:uuid"`
	CuponCodigo      *string            `gorm:"column:cupon_codigo"`
	PuntosOtorgados  int64              `gorm:"column:puntos_otorgados;not null;default:0"`
	RepartidorID     *uuid.UUID         `gorm:"column:repartidor_id;type:uuid"`
	Notas            *string            `gorm:"column:notas"`
	NumeroPedido     int64              `gorm:"column:numero_pedido;not null;default:nextval('pedidos_numero_seq')"`
	Items            []PedidoItem       `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
	AceptadoAt       *time.Time         `gorm:"column:aceptado_at"`
	ListoAt          *time.Time         `gorm:"column:listo_at"`
	EnCaminoAt       *time.Time         `gorm:"column:en_camino_at"`
	EntregadoAt      *time.Time         `gorm:"column:entregado_at"`
	CanceladoAt      *time.Time         `gorm:"column:cancelado_at"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps GORM on the Spanish table names the schema uses.
func (Pedido) TableName() string { return "pedidos" }
