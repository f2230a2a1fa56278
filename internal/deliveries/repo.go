package deliveries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

const entregaSelect = "entregas.id, entregas.pedido_id, entregas.repartidor_id, " +
	"entregas.recogida_at, entregas.entregada_at, entregas.incidencia, entregas.created_at, " +
	"pedidos.numero_pedido, pedidos.estado, pedidos.bodega_id, pedidos.tendero_id"

type repository struct {
	db *gorm.DB
}

// NewRepository builds an entregas repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entrega *models.Entrega) (*models.Entrega, error) {
	if err := r.db.WithContext(ctx).Create(entrega).Error; err != nil {
		return nil, err
	}
	return entrega, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*EntregaRow, error) {
	var row EntregaRow
	err := r.joined(ctx).
		Where("entregas.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByPedido(ctx context.Context, pedidoID uuid.UUID) (*models.Entrega, error) {
	var entrega models.Entrega
	err := r.db.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		First(&entrega).Error
	if err != nil {
		return nil, err
	}
	return &entrega, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Entrega{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListDisponibles(ctx context.Context, params pagination.Params) (*EntregaList, error) {
	q := r.joined(ctx).
		Where("pedidos.estado = ?", enums.PedidoEstadoListo).
		Where("entregas.repartidor_id IS NULL")
	return r.list(q, params)
}

func (r *repository) ListForRepartidor(ctx context.Context, repartidorID uuid.UUID, params pagination.Params) (*EntregaList, error) {
	q := r.joined(ctx).Where("entregas.repartidor_id = ?", repartidorID)
	return r.list(q, params)
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Entrega{}).
		Select(entregaSelect).
		Joins("JOIN pedidos ON pedidos.id = entregas.pedido_id")
}

func (r *repository) list(q *gorm.DB, params pagination.Params) (*EntregaList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(entregas.created_at, entregas.id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []EntregaRow
	err = q.Order("entregas.created_at DESC").
		Order("entregas.id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &EntregaList{Entregas: rows}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		list.Entregas = rows[:limit]
	}
	return list, nil
}
