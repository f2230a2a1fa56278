package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pedidos repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, pedido *models.Pedido) (*models.Pedido, error) {
	if err := r.db.WithContext(ctx).Create(pedido).Error; err != nil {
		return nil, err
	}
	return pedido, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error) {
	var pedido models.Pedido
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&pedido).Error
	if err != nil {
		return nil, err
	}
	return &pedido, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Pedido{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListByTendero(ctx context.Context, tenderoID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error) {
	q := r.db.WithContext(ctx).Model(&models.Pedido{}).Where("tendero_id = ?", tenderoID)
	return r.list(q, params, filters)
}

func (r *repository) ListByBodega(ctx context.Context, bodegaID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error) {
	q := r.db.WithContext(ctx).Model(&models.Pedido{}).Where("bodega_id = ?", bodegaID)
	return r.list(q, params, filters)
}

func (r *repository) list(q *gorm.DB, params pagination.Params, filters Filters) (*PedidoList, error) {
	if filters.Estado != nil {
		q = q.Where("estado = ?", *filters.Estado)
	}
	if filters.DateFrom != nil {
		q = q.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("created_at <= ?", *filters.DateTo)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []models.Pedido
	err = q.Preload("Items").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &PedidoList{Pedidos: make([]PedidoSummary, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}

	for _, p := range rows {
		list.Pedidos = append(list.Pedidos, PedidoSummary{
			ID:           p.ID,
			NumeroPedido: p.NumeroPedido,
			Estado:       p.Estado,
			TenderoID:    p.TenderoID,
			BodegaID:     p.BodegaID,
			TotalCOP:     p.TotalCOP,
			DescuentoCOP: p.DescuentoCOP,
			TotalItems:   len(p.Items),
			CreatedAt:    p.CreatedAt,
		})
	}
	return list, nil
}
