package loyalty

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a loyalty repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindPedido(ctx context.Context, pedidoID uuid.UUID) (*models.Pedido, error) {
	var pedido models.Pedido
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", pedidoID).
		First(&pedido).Error
	if err != nil {
		return nil, err
	}
	return &pedido, nil
}

func (r *repository) FindTendero(ctx context.Context, tenderoID uuid.UUID) (*models.Tendero, error) {
	var tendero models.Tendero
	err := r.db.WithContext(ctx).Where("id = ?", tenderoID).First(&tendero).Error
	if err != nil {
		return nil, err
	}
	return &tendero, nil
}

func (r *repository) FindAcreditacion(ctx context.Context, pedidoID uuid.UUID) (*models.MovimientoPuntos, error) {
	var mov models.MovimientoPuntos
	err := r.db.WithContext(ctx).
		Where("pedido_id = ? AND motivo = ?", pedidoID, enums.MovimientoMotivoAcreditacionPedido).
		First(&mov).Error
	if err != nil {
		return nil, err
	}
	return &mov, nil
}

func (r *repository) InsertMovimiento(ctx context.Context, mov *models.MovimientoPuntos) error {
	return r.db.WithContext(ctx).Create(mov).Error
}

func (r *repository) AdjustSaldo(ctx context.Context, tenderoID uuid.UUID, delta int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Tendero{}).
		Where("id = ?", tenderoID).
		Update("puntos_saldo", gorm.Expr("puntos_saldo + ?", delta)).Error
}

func (r *repository) ListMovimientos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*MovimientoList, error) {
	q := r.db.WithContext(ctx).
		Model(&models.MovimientoPuntos{}).
		Where("tendero_id = ?", tenderoID)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []models.MovimientoPuntos
	err = q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &MovimientoList{Movimientos: make([]MovimientoSummary, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}

	for _, mov := range rows {
		list.Movimientos = append(list.Movimientos, MovimientoSummary{
			ID:        mov.ID,
			PedidoID:  mov.PedidoID,
			Puntos:    mov.Puntos,
			Motivo:    mov.Motivo,
			Detalle:   mov.Detalle,
			CreatedAt: mov.CreatedAt,
		})
	}
	return list, nil
}
