package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a notificaciones repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, notificacion *models.Notificacion) (*models.Notificacion, error) {
	if err := r.db.WithContext(ctx).Create(notificacion).Error; err != nil {
		return nil, err
	}
	return notificacion, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Notificacion, error) {
	var notificacion models.Notificacion
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&notificacion).Error
	if err != nil {
		return nil, err
	}
	return &notificacion, nil
}

func (r *repository) ListForActor(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*NotificacionList, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Notificacion{}).
		Where("actor_role = ? AND actor_id = ?", role, actorID)
	if onlyUnread {
		q = q.Where("leida_at IS NULL")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []models.Notificacion
	err = q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &NotificacionList{Notificaciones: make([]NotificacionSummary, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}

	for _, n := range rows {
		list.Notificaciones = append(list.Notificaciones, NotificacionSummary{
			ID:        n.ID,
			Tipo:      n.Tipo,
			Titulo:    n.Titulo,
			Mensaje:   n.Mensaje,
			PedidoID:  n.PedidoID,
			LeidaAt:   n.LeidaAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return list, nil
}

func (r *repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Notificacion{}).
		Where("id = ? AND leida_at IS NULL", id).
		Update("leida_at", time.Now()).Error
}

func (r *repository) MarkAllRead(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notificacion{}).
		Where("actor_role = ? AND actor_id = ? AND leida_at IS NULL", role, actorID).
		Update("leida_at", time.Now())
	return result.RowsAffected, result.Error
}

func (r *repository) CountUnread(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notificacion{}).
		Where("actor_role = ? AND actor_id = ? AND leida_at IS NULL", role, actorID).
		Count(&count).Error
	return count, err
}
