package bodegas

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bodegas repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, bodega *models.Bodega) (*models.Bodega, error) {
	if err := r.db.WithContext(ctx).Create(bodega).Error; err != nil {
		return nil, err
	}
	return bodega, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bodega, error) {
	var bodega models.Bodega
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&bodega).Error
	if err != nil {
		return nil, err
	}
	return &bodega, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Bodega{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) List(ctx context.Context, filters Filters, params pagination.Params) (*BodegaList, error) {
	q := r.db.WithContext(ctx).Model(&models.Bodega{})

	if query := strings.TrimSpace(filters.Query); query != "" {
		pattern := "%" + query + "%"
		q = q.Where("nombre ILIKE ? OR barrio ILIKE ?", pattern, pattern)
	}
	if filters.Barrio != "" {
		q = q.Where("barrio = ?", filters.Barrio)
	}
	if filters.OnlyActive {
		q = q.Where("activa = ?", true)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []models.Bodega
	err = q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &BodegaList{Bodegas: make([]BodegaSummary, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}

	for _, b := range rows {
		list.Bodegas = append(list.Bodegas, BodegaSummary{
			ID:        b.ID,
			Nombre:    b.Nombre,
			Direccion: b.Direccion,
			Barrio:    b.Barrio,
			Telefono:  b.Telefono,
			Activa:    b.Activa,
			CreatedAt: b.CreatedAt,
		})
	}
	return list, nil
}
