package productos

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

// NewRepository builds a productos repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, producto *models.Producto) (*models.Producto, error) {
	if err := r.db.WithContext(ctx).Create(producto).Error; err != nil {
		return nil, err
	}
	return producto, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Producto, error) {
	var producto models.Producto
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&producto).Error
	if err != nil {
		return nil, err
	}
	return &producto, nil
}

func (r *repository) FindByNombre(ctx context.Context, bodegaID uuid.UUID, nombre string) (*models.Producto, error) {
	var producto models.Producto
	err := r.db.WithContext(ctx).
		Where("bodega_id = ? AND lower(nombre) = lower(?)", bodegaID, nombre).
		First(&producto).Error
	if err != nil {
		return nil, err
	}
	return &producto, nil
}

func (r *repository) FindActiveByIDs(ctx context.Context, bodegaID uuid.UUID, ids []uuid.UUID) ([]models.Producto, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var productos []models.Producto
	err := r.db.WithContext(ctx).
		Where("bodega_id = ? AND activo = ? AND id IN ?", bodegaID, true, ids).
		Find(&productos).Error
	if err != nil {
		return nil, err
	}
	return productos, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Producto{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Producto{}).Error
}

func (r *repository) Search(ctx context.Context, bodegaID uuid.UUID, filters Filters, params pagination.Params) (*ProductoList, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Producto{}).
		Where("bodega_id = ?", bodegaID)

	if query := strings.TrimSpace(filters.Query); query != "" {
		pattern := "%" + query + "%"
		q = q.Where("nombre ILIKE ? OR sinonimos ILIKE ?", pattern, pattern)
	}
	if filters.Categoria != "" {
		q = q.Where("categoria = ?", filters.Categoria)
	}
	if filters.OnlyActive {
		q = q.Where("activo = ?", true)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []models.Producto
	err = q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &ProductoList{Productos: make([]ProductoSummary, 0, len(rows))}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}

	for _, p := range rows {
		list.Productos = append(list.Productos, ProductoSummary{
			ID:         p.ID,
			Nombre:     p.Nombre,
			Categoria:  p.Categoria,
			PrecioCOP:  p.PrecioCOP,
			PuntosBase: p.PuntosBase,
			Stock:      p.Stock,
			Activo:     p.Activo,
			ImagenURL:  p.ImagenURL,
			CreatedAt:  p.CreatedAt,
		})
	}
	return list, nil
}
