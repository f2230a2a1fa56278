package settings

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an ajustes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Find(ctx context.Context, clave string) (*models.AjustePlataforma, error) {
	var ajuste models.AjustePlataforma
	err := r.db.WithContext(ctx).
		Where("clave = ?", clave).
		First(&ajuste).Error
	if err != nil {
		return nil, err
	}
	return &ajuste, nil
}

func (r *repository) Upsert(ctx context.Context, clave, valor string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor", "updated_at"}),
		}).
		Create(&models.AjustePlataforma{Clave: clave, Valor: valor}).Error
}

func (r *repository) List(ctx context.Context) ([]models.AjustePlataforma, error) {
	var ajustes []models.AjustePlataforma
	err := r.db.WithContext(ctx).
		Order("clave ASC").
		Find(&ajustes).Error
	if err != nil {
		return nil, err
	}
	return ajustes, nil
}
