package settings

import (
	"context"

	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
)

// Repository persists keyed platform settings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, clave string) (*models.AjustePlataforma, error)
	Upsert(ctx context.Context, clave, valor string) error
	List(ctx context.Context) ([]models.AjustePlataforma, error)
}
