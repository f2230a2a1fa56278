package tenderos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
)

// Repository persists tendero profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tendero *models.Tendero) (*models.Tendero, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Tendero, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
