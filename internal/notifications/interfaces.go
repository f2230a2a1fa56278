package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Repository persists per-actor notificaciones.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notificacion *models.Notificacion) (*models.Notificacion, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Notificacion, error)
	ListForActor(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*NotificacionList, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error)
}
