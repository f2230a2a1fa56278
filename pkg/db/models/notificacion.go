package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

// Notificacion stores in-app notification payloads scoped to an actor.
type Notificacion struct {
	ID        uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ActorRole enums.ActorRole        `gorm:"column:actor_role;type:actor_role;not null"`
	ActorID   uuid.UUID              `gorm:"column:actor_id;type:uuid;not null"`
	Tipo      enums.NotificacionTipo `gorm:"column:tipo;type:notificacion_tipo;not null"`
	Titulo    string                 `gorm:"column:titulo;type:text;not null"`
	Mensaje   string                 `gorm:"column:mensaje;type:text;not null"`
	PedidoID  *uuid.UUID             `gorm:"column:pedido_id;type:uuid"`
	LeidaAt   *time.Time             `gorm:"column:leida_at;type:timestamptz"`
	CreatedAt time.Time              `gorm:"column:created_at;type:timestamptz;default:now()"`
}

func (Notificacion) TableName() string { return "notificaciones" }
