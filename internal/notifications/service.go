package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Service writes and serves per-actor in-app notificaciones. The Pedido*,
// Entrega* and Puntos* methods run inside the caller's transaction so the
// notificacion lands atomically with the state change that caused it.
type Service interface {
	List(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*NotificacionList, error)
	UnreadCount(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, role enums.ActorRole, actorID, notificacionID uuid.UUID) error
	MarkAllRead(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error)

	PedidoCreado(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64) error
	PedidoEstadoCambiado(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID, bodegaID uuid.UUID, numeroPedido int64, desde, hacia enums.PedidoEstado) error
	EntregaIncidencia(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64, nota string) error
	PuntosAcreditados(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID, numeroPedido, puntos int64) error
}

type service struct {
	repo Repository
}

// NewService builds a notificaciones service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notificaciones repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*NotificacionList, error) {
	list, err := s.repo.ListForActor(ctx, role, actorID, onlyUnread, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing notificaciones")
	}
	return list, nil
}

func (s *service) UnreadCount(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, role, actorID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting notificaciones")
	}
	return count, nil
}

func (s *service) MarkRead(ctx context.Context, role enums.ActorRole, actorID, notificacionID uuid.UUID) error {
	notificacion, err := s.repo.FindByID(ctx, notificacionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notificacion not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading notificacion")
	}
	if notificacion.ActorRole != role || notificacion.ActorID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "notificacion belongs to another actor")
	}
	return s.repo.MarkRead(ctx, notificacionID)
}

func (s *service) MarkAllRead(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	return s.repo.MarkAllRead(ctx, role, actorID)
}

func (s *service) PedidoCreado(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64) error {
	return s.insert(ctx, tx, &models.Notificacion{
		ActorRole: enums.ActorRoleBodega,
		ActorID:   bodegaID,
		Tipo:      enums.NotificacionTipoPedidoNuevo,
		Titulo:    "Nuevo pedido",
		Mensaje:   fmt.Sprintf("Pedido #%d recibido", numeroPedido),
		PedidoID:  &pedidoID,
	})
}

func (s *service) PedidoEstadoCambiado(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID, bodegaID uuid.UUID, numeroPedido int64, desde, hacia enums.PedidoEstado) error {
	err := s.insert(ctx, tx, &models.Notificacion{
		ActorRole: enums.ActorRoleTendero,
		ActorID:   tenderoID,
		Tipo:      enums.NotificacionTipoPedidoEstado,
		Titulo:    "Pedido actualizado",
		Mensaje:   fmt.Sprintf("Pedido #%d pasó de %s a %s", numeroPedido, desde, hacia),
		PedidoID:  &pedidoID,
	})
	if err != nil {
		return err
	}
	if hacia != enums.PedidoEstadoCancelado {
		return nil
	}
	// cancellations also concern the bodega preparing the order
	return s.insert(ctx, tx, &models.Notificacion{
		ActorRole: enums.ActorRoleBodega,
		ActorID:   bodegaID,
		Tipo:      enums.NotificacionTipoPedidoEstado,
		Titulo:    "Pedido cancelado",
		Mensaje:   fmt.Sprintf("Pedido #%d fue cancelado", numeroPedido),
		PedidoID:  &pedidoID,
	})
}

func (s *service) EntregaIncidencia(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64, nota string) error {
	return s.insert(ctx, tx, &models.Notificacion{
		ActorRole: enums.ActorRoleBodega,
		ActorID:   bodegaID,
		Tipo:      enums.NotificacionTipoIncidencia,
		Titulo:    "Incidencia en entrega",
		Mensaje:   fmt.Sprintf("Pedido #%d: %s", numeroPedido, nota),
		PedidoID:  &pedidoID,
	})
}

func (s *service) PuntosAcreditados(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID, numeroPedido, puntos int64) error {
	return s.insert(ctx, tx, &models.Notificacion{
		ActorRole: enums.ActorRoleTendero,
		ActorID:   tenderoID,
		Tipo:      enums.NotificacionTipoPuntosGanados,
		Titulo:    "Puntos acreditados",
		Mensaje:   fmt.Sprintf("Ganaste %d puntos por el pedido #%d", puntos, numeroPedido),
		PedidoID:  &pedidoID,
	})
}

func (s *service) insert(ctx context.Context, tx *gorm.DB, notificacion *models.Notificacion) error {
	_, err := s.repo.WithTx(tx).Create(ctx, notificacion)
	return err
}
