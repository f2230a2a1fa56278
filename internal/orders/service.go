package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/metrics"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// PointsAccruer credits loyalty points when a pedido is delivered.
type PointsAccruer interface {
	AccrueOnDelivery(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID) (int64, error)
}

// DeliveryTracker maintains the entrega record tied to a pedido.
type DeliveryTracker interface {
	EnsureForPedido(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID) error
	MarkRecogida(ctx context.Context, tx *gorm.DB, pedidoID, repartidorID uuid.UUID, at time.Time) error
	MarkEntregada(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID, at time.Time) error
}

// Notifier records in-app notifications for the parties of a pedido.
type Notifier interface {
	PedidoEstadoCambiado(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID, bodegaID uuid.UUID, numeroPedido int64, desde, hacia enums.PedidoEstado) error
}

// Service defines pedido-level operations beyond repository reads.
type Service interface {
	Get(ctx context.Context, pedidoID uuid.UUID) (*PedidoDetail, error)
	ListForTendero(ctx context.Context, tenderoID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error)
	ListForBodega(ctx context.Context, bodegaID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error)
	ChangeEstado(ctx context.Context, input ChangeEstadoInput) (*PedidoDetail, error)
	Cancel(ctx context.Context, input ChangeEstadoInput) (*PedidoDetail, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	outbox     outboxPublisher
	loyalty    PointsAccruer
	deliveries DeliveryTracker
	notifier   Notifier
	metrics    *metrics.PedidoMetrics
}

// NewService builds a pedidos service with the required dependencies. Metrics
// may be nil (counters no-op).
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, loyalty PointsAccruer, deliveries DeliveryTracker, notifier Notifier, m *metrics.PedidoMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pedidos repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if loyalty == nil {
		return nil, fmt.Errorf("points accruer required")
	}
	if deliveries == nil {
		return nil, fmt.Errorf("delivery tracker required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		outbox:     outbox,
		loyalty:    loyalty,
		deliveries: deliveries,
		notifier:   notifier,
		metrics:    m,
	}, nil
}

// transitionsByRole caps what each role may do to a pedido. Admin bypasses.
var transitionsByRole = map[enums.ActorRole][]enums.PedidoEstado{
	enums.ActorRoleTendero:    {enums.PedidoEstadoCancelado},
	enums.ActorRoleBodega:     {enums.PedidoEstadoAceptado, enums.PedidoEstadoPreparando, enums.PedidoEstadoListo, enums.PedidoEstadoCancelado},
	enums.ActorRoleRepartidor: {enums.PedidoEstadoEnCamino, enums.PedidoEstadoEntregado},
}

func roleMayTarget(role enums.ActorRole, target enums.PedidoEstado) bool {
	if role == enums.ActorRoleAdmin {
		return true
	}
	for _, allowed := range transitionsByRole[role] {
		if allowed == target {
			return true
		}
	}
	return false
}

// estadoTimestampColumn maps each target estado to the column stamped on entry.
func estadoTimestampColumn(estado enums.PedidoEstado) string {
	switch estado {
	case enums.PedidoEstadoAceptado:
		return "aceptado_at"
	case enums.PedidoEstadoListo:
		return "listo_at"
	case enums.PedidoEstadoEnCamino:
		return "en_camino_at"
	case enums.PedidoEstadoEntregado:
		return "entregado_at"
	case enums.PedidoEstadoCancelado:
		return "cancelado_at"
	default:
		return ""
	}
}

func (s *service) Get(ctx context.Context, pedidoID uuid.UUID) (*PedidoDetail, error) {
	if pedidoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pedido id required")
	}
	pedido, err := s.repo.FindByID(ctx, pedidoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pedido not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pedido")
	}
	return buildDetail(pedido), nil
}

func (s *service) ListForTendero(ctx context.Context, tenderoID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error) {
	if tenderoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tendero id required")
	}
	list, err := s.repo.ListByTendero(ctx, tenderoID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pedidos")
	}
	return list, nil
}

func (s *service) ListForBodega(ctx context.Context, bodegaID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error) {
	if bodegaID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bodega id required")
	}
	list, err := s.repo.ListByBodega(ctx, bodegaID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pedidos")
	}
	return list, nil
}

func (s *service) Cancel(ctx context.Context, input ChangeEstadoInput) (*PedidoDetail, error) {
	input.Estado = enums.PedidoEstadoCancelado
	return s.ChangeEstado(ctx, input)
}

func (s *service) ChangeEstado(ctx context.Context, input ChangeEstadoInput) (*PedidoDetail, error) {
	if input.PedidoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pedido id required")
	}
	if !input.Estado.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid estado").
			WithDetails(map[string]any{"estado": input.Estado.String()})
	}
	if !roleMayTarget(input.ActorRole, input.Estado) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot apply this estado")
	}

	var detail *PedidoDetail
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		pedido, err := repo.FindByID(ctx, input.PedidoID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "pedido not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pedido")
		}

		if input.ActorRole == enums.ActorRoleTendero && pedido.TenderoID != input.ActorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "pedido does not belong to tendero")
		}
		if input.ActorRole == enums.ActorRoleBodega && input.BodegaID != nil && pedido.BodegaID != *input.BodegaID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "pedido does not belong to bodega")
		}

		desde := pedido.Estado
		if !CanTransition(desde, input.Estado) {
			s.metrics.IncRejected(desde.String(), input.Estado.String())
			return pkgerrors.New(pkgerrors.CodeStateConflict, "estado transition not allowed").
				WithDetails(map[string]any{"desde": desde.String(), "hacia": input.Estado.String()})
		}

		now := time.Now()
		updates := map[string]any{"estado": input.Estado}
		if col := estadoTimestampColumn(input.Estado); col != "" {
			updates[col] = now
		}
		if input.Estado == enums.PedidoEstadoEnCamino && input.ActorRole == enums.ActorRoleRepartidor {
			updates["repartidor_id"] = input.ActorID
		}

		switch input.Estado {
		case enums.PedidoEstadoListo:
			if err := s.deliveries.EnsureForPedido(ctx, tx, pedido.ID); err != nil {
				return err
			}
		case enums.PedidoEstadoEnCamino:
			if err := s.deliveries.MarkRecogida(ctx, tx, pedido.ID, input.ActorID, now); err != nil {
				return err
			}
		case enums.PedidoEstadoEntregado:
			if err := s.deliveries.MarkEntregada(ctx, tx, pedido.ID, now); err != nil {
				return err
			}
			puntos, err := s.loyalty.AccrueOnDelivery(ctx, tx, pedido.ID, pedido.TenderoID)
			if err != nil {
				return err
			}
			updates["puntos_otorgados"] = puntos
			pedido.PuntosOtorgados = puntos
			s.metrics.AddPuntos(puntos)

			event := outbox.DomainEvent{
				EventType:     enums.EventPuntosAcreditados,
				AggregateType: enums.AggregatePedido,
				AggregateID:   pedido.ID,
				Version:       1,
				Actor:         buildActor(input),
				Data: PuntosAcreditadosEvent{
					PedidoID:  pedido.ID,
					TenderoID: pedido.TenderoID,
					Puntos:    puntos,
				},
			}
			if err := s.outbox.EmitIfNotExists(ctx, tx, event); err != nil {
				return err
			}
		}

		if err := repo.Update(ctx, pedido.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update pedido estado")
		}
		pedido.Estado = input.Estado

		eventType := enums.EventPedidoEstadoCambio
		if input.Estado == enums.PedidoEstadoCancelado {
			eventType = enums.EventPedidoCancelado
		}
		event := outbox.DomainEvent{
			EventType:     eventType,
			AggregateType: enums.AggregatePedido,
			AggregateID:   pedido.ID,
			Version:       1,
			Actor:         buildActor(input),
			Data: EstadoCambiadoEvent{
				PedidoID:     pedido.ID,
				NumeroPedido: pedido.NumeroPedido,
				TenderoID:    pedido.TenderoID,
				BodegaID:     pedido.BodegaID,
				Desde:        desde,
				Hacia:        input.Estado,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}

		if err := s.notifier.PedidoEstadoCambiado(ctx, tx, pedido.ID, pedido.TenderoID, pedido.BodegaID, pedido.NumeroPedido, desde, input.Estado); err != nil {
			return err
		}

		s.metrics.IncTransition(desde.String(), input.Estado.String())
		detail = buildDetail(pedido)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func buildActor(input ChangeEstadoInput) *outbox.ActorRef {
	return &outbox.ActorRef{
		ActorID:  input.ActorID,
		BodegaID: input.BodegaID,
		Role:     input.ActorRole.String(),
	}
}
