package deliveries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// IncidenciaNotifier alerts the bodega when a courier reports a problem.
type IncidenciaNotifier interface {
	EntregaIncidencia(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64, nota string) error
}

// Service covers courier-facing entrega operations plus the hooks the pedido
// state machine drives on listo, en_camino and entregado.
type Service interface {
	Get(ctx context.Context, entregaID uuid.UUID) (*EntregaRow, error)
	Disponibles(ctx context.Context, params pagination.Params) (*EntregaList, error)
	Asignadas(ctx context.Context, repartidorID uuid.UUID, params pagination.Params) (*EntregaList, error)
	ReportIncidencia(ctx context.Context, input IncidenciaInput) (*EntregaRow, error)

	EnsureForPedido(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID) error
	MarkRecogida(ctx context.Context, tx *gorm.DB, pedidoID, repartidorID uuid.UUID, at time.Time) error
	MarkEntregada(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID, at time.Time) error
}

type service struct {
	repo     Repository
	tx       txRunner
	outbox   outboxPublisher
	notifier IncidenciaNotifier
}

// NewService builds an entregas service with the required dependencies.
func NewService(repo Repository, tx txRunner, outbox outboxPublisher, notifier IncidenciaNotifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("entregas repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("incidencia notifier required")
	}
	return &service{repo: repo, tx: tx, outbox: outbox, notifier: notifier}, nil
}

func (s *service) Get(ctx context.Context, entregaID uuid.UUID) (*EntregaRow, error) {
	row, err := s.repo.FindByID(ctx, entregaID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "entrega not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading entrega")
	}
	return row, nil
}

func (s *service) Disponibles(ctx context.Context, params pagination.Params) (*EntregaList, error) {
	list, err := s.repo.ListDisponibles(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing entregas disponibles")
	}
	return list, nil
}

func (s *service) Asignadas(ctx context.Context, repartidorID uuid.UUID, params pagination.Params) (*EntregaList, error) {
	list, err := s.repo.ListForRepartidor(ctx, repartidorID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing entregas asignadas")
	}
	return list, nil
}

func (s *service) ReportIncidencia(ctx context.Context, input IncidenciaInput) (*EntregaRow, error) {
	nota := strings.TrimSpace(input.Nota)
	if nota == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "incidencia nota is required")
	}

	var row *EntregaRow
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.FindByID(ctx, input.EntregaID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "entrega not found")
			}
			return err
		}
		if current.RepartidorID == nil || *current.RepartidorID != input.RepartidorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "entrega belongs to another repartidor")
		}

		if err := repo.Update(ctx, current.ID, map[string]any{"incidencia": nota}); err != nil {
			return err
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventEntregaIncidencia,
			AggregateType: enums.AggregateEntrega,
			AggregateID:   current.ID,
			Actor: &outbox.ActorRef{
				ActorID: input.RepartidorID,
				Role:    enums.ActorRoleRepartidor.String(),
			},
			Data: IncidenciaEvent{
				EntregaID:    current.ID,
				PedidoID:     current.PedidoID,
				NumeroPedido: current.NumeroPedido,
				BodegaID:     current.BodegaID,
				RepartidorID: input.RepartidorID,
				Nota:         nota,
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return err
		}
		if err := s.notifier.EntregaIncidencia(ctx, tx, current.PedidoID, current.BodegaID, current.NumeroPedido, nota); err != nil {
			return err
		}

		current.Incidencia = &nota
		row = current
		return nil
	})
	if err != nil {
		if coded := pkgerrors.As(err); coded != nil {
			return nil, coded
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reporting incidencia")
	}
	return row, nil
}

// EnsureForPedido creates the entrega row when the bodega marks the pedido
// listo. Idempotent: re-running the transition leaves the existing row alone.
func (s *service) EnsureForPedido(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID) error {
	repo := s.repo.WithTx(tx)
	_, err := repo.FindByPedido(ctx, pedidoID)
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	_, err = repo.Create(ctx, &models.Entrega{PedidoID: pedidoID})
	return err
}

func (s *service) MarkRecogida(ctx context.Context, tx *gorm.DB, pedidoID, repartidorID uuid.UUID, at time.Time) error {
	repo := s.repo.WithTx(tx)
	entrega, err := repo.FindByPedido(ctx, pedidoID)
	if err == gorm.ErrRecordNotFound {
		_, err = repo.Create(ctx, &models.Entrega{
			PedidoID:     pedidoID,
			RepartidorID: &repartidorID,
			RecogidaAt:   &at,
		})
		return err
	}
	if err != nil {
		return err
	}
	return repo.Update(ctx, entrega.ID, map[string]any{
		"repartidor_id": repartidorID,
		"recogida_at":   at,
	})
}

func (s *service) MarkEntregada(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID, at time.Time) error {
	repo := s.repo.WithTx(tx)
	entrega, err := repo.FindByPedido(ctx, pedidoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "pedido has no entrega")
		}
		return err
	}
	return repo.Update(ctx, entrega.ID, map[string]any{"entregada_at": at})
}
