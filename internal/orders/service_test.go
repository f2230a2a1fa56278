package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type stubPedidosRepo struct {
	pedido  *models.Pedido
	updates map[string]any
}

func (s *stubPedidosRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPedidosRepo) Create(ctx context.Context, pedido *models.Pedido) (*models.Pedido, error) {
	if pedido.ID == uuid.Nil {
		pedido.ID = uuid.New()
	}
	return pedido, nil
}

func (s *stubPedidosRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Pedido, error) {
	if s.pedido == nil || s.pedido.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.pedido, nil
}

func (s *stubPedidosRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.pedido == nil || s.pedido.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.updates = updates
	if estado, ok := updates["estado"].(enums.PedidoEstado); ok {
		s.pedido.Estado = estado
	}
	return nil
}

func (s *stubPedidosRepo) ListByTendero(ctx context.Context, tenderoID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error) {
	return &PedidoList{}, nil
}

func (s *stubPedidosRepo) ListByBodega(ctx context.Context, bodegaID uuid.UUID, params pagination.Params, filters Filters) (*PedidoList, error) {
	return &PedidoList{}, nil
}

type stubOutboxPublisher struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubOutboxPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubOutboxPublisher) EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	return s.Emit(ctx, tx, event)
}

type stubAccruer struct {
	puntos int64
	calls  int
	err    error
}

func (s *stubAccruer) AccrueOnDelivery(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.calls++
	return s.puntos, nil
}

type stubDeliveryTracker struct {
	ensured   []uuid.UUID
	recogidas []uuid.UUID
	entregas  []uuid.UUID
}

func (s *stubDeliveryTracker) EnsureForPedido(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID) error {
	s.ensured = append(s.ensured, pedidoID)
	return nil
}

func (s *stubDeliveryTracker) MarkRecogida(ctx context.Context, tx *gorm.DB, pedidoID, repartidorID uuid.UUID, at time.Time) error {
	s.recogidas = append(s.recogidas, pedidoID)
	return nil
}

func (s *stubDeliveryTracker) MarkEntregada(ctx context.Context, tx *gorm.DB, pedidoID uuid.UUID, at time.Time) error {
	s.entregas = append(s.entregas, pedidoID)
	return nil
}

type notifiedChange struct {
	desde enums.PedidoEstado
	hacia enums.PedidoEstado
}

type stubNotifier struct {
	changes []notifiedChange
}

func (s *stubNotifier) PedidoEstadoCambiado(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID, bodegaID uuid.UUID, numeroPedido int64, desde, hacia enums.PedidoEstado) error {
	s.changes = append(s.changes, notifiedChange{desde: desde, hacia: hacia})
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubPedidosRepo, pub *stubOutboxPublisher, accruer *stubAccruer, tracker *stubDeliveryTracker, notifier *stubNotifier) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, pub, accruer, tracker, notifier, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func newPedido(estado enums.PedidoEstado) *models.Pedido {
	return &models.Pedido{
		ID:               uuid.New(),
		TenderoID:        uuid.New(),
		BodegaID:         uuid.New(),
		Estado:           estado,
		TotalOriginalCOP: 50_000,
		DescuentoCOP:     5_000,
		TotalCOP:         45_000,
		NumeroPedido:     1042,
	}
}

func TestChangeEstadoAppliesForwardStep(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoNuevo)}
	pub := &stubOutboxPublisher{}
	notifier := &stubNotifier{}
	svc := newTestService(t, repo, pub, &stubAccruer{}, &stubDeliveryTracker{}, notifier)

	detail, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoAceptado,
		ActorID:   uuid.New(),
		ActorRole: enums.ActorRoleBodega,
	})
	if err != nil {
		t.Fatalf("ChangeEstado: %v", err)
	}
	if detail.Estado != enums.PedidoEstadoAceptado {
		t.Fatalf("expected aceptado, got %s", detail.Estado)
	}
	if _, ok := repo.updates["aceptado_at"]; !ok {
		t.Fatalf("expected aceptado_at to be stamped")
	}
	if len(pub.events) != 1 || pub.events[0].EventType != enums.EventPedidoEstadoCambio {
		t.Fatalf("expected one estado_cambio event, got %+v", pub.events)
	}
	if len(notifier.changes) != 1 || notifier.changes[0].hacia != enums.PedidoEstadoAceptado {
		t.Fatalf("expected notification for aceptado, got %+v", notifier.changes)
	}
}

func TestChangeEstadoRejectsIllegalTransition(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoNuevo)}
	pub := &stubOutboxPublisher{}
	svc := newTestService(t, repo, pub, &stubAccruer{}, &stubDeliveryTracker{}, &stubNotifier{})

	_, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoEntregado,
		ActorID:   uuid.New(),
		ActorRole: enums.ActorRoleAdmin,
	})
	if err == nil {
		t.Fatalf("expected state conflict for nuevo -> entregado")
	}
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("no events should be emitted on rejection")
	}
	if repo.updates != nil {
		t.Fatalf("pedido must not be updated on rejection")
	}
}

func TestChangeEstadoRejectsCancelledPedido(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoCancelado)}
	svc := newTestService(t, repo, &stubOutboxPublisher{}, &stubAccruer{}, &stubDeliveryTracker{}, &stubNotifier{})

	_, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoAceptado,
		ActorID:   uuid.New(),
		ActorRole: enums.ActorRoleAdmin,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("cancelado must be absorbing, got %v", err)
	}
}

func TestChangeEstadoEnforcesRoleTargets(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoNuevo)}
	svc := newTestService(t, repo, &stubOutboxPublisher{}, &stubAccruer{}, &stubDeliveryTracker{}, &stubNotifier{})

	_, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoAceptado,
		ActorID:   repo.pedido.TenderoID,
		ActorRole: enums.ActorRoleTendero,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("tendero cannot accept own pedido, got %v", err)
	}
}

func TestChangeEstadoListoEnsuresEntrega(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoPreparando)}
	tracker := &stubDeliveryTracker{}
	svc := newTestService(t, repo, &stubOutboxPublisher{}, &stubAccruer{}, tracker, &stubNotifier{})

	_, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoListo,
		ActorID:   uuid.New(),
		ActorRole: enums.ActorRoleBodega,
	})
	if err != nil {
		t.Fatalf("ChangeEstado: %v", err)
	}
	if len(tracker.ensured) != 1 || tracker.ensured[0] != repo.pedido.ID {
		t.Fatalf("expected entrega to be ensured for pedido")
	}
}

func TestChangeEstadoEnCaminoAssignsRepartidor(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoListo)}
	tracker := &stubDeliveryTracker{}
	svc := newTestService(t, repo, &stubOutboxPublisher{}, &stubAccruer{}, tracker, &stubNotifier{})

	repartidorID := uuid.New()
	_, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoEnCamino,
		ActorID:   repartidorID,
		ActorRole: enums.ActorRoleRepartidor,
	})
	if err != nil {
		t.Fatalf("ChangeEstado: %v", err)
	}
	if got, ok := repo.updates["repartidor_id"].(uuid.UUID); !ok || got != repartidorID {
		t.Fatalf("expected repartidor assignment, got %v", repo.updates["repartidor_id"])
	}
	if len(tracker.recogidas) != 1 {
		t.Fatalf("expected recogida mark on entrega")
	}
}

func TestChangeEstadoEntregadoAccruesPointsOnce(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoEnCamino)}
	pub := &stubOutboxPublisher{}
	accruer := &stubAccruer{puntos: 4}
	tracker := &stubDeliveryTracker{}
	svc := newTestService(t, repo, pub, accruer, tracker, &stubNotifier{})

	detail, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		Estado:    enums.PedidoEstadoEntregado,
		ActorID:   uuid.New(),
		ActorRole: enums.ActorRoleRepartidor,
	})
	if err != nil {
		t.Fatalf("ChangeEstado: %v", err)
	}
	if accruer.calls != 1 {
		t.Fatalf("expected exactly one accrual call, got %d", accruer.calls)
	}
	if detail.PuntosOtorgados != 4 {
		t.Fatalf("expected 4 puntos on detail, got %d", detail.PuntosOtorgados)
	}
	if got, ok := repo.updates["puntos_otorgados"].(int64); !ok || got != 4 {
		t.Fatalf("expected puntos_otorgados update, got %v", repo.updates["puntos_otorgados"])
	}
	if len(tracker.entregas) != 1 {
		t.Fatalf("expected entrega marked entregada")
	}

	var sawPuntos, sawEstado bool
	for _, ev := range pub.events {
		switch ev.EventType {
		case enums.EventPuntosAcreditados:
			sawPuntos = true
		case enums.EventPedidoEstadoCambio:
			sawEstado = true
		}
	}
	if !sawPuntos || !sawEstado {
		t.Fatalf("expected puntos + estado events, got %+v", pub.events)
	}
}

func TestCancelEmitsCanceladoEvent(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoNuevo)}
	pub := &stubOutboxPublisher{}
	svc := newTestService(t, repo, pub, &stubAccruer{}, &stubDeliveryTracker{}, &stubNotifier{})

	detail, err := svc.Cancel(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		ActorID:   repo.pedido.TenderoID,
		ActorRole: enums.ActorRoleTendero,
	})
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if detail.Estado != enums.PedidoEstadoCancelado {
		t.Fatalf("expected cancelado, got %s", detail.Estado)
	}
	if len(pub.events) != 1 || pub.events[0].EventType != enums.EventPedidoCancelado {
		t.Fatalf("expected pedido.cancelado event, got %+v", pub.events)
	}
}

func TestCancelRejectsForeignTendero(t *testing.T) {
	repo := &stubPedidosRepo{pedido: newPedido(enums.PedidoEstadoNuevo)}
	svc := newTestService(t, repo, &stubOutboxPublisher{}, &stubAccruer{}, &stubDeliveryTracker{}, &stubNotifier{})

	_, err := svc.Cancel(context.Background(), ChangeEstadoInput{
		PedidoID:  repo.pedido.ID,
		ActorID:   uuid.New(), // not the owner
		ActorRole: enums.ActorRoleTendero,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN for foreign tendero, got %v", err)
	}
}

func TestChangeEstadoUnknownPedido(t *testing.T) {
	svc := newTestService(t, &stubPedidosRepo{}, &stubOutboxPublisher{}, &stubAccruer{}, &stubDeliveryTracker{}, &stubNotifier{})

	_, err := svc.ChangeEstado(context.Background(), ChangeEstadoInput{
		PedidoID:  uuid.New(),
		Estado:    enums.PedidoEstadoAceptado,
		ActorID:   uuid.New(),
		ActorRole: enums.ActorRoleAdmin,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
