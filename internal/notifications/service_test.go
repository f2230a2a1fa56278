package notifications

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type stubNotificacionesRepo struct {
	created      []*models.Notificacion
	notificacion *models.Notificacion
	read         []uuid.UUID
}

func (s *stubNotificacionesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubNotificacionesRepo) Create(ctx context.Context, n *models.Notificacion) (*models.Notificacion, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	s.created = append(s.created, n)
	return n, nil
}

func (s *stubNotificacionesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Notificacion, error) {
	if s.notificacion == nil || s.notificacion.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.notificacion, nil
}

func (s *stubNotificacionesRepo) ListForActor(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*NotificacionList, error) {
	return &NotificacionList{}, nil
}

func (s *stubNotificacionesRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	s.read = append(s.read, id)
	return nil
}

func (s *stubNotificacionesRepo) MarkAllRead(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubNotificacionesRepo) CountUnread(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	return 0, nil
}

func TestPedidoEstadoCambiadoNotifiesTendero(t *testing.T) {
	repo := &stubNotificacionesRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	tenderoID := uuid.New()
	err = svc.PedidoEstadoCambiado(context.Background(), nil, uuid.New(), tenderoID, uuid.New(), 1042,
		enums.PedidoEstadoNuevo, enums.PedidoEstadoAceptado)
	if err != nil {
		t.Fatalf("PedidoEstadoCambiado: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one notificacion, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.ActorRole != enums.ActorRoleTendero || n.ActorID != tenderoID {
		t.Fatalf("expected tendero recipient, got %s %s", n.ActorRole, n.ActorID)
	}
	if n.Tipo != enums.NotificacionTipoPedidoEstado {
		t.Fatalf("expected pedido_estado tipo, got %s", n.Tipo)
	}
	if !strings.Contains(n.Mensaje, "#1042") {
		t.Fatalf("expected numero in mensaje, got %q", n.Mensaje)
	}
}

func TestCancelacionAlsoNotifiesBodega(t *testing.T) {
	repo := &stubNotificacionesRepo{}
	svc, _ := NewService(repo)

	bodegaID := uuid.New()
	err := svc.PedidoEstadoCambiado(context.Background(), nil, uuid.New(), uuid.New(), bodegaID, 7,
		enums.PedidoEstadoPreparando, enums.PedidoEstadoCancelado)
	if err != nil {
		t.Fatalf("PedidoEstadoCambiado: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected tendero and bodega notificaciones, got %d", len(repo.created))
	}
	bodega := repo.created[1]
	if bodega.ActorRole != enums.ActorRoleBodega || bodega.ActorID != bodegaID {
		t.Fatalf("expected bodega recipient, got %s %s", bodega.ActorRole, bodega.ActorID)
	}
}

func TestEntregaIncidenciaCarriesNota(t *testing.T) {
	repo := &stubNotificacionesRepo{}
	svc, _ := NewService(repo)

	err := svc.EntregaIncidencia(context.Background(), nil, uuid.New(), uuid.New(), 9, "cliente ausente")
	if err != nil {
		t.Fatalf("EntregaIncidencia: %v", err)
	}
	n := repo.created[0]
	if n.Tipo != enums.NotificacionTipoIncidencia || !strings.Contains(n.Mensaje, "cliente ausente") {
		t.Fatalf("unexpected notificacion %+v", n)
	}
}

func TestMarkReadEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	repo := &stubNotificacionesRepo{notificacion: &models.Notificacion{
		ID:        uuid.New(),
		ActorRole: enums.ActorRoleTendero,
		ActorID:   owner,
	}}
	svc, _ := NewService(repo)

	err := svc.MarkRead(context.Background(), enums.ActorRoleTendero, uuid.New(), repo.notificacion.ID)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN for foreign actor, got %v", err)
	}

	if err := svc.MarkRead(context.Background(), enums.ActorRoleTendero, owner, repo.notificacion.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if len(repo.read) != 1 || repo.read[0] != repo.notificacion.ID {
		t.Fatalf("expected mark-read recorded, got %v", repo.read)
	}
}
