package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/internal/notifications"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type testNotificacionesService struct {
	markReadFn    func(ctx context.Context, role enums.ActorRole, actorID, notificacionID uuid.UUID) error
	markAllReadFn func(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error)
	listFn        func(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*notifications.NotificacionList, error)
}

func (s *testNotificacionesService) List(ctx context.Context, role enums.ActorRole, actorID uuid.UUID, onlyUnread bool, params pagination.Params) (*notifications.NotificacionList, error) {
	if s.listFn != nil {
		return s.listFn(ctx, role, actorID, onlyUnread, params)
	}
	return &notifications.NotificacionList{}, nil
}

func (s *testNotificacionesService) UnreadCount(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *testNotificacionesService) MarkRead(ctx context.Context, role enums.ActorRole, actorID, notificacionID uuid.UUID) error {
	if s.markReadFn != nil {
		return s.markReadFn(ctx, role, actorID, notificacionID)
	}
	return nil
}

func (s *testNotificacionesService) MarkAllRead(ctx context.Context, role enums.ActorRole, actorID uuid.UUID) (int64, error) {
	if s.markAllReadFn != nil {
		return s.markAllReadFn(ctx, role, actorID)
	}
	return 0, nil
}

func (s *testNotificacionesService) PedidoCreado(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64) error {
	return nil
}

func (s *testNotificacionesService) PedidoEstadoCambiado(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID, bodegaID uuid.UUID, numeroPedido int64, desde, hacia enums.PedidoEstado) error {
	return nil
}

func (s *testNotificacionesService) EntregaIncidencia(ctx context.Context, tx *gorm.DB, pedidoID, bodegaID uuid.UUID, numeroPedido int64, nota string) error {
	return nil
}

func (s *testNotificacionesService) PuntosAcreditados(ctx context.Context, tx *gorm.DB, pedidoID, tenderoID uuid.UUID, numeroPedido, puntos int64) error {
	return nil
}

func TestMarkNotificacionLeidaSuccess(t *testing.T) {
	actorID := uuid.New()
	notificacionID := uuid.New()
	called := false
	svc := &testNotificacionesService{
		markReadFn: func(ctx context.Context, role enums.ActorRole, aid, nid uuid.UUID) error {
			called = true
			if role != enums.ActorRoleTendero {
				t.Fatalf("unexpected role %s", role)
			}
			if aid != actorID {
				t.Fatalf("unexpected actor %s", aid)
			}
			if nid != notificacionID {
				t.Fatalf("unexpected notificacion %s", nid)
			}
			return nil
		},
	}

	r := chi.NewRouter()
	r.Post("/notificaciones/{notificacionId}/leer", MarkNotificacionLeida(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/notificaciones/"+notificacionID.String()+"/leer", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), enums.ActorRoleTendero, actorID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	if !called {
		t.Fatalf("service was not invoked")
	}
}

func TestMarkNotificacionLeidaRequiresActor(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/notificaciones/{notificacionId}/leer", MarkNotificacionLeida(&testNotificacionesService{}, nil))

	req := httptest.NewRequest(http.MethodPost, "/notificaciones/"+uuid.NewString()+"/leer", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without actor, got %d", w.Code)
	}
}

func TestListNotificacionesParsesQuery(t *testing.T) {
	actorID := uuid.New()
	svc := &testNotificacionesService{
		listFn: func(ctx context.Context, role enums.ActorRole, aid uuid.UUID, onlyUnread bool, params pagination.Params) (*notifications.NotificacionList, error) {
			if !onlyUnread {
				t.Fatalf("expected solo_no_leidas to be honored")
			}
			if params.Limit != 5 {
				t.Fatalf("expected limit 5, got %d", params.Limit)
			}
			return &notifications.NotificacionList{}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/notificaciones", ListNotificaciones(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/notificaciones?solo_no_leidas=true&limit=5", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), enums.ActorRoleBodega, actorID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data notifications.NotificacionList `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
}
