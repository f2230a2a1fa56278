package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/pkg/enums"
)

func TestActorInjectsIdentityIntoContext(t *testing.T) {
	actorID := uuid.New()
	bodegaID := uuid.New()

	var sawRole enums.ActorRole
	var sawActor, sawBodega uuid.UUID
	handler := Actor(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRole, _ = RoleFromContext(r.Context())
		sawActor, _ = ActorIDFromContext(r.Context())
		sawBodega, _ = BodegaIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Actor-Role", "bodega")
	req.Header.Set("X-Actor-Id", actorID.String())
	req.Header.Set("X-Bodega-Id", bodegaID.String())
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if sawRole != enums.ActorRoleBodega {
		t.Fatalf("expected bodega role, got %q", sawRole)
	}
	if sawActor != actorID {
		t.Fatalf("actor id not propagated")
	}
	if sawBodega != bodegaID {
		t.Fatalf("bodega id not propagated")
	}
}

func TestActorRejectsUnknownRole(t *testing.T) {
	handler := Actor(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Actor-Role", "gerente")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", w.Code)
	}
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	var ran bool
	handler := Actor(nil)(RequireRole(nil, enums.ActorRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Actor-Role", "tendero")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if ran {
		t.Fatalf("tendero should not reach admin handler")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Actor-Role", "admin")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if !ran {
		t.Fatalf("admin should reach handler")
	}
}

func TestRequireRoleWithoutRoleHeader(t *testing.T) {
	handler := RequireRole(nil, enums.ActorRoleTendero)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without role, got %d", w.Code)
	}
}
