package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/outbox"
)

type stubAjustesRepo struct {
	ajustes map[string]string
}

func newStubAjustesRepo() *stubAjustesRepo {
	return &stubAjustesRepo{ajustes: map[string]string{}}
}

func (s *stubAjustesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubAjustesRepo) Find(ctx context.Context, clave string) (*models.AjustePlataforma, error) {
	valor, ok := s.ajustes[clave]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.AjustePlataforma{Clave: clave, Valor: valor}, nil
}

func (s *stubAjustesRepo) Upsert(ctx context.Context, clave, valor string) error {
	s.ajustes[clave] = valor
	return nil
}

func (s *stubAjustesRepo) List(ctx context.Context) ([]models.AjustePlataforma, error) {
	var out []models.AjustePlataforma
	for clave, valor := range s.ajustes {
		out = append(out, models.AjustePlataforma{Clave: clave, Valor: valor})
	}
	return out, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOutbox struct {
	emitted []outbox.DomainEvent
}

func (s *stubOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.emitted = append(s.emitted, event)
	return nil
}

func TestSetIAAsistenteTogglesAndEmits(t *testing.T) {
	repo := newStubAjustesRepo()
	ob := &stubOutbox{}
	svc, err := NewService(repo, stubTxRunner{}, ob)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.SetIAAsistente(context.Background(), uuid.New(), true); err != nil {
		t.Fatalf("SetIAAsistente: %v", err)
	}

	enabled, err := svc.IAAsistenteEnabled(context.Background())
	if err != nil {
		t.Fatalf("IAAsistenteEnabled: %v", err)
	}
	if !enabled {
		t.Fatalf("expected toggle on")
	}
	if len(ob.emitted) != 1 || ob.emitted[0].EventType != enums.EventAjusteActualizado {
		t.Fatalf("expected ajuste.actualizado event, got %+v", ob.emitted)
	}
}

func TestIAAsistenteDefaultsOff(t *testing.T) {
	svc, _ := NewService(newStubAjustesRepo(), stubTxRunner{}, &stubOutbox{})

	enabled, err := svc.IAAsistenteEnabled(context.Background())
	if err != nil {
		t.Fatalf("IAAsistenteEnabled: %v", err)
	}
	if enabled {
		t.Fatalf("expected missing row to read as disabled")
	}
}

func TestSetRejectsUnknownClave(t *testing.T) {
	svc, _ := NewService(newStubAjustesRepo(), stubTxRunner{}, &stubOutbox{})

	_, err := svc.Set(context.Background(), uuid.New(), "tema_oscuro", "true")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION for unknown clave, got %v", err)
	}
}

func TestSetRejectsNonBooleanToggle(t *testing.T) {
	svc, _ := NewService(newStubAjustesRepo(), stubTxRunner{}, &stubOutbox{})

	_, err := svc.Set(context.Background(), uuid.New(), ClaveIAAsistente, "tal vez")
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION for bad valor, got %v", err)
	}
}
