package tenderos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/internal/loyalty"
	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

type stubTenderosRepo struct {
	tendero *models.Tendero
	updates map[string]any
}

func (s *stubTenderosRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubTenderosRepo) Create(ctx context.Context, tendero *models.Tendero) (*models.Tendero, error) {
	tendero.ID = uuid.New()
	s.tendero = tendero
	return tendero, nil
}

func (s *stubTenderosRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Tendero, error) {
	if s.tendero == nil || s.tendero.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.tendero, nil
}

func (s *stubTenderosRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

type stubLedger struct {
	saldo       int64
	movimientos []loyalty.MovimientoSummary
}

func (s *stubLedger) Balance(ctx context.Context, tenderoID uuid.UUID) (*loyalty.Saldo, error) {
	return &loyalty.Saldo{TenderoID: tenderoID, PuntosSaldo: s.saldo}, nil
}

func (s *stubLedger) Movimientos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*loyalty.MovimientoList, error) {
	return &loyalty.MovimientoList{Movimientos: s.movimientos}, nil
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	svc, err := NewService(&stubTenderosRepo{}, &stubLedger{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cases := []CreateInput{
		{Nombre: "", Tienda: "Tienda Doña Marta", Direccion: "Calle 3 #4-5"},
		{Nombre: "Marta", Tienda: " ", Direccion: "Calle 3 #4-5"},
		{Nombre: "Marta", Tienda: "Tienda Doña Marta", Direccion: ""},
	}
	for i, input := range cases {
		_, err := svc.Register(context.Background(), input)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Errorf("case %d: expected VALIDATION, got %v", i, err)
		}
	}
}

func TestRegisterTrimsFields(t *testing.T) {
	repo := &stubTenderosRepo{}
	svc, _ := NewService(repo, &stubLedger{})

	tendero, err := svc.Register(context.Background(), CreateInput{
		Nombre:    " Marta ",
		Tienda:    "Tienda Doña Marta",
		Direccion: "Calle 3 #4-5",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if tendero.Nombre != "Marta" {
		t.Fatalf("expected trimmed nombre, got %q", tendero.Nombre)
	}
	if tendero.PuntosSaldo != 0 {
		t.Fatalf("expected zero starting saldo, got %d", tendero.PuntosSaldo)
	}
}

func TestPuntosCombinesSaldoAndLedger(t *testing.T) {
	repo := &stubTenderosRepo{tendero: &models.Tendero{ID: uuid.New(), Nombre: "Marta", Tienda: "La Esquina", Direccion: "Calle 3"}}
	ledger := &stubLedger{
		saldo: 42,
		movimientos: []loyalty.MovimientoSummary{
			{ID: uuid.New(), Puntos: 5},
			{ID: uuid.New(), Puntos: -2},
		},
	}
	svc, _ := NewService(repo, ledger)

	view, err := svc.Puntos(context.Background(), repo.tendero.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("Puntos: %v", err)
	}
	if view.Saldo != 42 || len(view.Movimientos) != 2 {
		t.Fatalf("unexpected puntos view %+v", view)
	}
}
