package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
)

type stubCuponesRepo struct {
	created    *models.Cupon
	cupon      *models.Cupon
	redeemable []models.Cupon
	deleted    []uuid.UUID
	updates    map[string]any
}

func (s *stubCuponesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCuponesRepo) Create(ctx context.Context, cupon *models.Cupon) (*models.Cupon, error) {
	if cupon.ID == uuid.Nil {
		cupon.ID = uuid.New()
	}
	s.created = cupon
	return cupon, nil
}

func (s *stubCuponesRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Cupon, error) {
	if s.cupon == nil || s.cupon.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cupon, nil
}

func (s *stubCuponesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubCuponesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCuponesRepo) ListForBodega(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error) {
	return s.redeemable, nil
}

func (s *stubCuponesRepo) ListRedeemableAt(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error) {
	return s.redeemable, nil
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestCreateNormalizesCodigo(t *testing.T) {
	repo := &stubCuponesRepo{}
	svc, _ := NewService(repo, nil, fixedClock)

	created, err := svc.Create(context.Background(), CreateInput{
		Codigo: "  veci10 ",
		Tipo:   enums.CuponTipoPorcentaje,
		Valor:  10,
		Activo: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Codigo != "VECI10" {
		t.Fatalf("expected normalized codigo, got %q", created.Codigo)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	svc, _ := NewService(&stubCuponesRepo{}, nil, fixedClock)

	cases := []CreateInput{
		{Codigo: "", Tipo: enums.CuponTipoFijo, Valor: 100},
		{Codigo: "X", Tipo: enums.CuponTipo("bogus"), Valor: 100},
		{Codigo: "X", Tipo: enums.CuponTipoFijo, Valor: 0},
		{Codigo: "X", Tipo: enums.CuponTipoPorcentaje, Valor: 150},
		{Codigo: "X", Tipo: enums.CuponTipoFijo, Valor: 100, MinSubtotalCOP: -1},
	}
	for i, input := range cases {
		_, err := svc.Create(context.Background(), input)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Errorf("case %d: expected VALIDATION, got %v", i, err)
		}
	}
}

func TestUpdateEnforcesBodegaOwnership(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	repo := &stubCuponesRepo{cupon: &models.Cupon{
		ID:       uuid.New(),
		BodegaID: &owner,
		Codigo:   "VECI10",
		Tipo:     enums.CuponTipoFijo,
		Valor:    2_000,
	}}
	svc, _ := NewService(repo, nil, fixedClock)

	activo := false
	_, err := svc.Update(context.Background(), repo.cupon.ID, &other, UpdateInput{Activo: &activo})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected FORBIDDEN for foreign bodega, got %v", err)
	}

	// admin passes nil bodega and may edit anything
	if _, err := svc.Update(context.Background(), repo.cupon.ID, nil, UpdateInput{Activo: &activo}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if got, ok := repo.updates["activo"].(bool); !ok || got {
		t.Fatalf("expected activo=false update, got %v", repo.updates)
	}
}

func TestValidateAtUsesInjectedClock(t *testing.T) {
	bodega := uuid.New()
	past := fixedClock().Add(-time.Hour)
	repo := &stubCuponesRepo{redeemable: []models.Cupon{{
		ID:           uuid.New(),
		Codigo:       "VENCIDO",
		Tipo:         enums.CuponTipoFijo,
		Valor:        1_000,
		Activo:       true,
		VigenteHasta: &past,
	}}}
	svc, _ := NewService(repo, nil, fixedClock)

	result, err := svc.ValidateAt(context.Background(), "vencido", bodega, 50_000)
	if err != nil {
		t.Fatalf("ValidateAt: %v", err)
	}
	if result.OK || result.Reason != "Cupón vencido" {
		t.Fatalf("expected expired result, got %+v", result)
	}
}
