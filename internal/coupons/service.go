package coupons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db"
	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/metrics"
)

// Service defines coupon management and validation operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Cupon, error)
	Update(ctx context.Context, id uuid.UUID, bodegaID *uuid.UUID, input UpdateInput) (*models.Cupon, error)
	Delete(ctx context.Context, id uuid.UUID, bodegaID *uuid.UUID) error
	ListForBodega(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error)
	ValidateAt(ctx context.Context, code string, bodegaID uuid.UUID, subtotalCOP int64) (Result, error)
}

type service struct {
	repo    Repository
	metrics *metrics.PedidoMetrics
	now     func() time.Time
}

// NewService builds a cupones service. The clock is injectable for tests;
// metrics may be nil.
func NewService(repo Repository, m *metrics.PedidoMetrics, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cupones repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, metrics: m, now: now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Cupon, error) {
	codigo := strings.ToUpper(strings.TrimSpace(input.Codigo))
	if codigo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "codigo required")
	}
	if !input.Tipo.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cupon tipo")
	}
	if input.Valor <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valor must be positive")
	}
	if input.Tipo == enums.CuponTipoPorcentaje && input.Valor > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percent valor cannot exceed 100")
	}
	if input.MinSubtotalCOP < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min subtotal cannot be negative")
	}
	if input.VigenteDesde != nil && input.VigenteHasta != nil && input.VigenteHasta.Before(*input.VigenteDesde) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vigencia window is inverted")
	}

	cupon := &models.Cupon{
		BodegaID:       input.BodegaID,
		Codigo:         codigo,
		Tipo:           input.Tipo,
		Valor:          input.Valor,
		MinSubtotalCOP: input.MinSubtotalCOP,
		Activo:         input.Activo,
		VigenteDesde:   input.VigenteDesde,
		VigenteHasta:   input.VigenteHasta,
	}
	created, err := s.repo.Create(ctx, cupon)
	if err != nil {
		if db.IsUniqueViolation(err, "ux_cupones_codigo") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "codigo already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cupon")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, bodegaID *uuid.UUID, input UpdateInput) (*models.Cupon, error) {
	cupon, err := s.ownedCupon(ctx, id, bodegaID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Valor != nil {
		if *input.Valor <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "valor must be positive")
		}
		updates["valor"] = *input.Valor
	}
	if input.MinSubtotalCOP != nil {
		if *input.MinSubtotalCOP < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min subtotal cannot be negative")
		}
		updates["min_subtotal_cop"] = *input.MinSubtotalCOP
	}
	if input.Activo != nil {
		updates["activo"] = *input.Activo
	}
	if input.VigenteDesde != nil {
		updates["vigente_desde"] = *input.VigenteDesde
	}
	if input.VigenteHasta != nil {
		updates["vigente_hasta"] = *input.VigenteHasta
	}
	if len(updates) == 0 {
		return cupon, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cupon")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, bodegaID *uuid.UUID) error {
	if _, err := s.ownedCupon(ctx, id, bodegaID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cupon")
	}
	return nil
}

func (s *service) ListForBodega(ctx context.Context, bodegaID uuid.UUID) ([]models.Cupon, error) {
	if bodegaID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bodega id required")
	}
	cupones, err := s.repo.ListForBodega(ctx, bodegaID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cupones")
	}
	return cupones, nil
}

// ValidateAt runs the pure validator against the coupons redeemable at the
// bodega. The Result carries the outcome either way; the error is reserved for
// infrastructure failures.
func (s *service) ValidateAt(ctx context.Context, code string, bodegaID uuid.UUID, subtotalCOP int64) (Result, error) {
	if bodegaID == uuid.Nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "bodega id required")
	}
	cupones, err := s.repo.ListRedeemableAt(ctx, bodegaID)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cupones")
	}

	result := Validate(cupones, code, bodegaID, subtotalCOP, s.now())
	if s.metrics != nil {
		outcome := "rejected"
		if result.OK {
			outcome = "valid"
		}
		s.metrics.IncCuponValidation(outcome)
	}
	return result, nil
}

func (s *service) ownedCupon(ctx context.Context, id uuid.UUID, bodegaID *uuid.UUID) (*models.Cupon, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cupon id required")
	}
	cupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cupon")
	}
	// bodega operators may only touch their own coupons; admins pass nil
	if bodegaID != nil {
		if cupon.BodegaID == nil || *cupon.BodegaID != *bodegaID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cupon does not belong to bodega")
		}
	}
	return cupon, nil
}
