package tenderos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/internal/loyalty"
	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// PointsLedger reads the tendero's loyalty state.
type PointsLedger interface {
	Balance(ctx context.Context, tenderoID uuid.UUID) (*loyalty.Saldo, error)
	Movimientos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*loyalty.MovimientoList, error)
}

// Service covers tendero registration, profile and points.
type Service interface {
	Register(ctx context.Context, input CreateInput) (*models.Tendero, error)
	Get(ctx context.Context, tenderoID uuid.UUID) (*models.Tendero, error)
	Update(ctx context.Context, tenderoID uuid.UUID, input UpdateInput) (*models.Tendero, error)
	Puntos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*PuntosView, error)
}

type service struct {
	repo   Repository
	puntos PointsLedger
}

// NewService builds a tenderos service with the required dependencies.
func NewService(repo Repository, puntos PointsLedger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenderos repository required")
	}
	if puntos == nil {
		return nil, fmt.Errorf("points ledger required")
	}
	return &service{repo: repo, puntos: puntos}, nil
}

func (s *service) Register(ctx context.Context, input CreateInput) (*models.Tendero, error) {
	if strings.TrimSpace(input.Nombre) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre is required")
	}
	if strings.TrimSpace(input.Tienda) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tienda is required")
	}
	if strings.TrimSpace(input.Direccion) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "direccion is required")
	}

	tendero := &models.Tendero{
		Nombre:    strings.TrimSpace(input.Nombre),
		Tienda:    strings.TrimSpace(input.Tienda),
		Direccion: strings.TrimSpace(input.Direccion),
		Barrio:    input.Barrio,
		Telefono:  input.Telefono,
	}
	created, err := s.repo.Create(ctx, tendero)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tendero")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, tenderoID uuid.UUID) (*models.Tendero, error) {
	tendero, err := s.repo.FindByID(ctx, tenderoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tendero not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tendero")
	}
	return tendero, nil
}

func (s *service) Update(ctx context.Context, tenderoID uuid.UUID, input UpdateInput) (*models.Tendero, error) {
	if _, err := s.Get(ctx, tenderoID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Nombre != nil {
		if strings.TrimSpace(*input.Nombre) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre must not be empty")
		}
		updates["nombre"] = strings.TrimSpace(*input.Nombre)
	}
	if input.Tienda != nil {
		if strings.TrimSpace(*input.Tienda) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tienda must not be empty")
		}
		updates["tienda"] = strings.TrimSpace(*input.Tienda)
	}
	if input.Direccion != nil {
		updates["direccion"] = strings.TrimSpace(*input.Direccion)
	}
	if input.Barrio != nil {
		updates["barrio"] = *input.Barrio
	}
	if input.Telefono != nil {
		updates["telefono"] = *input.Telefono
	}
	if len(updates) == 0 {
		return s.Get(ctx, tenderoID)
	}

	if err := s.repo.Update(ctx, tenderoID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tendero")
	}
	return s.Get(ctx, tenderoID)
}

func (s *service) Puntos(ctx context.Context, tenderoID uuid.UUID, params pagination.Params) (*PuntosView, error) {
	saldo, err := s.puntos.Balance(ctx, tenderoID)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.puntos.Movimientos(ctx, tenderoID, params)
	if err != nil {
		return nil, err
	}
	return &PuntosView{
		Saldo:       saldo.PuntosSaldo,
		Movimientos: movimientos.Movimientos,
		NextCursor:  movimientos.NextCursor,
	}, nil
}
