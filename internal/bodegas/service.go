package bodegas

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veciplaza/veciplaza-backend/pkg/db/models"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/pagination"
)

// Service covers the bodega directory and admin registration.
type Service interface {
	Register(ctx context.Context, input CreateInput) (*models.Bodega, error)
	Get(ctx context.Context, bodegaID uuid.UUID) (*models.Bodega, error)
	Update(ctx context.Context, bodegaID uuid.UUID, input UpdateInput) (*models.Bodega, error)
	List(ctx context.Context, filters Filters, params pagination.Params) (*BodegaList, error)
}

type service struct {
	repo Repository
}

// NewService builds a bodegas service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bodegas repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Register(ctx context.Context, input CreateInput) (*models.Bodega, error) {
	if strings.TrimSpace(input.Nombre) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre is required")
	}
	if strings.TrimSpace(input.Direccion) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "direccion is required")
	}

	bodega := &models.Bodega{
		Nombre:    strings.TrimSpace(input.Nombre),
		NIT:       input.NIT,
		Direccion: strings.TrimSpace(input.Direccion),
		Barrio:    input.Barrio,
		Telefono:  input.Telefono,
		Activa:    true,
	}
	created, err := s.repo.Create(ctx, bodega)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bodega")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, bodegaID uuid.UUID) (*models.Bodega, error) {
	bodega, err := s.repo.FindByID(ctx, bodegaID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bodega not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bodega")
	}
	return bodega, nil
}

func (s *service) Update(ctx context.Context, bodegaID uuid.UUID, input UpdateInput) (*models.Bodega, error) {
	if _, err := s.Get(ctx, bodegaID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Nombre != nil {
		if strings.TrimSpace(*input.Nombre) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "nombre must not be empty")
		}
		updates["nombre"] = strings.TrimSpace(*input.Nombre)
	}
	if input.NIT != nil {
		updates["nit"] = *input.NIT
	}
	if input.Direccion != nil {
		if strings.TrimSpace(*input.Direccion) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "direccion must not be empty")
		}
		updates["direccion"] = strings.TrimSpace(*input.Direccion)
	}
	if input.Barrio != nil {
		updates["barrio"] = *input.Barrio
	}
	if input.Telefono != nil {
		updates["telefono"] = *input.Telefono
	}
	if input.Activa != nil {
		updates["activa"] = *input.Activa
	}
	if len(updates) == 0 {
		return s.Get(ctx, bodegaID)
	}

	if err := s.repo.Update(ctx, bodegaID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bodega")
	}
	return s.Get(ctx, bodegaID)
}

func (s *service) List(ctx context.Context, filters Filters, params pagination.Params) (*BodegaList, error) {
	list, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bodegas")
	}
	return list, nil
}
