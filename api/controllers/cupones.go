package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/coupons"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

type validateCuponRequest struct {
	Codigo      string    `json:"codigo" validate:"required"`
	BodegaID    uuid.UUID `json:"bodega_id" validate:"required"`
	SubtotalCOP int64     `json:"subtotal_cop" validate:"gte=0"`
}

// ValidateCupon answers whether a code would apply, without redeeming it.
// Rejections come back as a 200 with ok=false so storefronts can show the
// reason inline.
func ValidateCupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateCuponRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ValidateAt(r.Context(), req.Codigo, req.BodegaID, req.SubtotalCOP)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ListCupones(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, ok := middleware.BodegaIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "bodega id required"))
			return
		}

		cupones, err := svc.ListForBodega(r.Context(), bodegaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cupones)
	}
}

type createCuponRequest struct {
	Codigo         string     `json:"codigo" validate:"required"`
	Tipo           string     `json:"tipo" validate:"required,oneof=fixed percent"`
	Valor          int64      `json:"valor" validate:"required,gt=0"`
	MinSubtotalCOP int64      `json:"min_subtotal_cop" validate:"gte=0"`
	Activo         *bool      `json:"activo"`
	VigenteDesde   *time.Time `json:"vigente_desde"`
	VigenteHasta   *time.Time `json:"vigente_hasta"`
}

func CreateCupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, ok := middleware.BodegaIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "bodega id required"))
			return
		}

		var req createCuponRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tipo, err := enums.ParseCuponTipo(strings.TrimSpace(req.Tipo))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tipo"))
			return
		}

		activo := true
		if req.Activo != nil {
			activo = *req.Activo
		}

		cupon, err := svc.Create(r.Context(), coupons.CreateInput{
			BodegaID:       &bodegaID,
			Codigo:         req.Codigo,
			Tipo:           tipo,
			Valor:          req.Valor,
			MinSubtotalCOP: req.MinSubtotalCOP,
			Activo:         activo,
			VigenteDesde:   req.VigenteDesde,
			VigenteHasta:   req.VigenteHasta,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cupon)
	}
}

func UpdateCupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cuponID, err := validators.PathUUID(r, "cuponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input coupons.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := ownerBodegaID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cupon, err := svc.Update(r.Context(), cuponID, owner, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cupon)
	}
}

func DeleteCupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cuponID, err := validators.PathUUID(r, "cuponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owner, err := ownerBodegaID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), cuponID, owner); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "eliminado"})
	}
}

// ownerBodegaID scopes coupon mutations: bodegas only touch their own
// coupons, admins may touch any.
func ownerBodegaID(r *http.Request) (*uuid.UUID, error) {
	role, _ := middleware.RoleFromContext(r.Context())
	if role == enums.ActorRoleAdmin {
		return nil, nil
	}
	bodegaID, ok := middleware.BodegaIDFromContext(r.Context())
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "bodega id required")
	}
	return &bodegaID, nil
}
