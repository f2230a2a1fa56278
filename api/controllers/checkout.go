package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/checkout"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

type checkoutRequest struct {
	BodegaID    uuid.UUID `json:"bodega_id" validate:"required"`
	CuponCodigo string    `json:"cupon_codigo"`
	Notas       *string   `json:"notas"`
}

// SubmitCheckout turns the tendero's cart for a bodega into a pedido.
func SubmitCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pedido, err := svc.Submit(r.Context(), checkout.Input{
			TenderoID:   tenderoID,
			BodegaID:    req.BodegaID,
			CuponCodigo: req.CuponCodigo,
			Notas:       req.Notas,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, pedido)
	}
}
