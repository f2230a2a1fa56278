package controllers

import (
	"net/http"
	"strings"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/deliveries"
	"github.com/veciplaza/veciplaza-backend/internal/orders"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

// ListEntregasDisponibles shows pedidos listos that no courier has claimed.
func ListEntregasDisponibles(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseCursorParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.Disponibles(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ListEntregasAsignadas(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repartidorID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		params, err := validators.ParseCursorParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.Asignadas(r.Context(), repartidorID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetEntrega(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entregaID, err := validators.PathUUID(r, "entregaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entrega, err := svc.Get(r.Context(), entregaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entrega)
	}
}

// entregaTransition moves the backing pedido through the courier estados.
// Claiming (recoger) and completing (entregar) are pedido transitions so the
// whole side-effect chain rides the same transaction.
func entregaTransition(entregas deliveries.Service, pedidos orders.Service, logg *logger.Logger, estado enums.PedidoEstado) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entregaID, err := validators.PathUUID(r, "entregaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		repartidorID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		entrega, err := entregas.Get(r.Context(), entregaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := pedidos.ChangeEstado(r.Context(), orders.ChangeEstadoInput{
			PedidoID:  entrega.PedidoID,
			Estado:    estado,
			ActorID:   repartidorID,
			ActorRole: enums.ActorRoleRepartidor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// RecogerEntrega claims a delivery and moves its pedido to en_camino.
func RecogerEntrega(entregas deliveries.Service, pedidos orders.Service, logg *logger.Logger) http.HandlerFunc {
	return entregaTransition(entregas, pedidos, logg, enums.PedidoEstadoEnCamino)
}

// EntregarEntrega completes a delivery and moves its pedido to entregado.
func EntregarEntrega(entregas deliveries.Service, pedidos orders.Service, logg *logger.Logger) http.HandlerFunc {
	return entregaTransition(entregas, pedidos, logg, enums.PedidoEstadoEntregado)
}

type incidenciaRequest struct {
	Nota string `json:"nota" validate:"required"`
}

func ReportIncidencia(svc deliveries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entregaID, err := validators.PathUUID(r, "entregaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		repartidorID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		var req incidenciaRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entrega, err := svc.ReportIncidencia(r.Context(), deliveries.IncidenciaInput{
			EntregaID:    entregaID,
			RepartidorID: repartidorID,
			Nota:         strings.TrimSpace(req.Nota),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entrega)
	}
}
