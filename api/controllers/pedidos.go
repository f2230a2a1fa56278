package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/orders"
	"github.com/veciplaza/veciplaza-backend/pkg/enums"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

func pedidoFilters(r *http.Request) (orders.Filters, error) {
	var filters orders.Filters

	if raw := strings.TrimSpace(r.URL.Query().Get("estado")); raw != "" {
		estado, err := enums.ParsePedidoEstado(raw)
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid estado filter")
		}
		filters.Estado = &estado
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("desde")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "desde must be RFC3339")
		}
		filters.DateFrom = &t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("hasta")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "hasta must be RFC3339")
		}
		filters.DateTo = &t
	}
	return filters, nil
}

// ListPedidos dispatches on the actor role: tenderos see their own pedidos,
// bodegas see their incoming ones.
func ListPedidos(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, _ := middleware.RoleFromContext(r.Context())
		actorID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		params, err := validators.ParseCursorParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters, err := pedidoFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var list *orders.PedidoList
		switch role {
		case enums.ActorRoleTendero:
			list, err = svc.ListForTendero(r.Context(), actorID, params, filters)
		case enums.ActorRoleBodega:
			bodegaID, ok := middleware.BodegaIDFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "bodega id required"))
				return
			}
			list, err = svc.ListForBodega(r.Context(), bodegaID, params, filters)
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role not allowed for this resource"))
			return
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetPedido(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pedidoID, err := validators.PathUUID(r, "pedidoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), pedidoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type changeEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// ChangePedidoEstado applies a lifecycle transition on behalf of the actor.
func ChangePedidoEstado(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pedidoID, err := validators.PathUUID(r, "pedidoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, _ := middleware.RoleFromContext(r.Context())
		actorID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		var req changeEstadoRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		estado, err := enums.ParsePedidoEstado(strings.TrimSpace(req.Estado))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid estado"))
			return
		}

		input := orders.ChangeEstadoInput{
			PedidoID:  pedidoID,
			Estado:    estado,
			ActorID:   actorID,
			ActorRole: role,
		}
		if bodegaID, ok := middleware.BodegaIDFromContext(r.Context()); ok {
			input.BodegaID = &bodegaID
		}

		detail, err := svc.ChangeEstado(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// CancelPedido is the shared escape hatch. Role rules are enforced by the
// transition table.
func CancelPedido(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pedidoID, err := validators.PathUUID(r, "pedidoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, _ := middleware.RoleFromContext(r.Context())
		actorID, ok := middleware.ActorIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required"))
			return
		}

		input := orders.ChangeEstadoInput{
			PedidoID:  pedidoID,
			ActorID:   actorID,
			ActorRole: role,
		}
		if bodegaID, ok := middleware.BodegaIDFromContext(r.Context()); ok {
			input.BodegaID = &bodegaID
		}

		detail, err := svc.Cancel(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
