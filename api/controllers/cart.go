package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/veciplaza/veciplaza-backend/api/middleware"
	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/cart"
	pkgerrors "github.com/veciplaza/veciplaza-backend/pkg/errors"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

func cartActor(r *http.Request) (tenderoID, bodegaID uuid.UUID, err error) {
	tenderoID, ok := middleware.ActorIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "actor id required")
	}
	bodegaID, err = validators.PathUUID(r, "bodegaId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tenderoID, bodegaID, nil
}

// GetCart returns the tendero's open cart for one bodega.
func GetCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, bodegaID, err := cartActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), tenderoID, bodegaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func AddCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, bodegaID, err := cartActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input cart.ItemInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), tenderoID, bodegaID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// UpdateCartItem sets the cantidad for one line. Cantidad zero removes it.
func UpdateCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, bodegaID, err := cartActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productoID, err := validators.PathUUID(r, "productoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input struct {
			Cantidad int `json:"cantidad" validate:"gte=0"`
		}
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateItem(r.Context(), tenderoID, bodegaID, productoID, input.Cantidad)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func RemoveCartItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, bodegaID, err := cartActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productoID, err := validators.PathUUID(r, "productoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), tenderoID, bodegaID, productoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ClearCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, bodegaID, err := cartActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), tenderoID, bodegaID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "vaciado"})
	}
}

// QuoteCart previews totals, optionally applying a coupon code without
// redeeming it.
func QuoteCart(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenderoID, bodegaID, err := cartActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cupon := strings.TrimSpace(r.URL.Query().Get("cupon"))

		quote, err := svc.Quote(r.Context(), tenderoID, bodegaID, cupon)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
