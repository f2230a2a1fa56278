package controllers

import (
	"net/http"
	"strings"

	"github.com/veciplaza/veciplaza-backend/api/responses"
	"github.com/veciplaza/veciplaza-backend/api/validators"
	"github.com/veciplaza/veciplaza-backend/internal/bodegas"
	"github.com/veciplaza/veciplaza-backend/pkg/logger"
)

// ListBodegas is the public neighborhood directory.
func ListBodegas(svc bodegas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseCursorParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		onlyActive, err := validators.ParseQueryBool(r, "solo_activas", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := bodegas.Filters{
			Query:      strings.TrimSpace(r.URL.Query().Get("q")),
			Barrio:     strings.TrimSpace(r.URL.Query().Get("barrio")),
			OnlyActive: onlyActive,
		}

		list, err := svc.List(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetBodega(svc bodegas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := validators.PathUUID(r, "bodegaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bodega, err := svc.Get(r.Context(), bodegaID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bodega)
	}
}

// RegisterBodega creates a bodega profile. Admin only.
func RegisterBodega(svc bodegas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input bodegas.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bodega, err := svc.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bodega)
	}
}

func UpdateBodega(svc bodegas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodegaID, err := validators.PathUUID(r, "bodegaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input bodegas.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bodega, err := svc.Update(r.Context(), bodegaID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bodega)
	}
}
